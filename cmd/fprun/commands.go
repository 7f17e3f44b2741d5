package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"file-processing-tasks/internal/model"
	"file-processing-tasks/internal/task"
)

const cliClientID = "cli"

func newRootCmd(uc task.UseCase) *cobra.Command {
	root := &cobra.Command{
		Use:          "fprun",
		Short:        "Configure, persist and run file-processing tasks",
		SilenceUsage: true,
	}
	root.AddCommand(
		newListCmd(uc),
		newEncodeCmd(uc),
		newDecodeCmd(uc),
		newProcessCmd(uc),
	)
	return root
}

func newListCmd(uc task.UseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered task types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tDESCRIPTION\tCATEGORY")
			for _, c := range uc.ListComponents(cmd.Context()) {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.TypeName, c.Description, c.Category)
			}
			return w.Flush()
		},
	}
}

func newEncodeCmd(uc task.UseCase) *cobra.Command {
	var typeName, settingsPath, outPath string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Apply JSON settings to a task type and write the component",
		Long: `Encode builds a task of --type, applies the JSON settings document read
from --settings ("-" for stdin) and writes the persisted component to --out.
Without --out the component is printed as base64.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := readOptional(cmd, settingsPath)
			if err != nil {
				return err
			}
			out, err := uc.EncodeSettings(cmd.Context(), task.EncodeInput{TypeName: typeName, Settings: settings})
			if err != nil {
				return err
			}
			if !out.Configured {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s is not configured yet\n", out.TypeName)
			}
			if outPath == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(out.Component))
				return err
			}
			return os.WriteFile(outPath, out.Component, 0o644)
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Task type name (required)")
	cmd.Flags().StringVarP(&settingsPath, "settings", "s", "", "JSON settings file, - for stdin")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Component output file")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newDecodeCmd(uc task.UseCase) *cobra.Command {
	var inPath string
	var isBase64 bool
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Print the task type and settings stored in a component",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			component, err := readComponent(cmd, inPath, isBase64)
			if err != nil {
				return err
			}
			out, err := uc.DecodeSettings(cmd.Context(), component)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"type_name":   out.TypeName,
				"description": out.Description,
				"configured":  out.Configured,
				"settings":    out.Settings,
			})
		},
	}
	cmd.Flags().StringVarP(&inPath, "in", "i", "", "Component file, - for stdin (required)")
	cmd.Flags().BoolVar(&isBase64, "base64", false, "Input is base64 encoded")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newProcessCmd(uc task.UseCase) *cobra.Command {
	var (
		typeName, settingsPath, componentPath string
		action, priority                      string
		pages                                 int
	)
	cmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Run one task on one file",
		Long: `Process selects a task either by --component or by --type with optional
--settings, runs it on <file> and prints the outcome as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prio, err := model.ParsePriority(priority)
			if err != nil {
				return err
			}
			input := task.ProcessInput{
				TypeName: typeName,
				FilePath: args[0],
				Pages:    pages,
				Priority: prio,
				Action:   action,
			}
			if input.Settings, err = readOptional(cmd, settingsPath); err != nil {
				return err
			}
			if componentPath != "" {
				if input.Component, err = readComponent(cmd, componentPath, false); err != nil {
					return err
				}
			}

			out, runErr := uc.Process(cmd.Context(), model.Scope{ClientID: cliClientID}, input)
			if out.RunID != "" {
				if err := printJSON(cmd.OutOrStdout(), map[string]any{
					"run_id":      out.RunID,
					"file":        out.File.Name,
					"action":      out.Action,
					"result":      out.Result,
					"status":      out.Status,
					"metadata":    out.Metadata,
					"duration_ms": out.Duration.Milliseconds(),
				}); err != nil {
					return err
				}
			}
			return runErr
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Task type name")
	cmd.Flags().StringVarP(&settingsPath, "settings", "s", "", "JSON settings file, - for stdin")
	cmd.Flags().StringVarP(&componentPath, "component", "c", "", "Component file written by encode")
	cmd.Flags().StringVarP(&action, "action", "a", "", "Action name the status is recorded under")
	cmd.Flags().StringVar(&priority, "priority", "", "File priority")
	cmd.Flags().IntVar(&pages, "pages", 0, "Page count of the file")
	cmd.MarkFlagsMutuallyExclusive("type", "component")
	cmd.MarkFlagsMutuallyExclusive("settings", "component")
	cmd.MarkFlagsOneRequired("type", "component")
	return cmd
}

// readOptional reads path, or stdin for "-". An empty path yields nil.
func readOptional(cmd *cobra.Command, path string) ([]byte, error) {
	switch path {
	case "":
		return nil, nil
	case "-":
		return io.ReadAll(cmd.InOrStdin())
	default:
		return os.ReadFile(path)
	}
}

func readComponent(cmd *cobra.Command, path string, isBase64 bool) ([]byte, error) {
	data, err := readOptional(cmd, path)
	if err != nil || !isBase64 {
		return data, err
	}
	return base64.StdEncoding.DecodeString(string(trimNewline(data)))
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
