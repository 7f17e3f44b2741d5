// Command fprun configures, persists and runs file-processing tasks from the
// command line against an in-process host.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"file-processing-tasks/config"
	"file-processing-tasks/internal/fam/memory"
	"file-processing-tasks/internal/fam/tags"
	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/catalog"
	"file-processing-tasks/internal/task/cloudocr"
	"file-processing-tasks/internal/task/registry"
	"file-processing-tasks/internal/task/usecase"
	"file-processing-tasks/pkg/gvision"
	"file-processing-tasks/pkg/log"
	"file-processing-tasks/pkg/pdftool"
	"file-processing-tasks/pkg/tesseract"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config: ", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	uc, err := newUseCase(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(uc).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newUseCase(cfg *config.Config, logger log.Logger) (task.UseCase, error) {
	deps := catalog.Deps{
		Logger: logger,
		OCRCache: cloudocr.NewClientCache(cloudocr.GVisionFactory(gvision.Options{
			PollInterval:     cfg.OCR.PollInterval,
			OperationTimeout: cfg.OCR.OperationTimeout,
		})),
	}
	if cfg.PDFTool.Path != "" {
		runner, err := pdftool.New(pdftool.Config{Path: cfg.PDFTool.Path, Timeout: cfg.PDFTool.Timeout})
		if err != nil {
			return nil, fmt.Errorf("pdf tool: %w", err)
		}
		deps.PDFTool = runner
	}
	if cfg.Tesseract.Enabled {
		if !tesseract.Available {
			return nil, tesseract.ErrUnavailable
		}
		deps.OCREngine = tesseract.New()
	}

	reg := registry.New()
	if err := catalog.Register(reg, deps); err != nil {
		return nil, err
	}
	host := memory.New(memory.Options{
		Expander:           tags.New(tags.Options{FPSFileDir: cfg.FAM.FPSDirectory}),
		DisabledComponents: cfg.License.DisabledComponents,
	})
	return usecase.New(logger, reg, host), nil
}
