package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"file-processing-tasks/internal/model"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	Security   SecurityConfig

	// File processing
	FAM       FAMConfig
	License   LicenseConfig
	PDFTool   PDFToolConfig
	OCR       OCRConfig
	Tesseract TesseractConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type SecurityConfig struct {
	APIKey          string
	RateLimitPerMin int
}

// FAMConfig configures the in-process host the invoker runs tasks against.
type FAMConfig struct {
	// FPSDirectory is what <FPSFileDir> expands to.
	FPSDirectory string
}

type LicenseConfig struct {
	DisabledComponents []string
}

type PDFToolConfig struct {
	Path    string
	Timeout time.Duration
}

type OCRConfig struct {
	PollInterval     time.Duration
	OperationTimeout time.Duration
}

type TesseractConfig struct {
	Enabled bool
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Security
	cfg.Security.APIKey = expandEnvVar(viper.GetString("security.api_key"))
	cfg.Security.RateLimitPerMin = viper.GetInt("security.rate_limit_per_min")

	// File processing
	cfg.FAM.FPSDirectory = viper.GetString("fam.fps_directory")
	cfg.License.DisabledComponents = getList("license.disabled_components")
	cfg.PDFTool.Path = viper.GetString("pdf_tool.path")
	cfg.PDFTool.Timeout = viper.GetDuration("pdf_tool.timeout")
	cfg.OCR.PollInterval = viper.GetDuration("ocr.poll_interval")
	cfg.OCR.OperationTimeout = viper.GetDuration("ocr.operation_timeout")
	cfg.Tesseract.Enabled = viper.GetBool("tesseract.enabled")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("security.rate_limit_per_min", 120)
	viper.SetDefault("pdf_tool.timeout", "5m")
	viper.SetDefault("ocr.poll_interval", "2s")
	viper.SetDefault("ocr.operation_timeout", "10m")
	viper.SetDefault("tesseract.enabled", false)
}

func (cfg *Config) validate() error {
	if cfg.HTTPServer.Port <= 0 {
		return fmt.Errorf("http_server.port must be positive")
	}
	if cfg.Environment.Name == string(model.EnvironmentProduction) && cfg.Security.APIKey == "" {
		return fmt.Errorf("security.api_key is required in production")
	}
	if cfg.Security.RateLimitPerMin < 0 {
		return fmt.Errorf("security.rate_limit_per_min must not be negative")
	}
	if cfg.PDFTool.Timeout < 0 || cfg.OCR.PollInterval < 0 || cfg.OCR.OperationTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

// getList reads a YAML list or, from the environment, a comma separated
// string.
func getList(key string) []string {
	raw, ok := viper.Get(key).(string)
	if !ok {
		return viper.GetStringSlice(key)
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		return ""
	}

	return value
}
