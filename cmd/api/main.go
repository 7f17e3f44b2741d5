package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"file-processing-tasks/config"
	_ "file-processing-tasks/docs" // Swagger docs
	"file-processing-tasks/internal/fam/memory"
	"file-processing-tasks/internal/fam/tags"
	"file-processing-tasks/internal/httpserver"
	"file-processing-tasks/internal/middleware"
	"file-processing-tasks/internal/task/catalog"
	"file-processing-tasks/internal/task/cloudocr"
	taskHTTP "file-processing-tasks/internal/task/delivery/http"
	"file-processing-tasks/internal/task/registry"
	"file-processing-tasks/internal/task/usecase"
	"file-processing-tasks/pkg/gvision"
	"file-processing-tasks/pkg/log"
	"file-processing-tasks/pkg/pdftool"
	"file-processing-tasks/pkg/tesseract"
)

// @title       File Processing Tasks API
// @description Configure, persist and run file-processing tasks against the pipeline host.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey ApiKeyAuth
// @in          header
// @name        X-API-Key
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting File Processing Tasks API...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Task dependencies
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
			logger.Error(ctx, "Failed to initialize PDF tool: ", err)
			return
		}
		deps.PDFTool = runner
		logger.Infof(ctx, "PDF tool: %s", cfg.PDFTool.Path)
	} else {
		logger.Warn(ctx, "pdf_tool.path is empty, PDF modification and Bates stamping are unavailable")
	}

	if cfg.Tesseract.Enabled {
		if !tesseract.Available {
			logger.Error(ctx, "Failed to enable Tesseract OCR: ", tesseract.ErrUnavailable)
			return
		}
		deps.OCREngine = tesseract.New()
		logger.Info(ctx, "Tesseract OCR enabled")
	}

	// 4. Task domain
	reg := registry.New()
	if err := catalog.Register(reg, deps); err != nil {
		logger.Error(ctx, "Failed to register tasks: ", err)
		return
	}

	host := memory.New(memory.Options{
		Expander:           tags.New(tags.Options{FPSFileDir: cfg.FAM.FPSDirectory}),
		DisabledComponents: cfg.License.DisabledComponents,
	})
	taskUC := usecase.New(logger, reg, host)

	// 5. HTTP Server
	mw := middleware.New(logger, middleware.Config{
		APIKey:          cfg.Security.APIKey,
		RateLimitPerMin: cfg.Security.RateLimitPerMin,
	})
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Middleware:  mw,
		TaskHandler: taskHTTP.New(logger, taskUC),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
