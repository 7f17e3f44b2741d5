package httpserver

import (
	"context"

	"file-processing-tasks/internal/model"
	taskHTTP "file-processing-tasks/internal/task/delivery/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (srv HTTPServer) mapHandlers() error {
	// Client addresses key the rate limiter, so forwarded headers are ignored.
	if err := srv.gin.SetTrustedProxies(nil); err != nil {
		return err
	}
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	if srv.environment != string(model.EnvironmentProduction) {
		srv.gin.Use(gin.Logger())
	}

	srv.l.Infof(context.Background(), "HTTP mode: %s, environment: %s", srv.mode, srv.environment)
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1")

	if srv.taskHandler != nil {
		taskHTTP.RegisterRoutes(api.Group("/tasks"), srv.taskHandler, srv.mw)
		srv.l.Infof(ctx, "Task routes registered at /api/v1/tasks")
	} else {
		srv.l.Warnf(ctx, "Task handler not configured, skipping task routes")
	}

	return nil
}
