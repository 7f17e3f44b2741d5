package http

import (
	"github.com/gin-gonic/gin"

	"file-processing-tasks/internal/task"
	"file-processing-tasks/pkg/log"
)

// Handler is the public interface for the task HTTP delivery layer.
type Handler interface {
	ListComponents(c *gin.Context)
	EncodeSettings(c *gin.Context)
	DecodeSettings(c *gin.Context)
	Process(c *gin.Context)
	Cancel(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc task.UseCase
}

// New creates a new HTTP handler for the task domain.
func New(l log.Logger, uc task.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
