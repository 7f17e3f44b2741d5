package http

import (
	"github.com/gin-gonic/gin"

	"file-processing-tasks/internal/middleware"
)

// RegisterRoutes registers the task routes under r:
//
//	GET    /components
//	POST   /settings/encode
//	POST   /settings/decode
//	POST   /runs
//	DELETE /runs/:id
func RegisterRoutes(r *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	r.Use(mw.Auth(), mw.RateLimit())

	r.GET("/components", h.ListComponents)
	r.POST("/settings/encode", h.EncodeSettings)
	r.POST("/settings/decode", h.DecodeSettings)
	r.POST("/runs", h.Process)
	r.DELETE("/runs/:id", h.Cancel)
}
