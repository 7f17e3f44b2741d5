package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"file-processing-tasks/internal/model"
	"file-processing-tasks/internal/task"
	pkgErrors "file-processing-tasks/pkg/errors"
)

// --- Request DTOs ---

type encodeReq struct {
	TypeName string          `json:"type_name" binding:"required"`
	Settings json.RawMessage `json:"settings"`
}

func (r encodeReq) toInput() task.EncodeInput {
	return task.EncodeInput{TypeName: r.TypeName, Settings: r.Settings}
}

// ---

type decodeReq struct {
	// Component is the base64 encoded component stream.
	Component string `json:"component" binding:"required"`
}

// ---

type processReq struct {
	TypeName  string          `json:"type_name"`
	Settings  json.RawMessage `json:"settings"`
	Component string          `json:"component"`
	FilePath  string          `json:"file_path" binding:"required"`
	Pages     int             `json:"pages" binding:"min=0"`
	Priority  model.Priority  `json:"priority"`
	Action    string          `json:"action"`
	RunID     string          `json:"run_id"`

	component []byte
}

func (r processReq) validate() error {
	if r.TypeName == "" && r.Component == "" {
		return fmt.Errorf("either type_name or component is required")
	}
	if r.TypeName != "" && r.Component != "" {
		return fmt.Errorf("type_name and component are mutually exclusive")
	}
	return nil
}

func (r processReq) toInput() task.ProcessInput {
	return task.ProcessInput{
		TypeName:  r.TypeName,
		Settings:  r.Settings,
		Component: r.component,
		FilePath:  r.FilePath,
		Pages:     r.Pages,
		Priority:  r.Priority,
		Action:    r.Action,
		RunID:     r.RunID,
	}
}

// --- Request processing ---

func (h *handler) processEncodeReq(c *gin.Context) (encodeReq, error) {
	var req encodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "http.processEncodeReq: %v", err)
		return req, badRequest(err)
	}
	return req, nil
}

func (h *handler) processDecodeReq(c *gin.Context) ([]byte, error) {
	var req decodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "http.processDecodeReq: %v", err)
		return nil, badRequest(err)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(req.Component))
	if err != nil {
		return nil, badRequest(fmt.Errorf("component is not valid base64: %w", err))
	}
	return raw, nil
}

func (h *handler) processProcessReq(c *gin.Context) (processReq, error) {
	var req processReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "http.processProcessReq: %v", err)
		return req, badRequest(err)
	}
	if err := req.validate(); err != nil {
		return req, badRequest(err)
	}
	if req.Component != "" {
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(req.Component))
		if err != nil {
			return req, badRequest(fmt.Errorf("component is not valid base64: %w", err))
		}
		req.component = raw
	}
	return req, nil
}

func badRequest(err error) error {
	return pkgErrors.NewHTTPError(400, err.Error())
}
