package http

import (
	"encoding/base64"
	"time"

	"file-processing-tasks/internal/task"
	"file-processing-tasks/pkg/response"
)

// --- Response DTOs ---

type listComponentsResp struct {
	Components []task.ComponentInfo `json:"components"`
}

type encodeResp struct {
	TypeName   string `json:"type_name"`
	Component  string `json:"component"`
	Configured bool   `json:"configured"`
}

type decodeResp struct {
	TypeName    string `json:"type_name"`
	Description string `json:"description"`
	Settings    any    `json:"settings"`
	Configured  bool   `json:"configured"`
}

type processResp struct {
	RunID      string            `json:"run_id"`
	FileID     int               `json:"file_id"`
	FileName   string            `json:"file_name"`
	Action     string            `json:"action"`
	Result     task.Result       `json:"result"`
	Status     string            `json:"status"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	DurationMs int64             `json:"duration_ms"`
	FinishedAt response.DateTime `json:"finished_at"`
}

type cancelResp struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

// --- Presenters ---

func (h *handler) newListComponentsResp(components []task.ComponentInfo) listComponentsResp {
	if components == nil {
		components = []task.ComponentInfo{}
	}
	return listComponentsResp{Components: components}
}

func (h *handler) newEncodeResp(o task.EncodeOutput) encodeResp {
	return encodeResp{
		TypeName:   o.TypeName,
		Component:  base64.StdEncoding.EncodeToString(o.Component),
		Configured: o.Configured,
	}
}

func (h *handler) newDecodeResp(o task.DecodeOutput) decodeResp {
	return decodeResp{
		TypeName:    o.TypeName,
		Description: o.Description,
		Settings:    o.Settings,
		Configured:  o.Configured,
	}
}

func (h *handler) newProcessResp(o task.ProcessOutput) processResp {
	return processResp{
		RunID:      o.RunID,
		FileID:     o.File.ID,
		FileName:   o.File.Name,
		Action:     o.Action,
		Result:     o.Result,
		Status:     string(o.Status),
		Metadata:   o.Metadata,
		DurationMs: o.Duration.Milliseconds(),
		FinishedAt: response.DateTime(time.Now()),
	}
}
