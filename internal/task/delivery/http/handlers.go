package http

import (
	"github.com/gin-gonic/gin"

	"file-processing-tasks/internal/middleware"
	"file-processing-tasks/pkg/response"
)

// ListComponents godoc
// @Summary     List task types
// @Description Returns every registered file-processing task with its description and category.
// @Tags        Tasks
// @Produce     json
// @Security    ApiKeyAuth
// @Success     200 {object} listComponentsResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Router      /api/v1/tasks/components [GET]
func (h *handler) ListComponents(c *gin.Context) {
	ctx := c.Request.Context()
	response.OK(c, h.newListComponentsResp(h.uc.ListComponents(ctx)))
}

// EncodeSettings godoc
// @Summary     Encode task settings
// @Description Applies a JSON settings document to a task type and returns the persisted component as base64.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       body body encodeReq true "Task type and settings"
// @Success     200 {object} encodeResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Unknown task type"
// @Router      /api/v1/tasks/settings/encode [POST]
func (h *handler) EncodeSettings(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processEncodeReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.EncodeSettings(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.EncodeSettings: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newEncodeResp(output))
}

// DecodeSettings godoc
// @Summary     Decode a component
// @Description Restores a base64 component and returns its task type and settings.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       body body decodeReq true "Base64 component"
// @Success     200 {object} decodeResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/tasks/settings/decode [POST]
func (h *handler) DecodeSettings(c *gin.Context) {
	ctx := c.Request.Context()

	component, err := h.processDecodeReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.DecodeSettings(ctx, component)
	if err != nil {
		h.l.Errorf(ctx, "uc.DecodeSettings: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newDecodeResp(output))
}

// Process godoc
// @Summary     Run a task on a file
// @Description Runs one task on one file and waits for the outcome. Pass run_id to be able to cancel the run from another request.
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       body body processReq true "Task selection and file"
// @Success     200 {object} processResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     403 {object} response.Resp "Component not licensed"
// @Failure     409 {object} response.Resp "Run id already in flight"
// @Failure     422 {object} response.Resp "Task failed"
// @Router      /api/v1/tasks/runs [POST]
func (h *handler) Process(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processProcessReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Process(ctx, middleware.GetScope(c), req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Process: %v", err)
		var data map[string]interface{}
		if output.RunID != "" {
			data = map[string]interface{}{"run_id": output.RunID, "status": string(output.Status)}
		}
		response.Error(c, h.mapError(err), data)
		return
	}

	response.OK(c, h.newProcessResp(output))
}

// Cancel godoc
// @Summary     Cancel a run
// @Description Requests cancellation of an in-flight run.
// @Tags        Tasks
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Run ID"
// @Success     200 {object} cancelResp
// @Failure     404 {object} response.Resp "Run not found"
// @Router      /api/v1/tasks/runs/{id} [DELETE]
func (h *handler) Cancel(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if err := h.uc.Cancel(ctx, id); err != nil {
		h.l.Errorf(ctx, "uc.Cancel: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, cancelResp{RunID: id, Status: "cancelling"})
}
