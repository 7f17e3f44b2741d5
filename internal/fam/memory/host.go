package memory

import "file-processing-tasks/internal/model"

func (h *implHost) Expand(template string, rec model.FileRecord) (string, error) {
	return h.expander.Expand(template, rec)
}

func (h *implHost) IsLicensed(component string) bool {
	return !h.disabled[component]
}
