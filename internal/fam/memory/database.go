package memory

import (
	"context"
	"fmt"
	"math"
	"os"

	"file-processing-tasks/internal/fam"
	"file-processing-tasks/internal/model"
)

func (h *implHost) AddFile(ctx context.Context, path string, action string, priority model.Priority) (model.FileRecord, error) {
	if path == "" {
		return model.FileRecord{}, fam.ErrEmptyName
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	id, ok := h.byName[path]
	if !ok {
		id = h.nextID
		h.nextID++
		rec := model.FileRecord{ID: id, Name: path, Priority: priority}
		if fi, err := os.Stat(path); err == nil {
			rec.Size = fi.Size()
		}
		h.files[id] = rec
		h.byName[path] = id
	}

	if action != "" {
		h.setStatusLocked(id, action, model.StatusPending)
		h.queue = append(h.queue, QueuedFile{FileID: id, Action: action, Priority: priority})
	}
	return h.files[id], nil
}

func (h *implHost) GetFile(ctx context.Context, fileID int) (model.FileRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec, ok := h.files[fileID]
	if !ok {
		return model.FileRecord{}, fmt.Errorf("file %d: %w", fileID, fam.ErrFileNotFound)
	}
	return rec, nil
}

func (h *implHost) SetStatusForFile(ctx context.Context, fileID int, action string, status model.ActionStatus) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.files[fileID]; !ok {
		return fmt.Errorf("file %d: %w", fileID, fam.ErrFileNotFound)
	}
	h.setStatusLocked(fileID, action, status)
	return nil
}

func (h *implHost) setStatusLocked(fileID int, action string, status model.ActionStatus) {
	byAction, ok := h.statuses[fileID]
	if !ok {
		byAction = make(map[string]model.ActionStatus)
		h.statuses[fileID] = byAction
	}
	byAction[action] = status
}

func (h *implHost) GetStatusForFile(ctx context.Context, fileID int, action string) (model.ActionStatus, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.files[fileID]; !ok {
		return "", fmt.Errorf("file %d: %w", fileID, fam.ErrFileNotFound)
	}
	if s, ok := h.statuses[fileID][action]; ok {
		return s, nil
	}
	return model.StatusUnattempted, nil
}

func (h *implHost) ReserveCounter(ctx context.Context, name string, count int64, startAt int64) (int64, error) {
	if name == "" {
		return 0, fam.ErrEmptyName
	}
	if count <= 0 {
		return 0, fam.ErrInvalidCount
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	next, ok := h.counters[name]
	if !ok {
		next = startAt
	}
	if next > math.MaxInt64-count {
		return 0, fmt.Errorf("counter %q: %w", name, fam.ErrCounterOverflow)
	}
	h.counters[name] = next + count
	return next, nil
}

func (h *implHost) SetMetadataField(ctx context.Context, fileID int, field, value string) error {
	if field == "" {
		return fam.ErrEmptyName
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.files[fileID]; !ok {
		return fmt.Errorf("file %d: %w", fileID, fam.ErrFileNotFound)
	}
	fields, ok := h.metadata[fileID]
	if !ok {
		fields = make(map[string]string)
		h.metadata[fileID] = fields
	}
	fields[field] = value
	return nil
}

func (h *implHost) GetMetadataField(ctx context.Context, fileID int, field string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.files[fileID]; !ok {
		return "", fmt.Errorf("file %d: %w", fileID, fam.ErrFileNotFound)
	}
	return h.metadata[fileID][field], nil
}

// Queue returns a snapshot of every AddFile call that targeted an action.
func (h *implHost) Queue() []QueuedFile {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]QueuedFile(nil), h.queue...)
}

func (h *implHost) ListMetadata(ctx context.Context, fileID int) (map[string]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.files[fileID]; !ok {
		return nil, fmt.Errorf("file %d: %w", fileID, fam.ErrFileNotFound)
	}
	out := make(map[string]string, len(h.metadata[fileID]))
	for k, v := range h.metadata[fileID] {
		out[k] = v
	}
	return out, nil
}
