package usecase

import (
	"bytes"
	"context"
	"fmt"

	"file-processing-tasks/internal/task"
)

// ListComponents returns every registered task type.
func (uc *implUseCase) ListComponents(ctx context.Context) []task.ComponentInfo {
	return uc.reg.List()
}

// EncodeSettings builds a task of the requested type, applies the JSON
// settings and returns it persisted as a component.
func (uc *implUseCase) EncodeSettings(ctx context.Context, input task.EncodeInput) (task.EncodeOutput, error) {
	t, err := uc.reg.New(input.TypeName)
	if err != nil {
		return task.EncodeOutput{}, err
	}
	if len(input.Settings) > 0 {
		if err := t.Configure(input.Settings); err != nil {
			return task.EncodeOutput{}, err
		}
	}

	var buf bytes.Buffer
	if err := uc.reg.SaveComponent(&buf, t); err != nil {
		return task.EncodeOutput{}, err
	}

	uc.l.Debugf(ctx, "usecase.EncodeSettings: type=%s bytes=%d configured=%v", t.TypeName(), buf.Len(), t.IsConfigured())
	return task.EncodeOutput{
		TypeName:   t.TypeName(),
		Component:  buf.Bytes(),
		Configured: t.IsConfigured(),
	}, nil
}

// DecodeSettings restores a component and returns its settings.
func (uc *implUseCase) DecodeSettings(ctx context.Context, component []byte) (task.DecodeOutput, error) {
	t, err := uc.reg.LoadComponent(bytes.NewReader(component))
	if err != nil {
		return task.DecodeOutput{}, err
	}
	return task.DecodeOutput{
		TypeName:    t.TypeName(),
		Description: t.Description(),
		Settings:    t.Settings(),
		Configured:  t.IsConfigured(),
	}, nil
}

// buildTask resolves the task a ProcessInput refers to.
func (uc *implUseCase) buildTask(input task.ProcessInput) (task.Task, error) {
	switch {
	case len(input.Component) > 0:
		return uc.reg.LoadComponent(bytes.NewReader(input.Component))
	case input.TypeName != "":
		t, err := uc.reg.New(input.TypeName)
		if err != nil {
			return nil, err
		}
		if len(input.Settings) > 0 {
			if err := t.Configure(input.Settings); err != nil {
				return nil, fmt.Errorf("configure %s: %w", input.TypeName, err)
			}
		}
		return t, nil
	default:
		return nil, task.ErrTaskUnselected
	}
}
