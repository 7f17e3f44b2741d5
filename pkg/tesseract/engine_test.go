package tesseract_test

import (
	"context"
	"errors"
	"testing"

	"file-processing-tasks/pkg/tesseract"
)

func TestRecognizeRejectsBadRequests(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		psm     int
		wantErr error
	}{
		{name: "cancelled context", ctx: cancelled, psm: 3, wantErr: context.Canceled},
		{name: "negative mode", ctx: context.Background(), psm: -1, wantErr: tesseract.ErrInvalidPageMode},
		{name: "mode too high", ctx: context.Background(), psm: 14, wantErr: tesseract.ErrInvalidPageMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tesseract.New().Recognize(tt.ctx, nil, nil, tt.psm)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
