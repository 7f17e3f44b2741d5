package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"file-processing-tasks/pkg/response"
)

func TestDateTimeMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		v    response.DateTime
		want string
	}{
		{
			name: "utc",
			v:    response.DateTime(time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)),
			want: `"2024-05-01T15:30:00Z"`,
		},
		{
			name: "offset is normalised",
			v:    response.DateTime(time.Date(2024, 5, 1, 17, 30, 0, 0, time.FixedZone("CEST", 2*60*60))),
			want: `"2024-05-01T15:30:00Z"`,
		},
		{name: "zero", v: response.DateTime{}, want: `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.v)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(b) != tt.want {
				t.Errorf("got %s, want %s", b, tt.want)
			}
		})
	}
}
