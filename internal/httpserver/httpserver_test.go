package httpserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"file-processing-tasks/internal/fam/memory"
	"file-processing-tasks/internal/httpserver"
	"file-processing-tasks/internal/middleware"
	"file-processing-tasks/internal/task"
	"file-processing-tasks/internal/task/bates"
	taskHTTP "file-processing-tasks/internal/task/delivery/http"
	"file-processing-tasks/internal/task/registry"
	"file-processing-tasks/internal/task/usecase"
	"file-processing-tasks/pkg/log"
)

func newServer(t *testing.T, withTasks bool) *httpserver.HTTPServer {
	t.Helper()
	l := log.NewNop()
	cfg := httpserver.Config{
		Logger:      l,
		Port:        8080,
		Mode:        gin.TestMode,
		Environment: "test",
		Middleware:  middleware.New(l, middleware.Config{}),
	}
	if withTasks {
		reg := registry.New()
		reg.MustRegister(func() task.Task { return bates.New(bates.Deps{}) })
		uc := usecase.New(l, reg, memory.New(memory.Options{}))
		cfg.TaskHandler = taskHTTP.New(l, uc)
	}
	srv, err := httpserver.New(l, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func get(srv *httpserver.HTTPServer, path string) int {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w.Code
}

func TestSystemRoutes(t *testing.T) {
	srv := newServer(t, true)
	for _, path := range []string{"/health", "/ready", "/live", "/api/v1/tasks/components"} {
		if code := get(srv, path); code != http.StatusOK {
			t.Errorf("GET %s: %d", path, code)
		}
	}
}

func TestNotReadyWithoutTasks(t *testing.T) {
	srv := newServer(t, false)
	if code := get(srv, "/ready"); code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if code := get(srv, "/api/v1/tasks/components"); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestNewValidates(t *testing.T) {
	if _, err := httpserver.New(nil, httpserver.Config{Mode: gin.TestMode, Port: 1}); err == nil {
		t.Fatal("expected an error without a logger")
	}
	if _, err := httpserver.New(log.NewNop(), httpserver.Config{Mode: gin.TestMode}); err == nil {
		t.Fatal("expected an error without a port")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	l := log.NewNop()
	srv, err := httpserver.New(l, httpserver.Config{Logger: l, Port: 18089, Mode: gin.TestMode})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := srv.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
