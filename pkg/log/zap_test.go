package log_test

import (
	"context"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"file-processing-tasks/pkg/log"
)

func TestZapLoggerAddsRunID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := log.NewZap(core, log.ModeProduction)

	ctx := log.WithRunID(context.Background(), "run-42")
	l.Infof(ctx, "processed %s", "a.pdf")
	l.Debug(context.Background(), "no run id")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "processed a.pdf" {
		t.Errorf("unexpected message %q", entries[0].Message)
	}
	if got := entries[0].ContextMap()["run_id"]; got != "run-42" {
		t.Errorf("expected run_id field, got %v", got)
	}
	if _, ok := entries[1].ContextMap()["run_id"]; ok {
		t.Errorf("did not expect run_id on second entry")
	}
}

func TestInitFallsBackToInfo(t *testing.T) {
	l := log.Init(log.ZapConfig{Level: "not-a-level", Mode: log.ModeProduction, Encoding: log.EncodingJSON})
	if l == nil {
		t.Fatal("expected logger")
	}
}
