package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewLogger_ServiceAndModule(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		ServiceInfo:   ServiceInfo{Name: "danmaku", Version: "v1"},
		Environment:   EnvDev,
		DefaultModule: Module("lane-scheduler"),
		Writer:        &buf,
	})

	logger.InfoContext(context.Background(), "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log line: %v", err)
	}
	if entry["service"] != "danmaku" {
		t.Errorf("service = %v, want danmaku", entry["service"])
	}
	if entry["module"] != "lane-scheduler" {
		t.Errorf("module = %v, want lane-scheduler", entry["module"])
	}
	if entry["env"] != "dev" {
		t.Errorf("env = %v, want dev", entry["env"])
	}
}

func TestNewLogger_ModuleOverride(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		DefaultModule: Module("default"),
		Writer:        &buf,
	})

	ctx := WithModule(context.Background(), Module("playback"))
	logger.InfoContext(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log line: %v", err)
	}
	if entry["module"] != "playback" {
		t.Errorf("module = %v, want playback", entry["module"])
	}
}

func TestNewLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)

	logger := NewLogger(Config{Writer: &buf, Level: level})
	logger.Info("dropped")

	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered, got %s", buf.String())
	}

	level.Set(slog.LevelDebug)
	logger.Debug("kept")
	if buf.Len() == 0 {
		t.Error("expected debug line after lowering level")
	}
}

func TestNewLogger_TraceCorrelation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Writer: &buf, GCPProjectID: "test-project"})

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	logger.InfoContext(ctx, "traced")
	span.End()

	if !bytes.Contains(buf.Bytes(), []byte(span.SpanContext().TraceID().String())) {
		t.Errorf("expected trace id in log line: %s", buf.String())
	}
}
