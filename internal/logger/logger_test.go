package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestSetup_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf, slog.LevelInfo)

	log.Info("test message", slog.String("key", "value"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output should be valid JSON: %v", err)
	}

	if record["msg"] != "test message" {
		t.Errorf("msg = %v, want %q", record["msg"], "test message")
	}
	if record["key"] != "value" {
		t.Errorf("key = %v, want %q", record["key"], "value")
	}
	if record["service"] != "storeman" {
		t.Errorf("service = %v, want %q", record["service"], "storeman")
	}
}

func TestSetup_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(&buf, slog.LevelWarn)

	log.Info("should be suppressed")
	if buf.Len() != 0 {
		t.Errorf("INFO log should be suppressed at WARN level, got %q", buf.String())
	}

	log.Warn("should be emitted")
	if buf.Len() == 0 {
		t.Error("WARN log should be emitted at WARN level")
	}
}

func TestSetupDefault_SetsGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	SetupDefault(&buf)

	slog.Info("global log test")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output should be valid JSON: %v", err)
	}
	if record["msg"] != "global log test" {
		t.Errorf("msg = %v, want %q", record["msg"], "global log test")
	}
}
