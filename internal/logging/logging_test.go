package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/MacarenaGarciaM/Tingeso1/httpclient"
	"github.com/MacarenaGarciaM/Tingeso1/session"
)

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info should be filtered at warn level")
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", out, err)
	}

	if entry["message"] != "shown" || entry["level"] != "warn" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	for _, level := range []string{"", "verbose"} {
		var buf bytes.Buffer
		logger := New(level, &buf)

		logger.Debug().Msg("debug")
		logger.Info().Msg("info")

		if strings.Contains(buf.String(), `"debug"`) {
			t.Errorf("level %q: debug should be filtered", level)
		}
		if !strings.Contains(buf.String(), `"info"`) {
			t.Errorf("level %q: info should be written", level)
		}
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsole("info", &buf)

	logger.Info().Str("path", "/api/tools").Msg("request sent")

	out := buf.String()
	if !strings.Contains(out, "request sent") || !strings.Contains(out, "path=/api/tools") {
		t.Errorf("unexpected console output: %q", out)
	}
}

func TestLogger_SatisfiesClientLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger := New("debug", &buf)

	var _ httpclient.Logger = &logger
	var _ session.Logger = &logger

	kc := session.NewKeycloak(session.WithLogger(&logger))
	kc.SetToken("opaque")

	if !strings.Contains(buf.String(), "session: token set") {
		t.Errorf("expected session event in log, got %q", buf.String())
	}

	if strings.Contains(buf.String(), "opaque") {
		t.Fatal("token value must never be logged")
	}
}
