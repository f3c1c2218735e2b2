// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "json" {
		t.Errorf("DefaultConfig() level/format = %s/%s, want info/json", cfg.Level, cfg.Format)
	}
	if cfg.Caller || !cfg.Timestamp {
		t.Errorf("DefaultConfig() caller/timestamp = %v/%v, want false/true", cfg.Caller, cfg.Timestamp)
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Str("index", "CLIP_v2").Msg("test message")
	out := buf.String()
	for _, want := range []string{"test message", `"level":"info"`, `"index":"CLIP_v2"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}

	buf.Reset()
	Init(Config{Level: "warn", Output: &buf})
	Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Errorf("info message written at warn level: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if ValidLevel("verbose") || !ValidLevel("Warn") {
		t.Error("ValidLevel() misclassified a level name")
	}
}

func TestCtx(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithSessionID(ctx, "sess-1")

	Ctx(ctx).Info().Msg("turn")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-1"`) || !strings.Contains(out, `"session_id":"sess-1"`) {
		t.Errorf("Ctx() output = %q, want request and session ids", out)
	}
	if RequestIDFromContext(context.Background()) != "" || SessionIDFromContext(context.Background()) != "" {
		t.Error("empty context returned ids")
	}
	if id := GenerateRequestID(); len(id) != 36 {
		t.Errorf("GenerateRequestID() = %q, want uuid", id)
	}
}

func TestSlogHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sl := slog.New(NewSlogHandler(NewTestLogger(&buf))).With("service", "http").WithGroup("event")

	sl.Warn("service restarted", "attempt", 2, "backoff", "1s")

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"service":"http"`, `"event.attempt":2`, "service restarted"} {
		if !strings.Contains(out, want) {
			t.Errorf("slog output %q does not contain %q", out, want)
		}
	}
}

func TestWatermillLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var adapter watermill.LoggerAdapter = NewWatermillLogger(NewTestLogger(&buf))
	adapter = adapter.With(watermill.LogFields{"topic": "feedback.committed"})

	adapter.Error("handler failed", errors.New("boom"), watermill.LogFields{"attempt": 3})

	out := buf.String()
	for _, want := range []string{`"topic":"feedback.committed"`, `"attempt":3`, `"error":"boom"`, "handler failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("watermill output %q does not contain %q", out, want)
		}
	}
}
