package logger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggerErrorIncludesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf})

	ctx := context.Background()
	ctx = log.WithRequestID(ctx, "req-123")
	ctx = log.WithSocietyID(ctx, "soc-1")

	log.Error(ctx, "boom", errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-123"`) {
		t.Fatalf("expected request_id to be preserved; entry=%s", out)
	}
	if !strings.Contains(out, `"society_id":"soc-1"`) {
		t.Fatalf("expected society_id to be preserved; entry=%s", out)
	}
	if !strings.Contains(out, `"stack"`) {
		t.Fatalf("expected stack trace on error; entry=%s", out)
	}
}

func TestLoggerWarnStackToggle(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: ParseLevel("debug"), Output: buf, WarnStack: true})
	log.Warn(context.Background(), "warny")
	if !strings.Contains(buf.String(), `"stack"`) {
		t.Fatalf("expected stack when warn stack enabled")
	}
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf})
	log.Debug(context.Background(), "quiet")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be dropped at info level, got %s", buf.String())
	}
}

func TestParseLevelDefaults(t *testing.T) {
	if lvl := ParseLevel(""); lvl != zerolog.InfoLevel {
		t.Fatalf("expected default info level, got %v", lvl)
	}
	if lvl := ParseLevel("invalid"); lvl != zerolog.InfoLevel {
		t.Fatalf("invalid level should fallback to info, got %v", lvl)
	}
	if lvl := ParseLevel(" WARN "); lvl != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %v", lvl)
	}
}

func TestWithFieldsRendersInKeyOrder(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf})

	ctx := log.WithFields(context.Background(), map[string]any{"zeta": 1, "alpha": 2, "mid": 3})
	log.Info(ctx, "ordered")

	out := buf.String()
	a, m, z := strings.Index(out, `"alpha"`), strings.Index(out, `"mid"`), strings.Index(out, `"zeta"`)
	if a < 0 || !(a < m && m < z) {
		t.Fatalf("expected alpha, mid, zeta order; entry=%s", out)
	}
}

func TestErrorDowngradesCancelledContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf})

	log.Error(context.Background(), "request aborted", fmt.Errorf("query: %w", context.Canceled))

	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("expected warn level; entry=%s", out)
	}
	if strings.Contains(out, `"stack"`) {
		t.Fatalf("cancelled requests should not carry a stack; entry=%s", out)
	}
}

func TestWithActorTagsEntries(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf})

	log.Info(log.WithActor(context.Background(), "u-1", "developer"), "acting")
	log.Info(log.WithActor(context.Background(), "u-2", ""), "acting")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two entries, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"user_id":"u-1"`) || !strings.Contains(lines[0], `"global_role":"developer"`) {
		t.Fatalf("missing actor fields; entry=%s", lines[0])
	}
	if strings.Contains(lines[1], "global_role") {
		t.Fatalf("empty role should be omitted; entry=%s", lines[1])
	}
}

func TestConsoleFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf, Format: FormatConsole})
	log.Info(context.Background(), "hello console")

	out := buf.String()
	if strings.HasPrefix(out, "{") || !strings.Contains(out, "hello console") {
		t.Fatalf("expected console output, got %s", out)
	}
}
