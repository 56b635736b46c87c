package logging

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"matchday-companion/internal/testutil"
)

func TestWithCommon(t *testing.T) {
	attrs := WithCommon(nil, "companion", "1.2.3")
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != FieldService || attrs[1].Key != FieldVersion {
		t.Fatalf("unexpected attrs: %+v", attrs)
	}

	if got := WithCommon(nil, "", ""); len(got) != 0 {
		t.Fatalf("expected no attrs, got %+v", got)
	}

	base := []slog.Attr{slog.String("k", "v")}
	if got := WithCommon(base, "companion", ""); len(got) != 2 {
		t.Fatalf("expected base preserved, got %+v", got)
	}
}

func TestNilSafeHelpers(t *testing.T) {
	// None of these should panic with a nil logger.
	Info(nil, "info")
	Warn(nil, "warn")
	Error(nil, "error", errors.New("boom"))
}

func TestErrorHelperAppendsError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()

	Error(logger, "operation failed", errors.New("boom"), "key", "value")

	out := buf.String()
	if !strings.Contains(out, "operation failed") || !strings.Contains(out, "boom") {
		t.Fatalf("unexpected log output: %s", out)
	}

	buf.Reset()
	Error(logger, "no underlying error", nil)
	if strings.Contains(buf.String(), "error=") {
		t.Fatalf("expected no error attr, got %s", buf.String())
	}
}
