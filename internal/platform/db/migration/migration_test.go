package migration

import (
	"errors"
	"strings"
	"testing"
)

func TestParseAction(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"up", "down", "drop", "version"} {
		if _, err := ParseAction(raw); err != nil {
			t.Fatalf("ParseAction(%q) returned error: %v", raw, err)
		}
	}

	if _, err := ParseAction("sideways"); !errors.Is(err, ErrUnsupportedAction) {
		t.Fatalf("expected ErrUnsupportedAction, got %v", err)
	}
}

func TestRun_UnsupportedActionFailsBeforeConnecting(t *testing.T) {
	t.Parallel()

	err := Run(Action("force"), "assets/migrations", "postgres://invalid", nil)
	if !errors.Is(err, ErrUnsupportedAction) {
		t.Fatalf("expected ErrUnsupportedAction, got %v", err)
	}
}

func TestSourceURL(t *testing.T) {
	t.Parallel()

	got, err := SourceURL("assets/migrations")
	if err != nil {
		t.Fatalf("SourceURL returned error: %v", err)
	}
	if !strings.HasPrefix(got, "file://") || !strings.HasSuffix(got, "assets/migrations") {
		t.Fatalf("unexpected source url %q", got)
	}
}
