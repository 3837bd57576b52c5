package ui

import (
	"strings"
	"testing"

	"github.com/patrick-goecommerce/ttx/internal/config"
)

func TestNewDialog_StartsHidden(t *testing.T) {
	d := NewDialog(config.DefaultConfig())
	if d.Visible {
		t.Error("a freshly created dialog should not be visible")
	}
	if len(d.Options) != 3 {
		t.Fatalf("Options length = %d, want 3", len(d.Options))
	}
}

func TestDialog_OpenResetsCursor(t *testing.T) {
	d := NewDialog(config.DefaultConfig())
	d.Cursor = 2
	d.Open()

	if !d.Visible {
		t.Error("Open should make the dialog visible")
	}
	if d.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0 after Open", d.Cursor)
	}
}

func TestDialog_MoveUpDownClampsAtEdges(t *testing.T) {
	d := NewDialog(config.DefaultConfig())
	d.Open()

	d.MoveUp()
	if d.Cursor != 0 {
		t.Errorf("MoveUp at top should stay at 0, got %d", d.Cursor)
	}

	for i := 0; i < len(d.Options)+2; i++ {
		d.MoveDown()
	}
	if d.Cursor != len(d.Options)-1 {
		t.Errorf("Cursor = %d, want clamped to %d", d.Cursor, len(d.Options)-1)
	}
}

func TestDialog_SelectMapsCursorToLaunchType(t *testing.T) {
	tests := []struct {
		cursor int
		want   LaunchType
	}{
		{0, LaunchSplitRight},
		{1, LaunchSplitDown},
		{2, LaunchNewTab},
	}

	for _, tt := range tests {
		d := NewDialog(config.DefaultConfig())
		d.Open()
		d.Cursor = tt.cursor

		done := d.Select()
		if !done {
			t.Fatalf("Select() returned false for cursor %d", tt.cursor)
		}
		if d.Choice.Type != tt.want {
			t.Errorf("cursor %d: Choice.Type = %v, want %v", tt.cursor, d.Choice.Type, tt.want)
		}
		if d.Visible {
			t.Error("Select should close the dialog")
		}
	}
}

func TestDialog_RenderIncludesOptions(t *testing.T) {
	d := NewDialog(config.DefaultConfig())
	d.Open()

	out := d.Render(80, 24)
	for _, opt := range []string{"Split right", "Split down", "New tab"} {
		if !strings.Contains(out, opt) {
			t.Errorf("rendered dialog missing option %q", opt)
		}
	}
}

func TestDialog_RenderHiddenReturnsEmpty(t *testing.T) {
	d := NewDialog(config.DefaultConfig())
	if got := d.Render(80, 24); got != "" {
		t.Errorf("Render on a hidden dialog = %q, want empty", got)
	}
}
