package ui

import (
	"strings"
	"testing"

	"github.com/patrick-goecommerce/ttx/internal/terminal"
)

func TestBuildPaneTitle_ShellVsCommand(t *testing.T) {
	shell := PaneInfo{Name: "Shell #1", Mode: PaneModeShell}
	if got := buildPaneTitle(shell); !strings.Contains(got, "[Shell]") {
		t.Errorf("shell pane title = %q, want it to contain [Shell]", got)
	}

	cmd := PaneInfo{Name: "htop #2", Mode: PaneModeCommand, Command: "htop"}
	if got := buildPaneTitle(cmd); !strings.Contains(got, "[htop]") {
		t.Errorf("command pane title = %q, want it to contain [htop]", got)
	}
}

func TestRenderScreenContent_NilSessionReturnsBlankLines(t *testing.T) {
	out := renderScreenContent(nil, 10, 3)
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 2 newlines for height 3, got %d in %q", strings.Count(out, "\n"), out)
	}
}

func TestRenderScreenContent_RendersWrittenText(t *testing.T) {
	p := terminal.NewPane("1", 20, 5)
	p.Terminal.Write([]byte("hello"))

	out := renderScreenContent(p, 20, 5)
	if !strings.Contains(out, "hello") {
		t.Errorf("rendered content = %q, want it to contain 'hello'", out)
	}
}

func TestRenderPane_TooSmallReturnsEmpty(t *testing.T) {
	p := PaneInfo{Name: "x"}
	if got := RenderPane(p, Rect{Width: 2, Height: 2}); got != "" {
		t.Errorf("RenderPane with a too-small rect = %q, want empty", got)
	}
}

func TestRenderPane_IncludesPaneName(t *testing.T) {
	rect := Rect{Width: 20, Height: 8}
	p := PaneInfo{Name: "a", Session: terminal.NewPane("1", 18, 5)}

	for _, focused := range []bool{true, false} {
		p.Focused = focused
		out := RenderPane(p, rect)
		if !strings.Contains(out, "a") {
			t.Errorf("focused=%v: rendered pane missing its name, got %q", focused, out)
		}
	}
}
