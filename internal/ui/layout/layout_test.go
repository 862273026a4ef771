package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) || !IsTooSmall(MinWidth, MinHeight-1) {
		t.Error("below minimum should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("exact minimum should fit")
	}
	if msg := TooSmall(40, 10); !strings.Contains(msg, "Current: 40 x 10") {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestComposeFillsHeight(t *testing.T) {
	c := Chrome{
		Title:  "Counting 1-20",
		Status: "Arjun  ✦ 120 XP",
		Hints:  []KeyHint{{Key: "Esc", Description: "Back"}},
	}
	var gotW, gotH int
	frame := Compose(c, 80, 30, func(w, h int) string {
		gotW, gotH = w, h
		return "body"
	})

	if gotW != 80 || gotH <= 0 || gotH >= 30 {
		t.Fatalf("body got %dx%d", gotW, gotH)
	}
	if h := lipgloss.Height(frame); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
	for _, want := range []string{"Vidya", "Counting 1-20", "120 XP", "Esc", "Back", "body"} {
		if !strings.Contains(frame, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestComposeClipsTallBody(t *testing.T) {
	frame := Compose(Chrome{}, 70, 20, func(w, h int) string {
		return strings.Repeat("line\n", 100)
	})
	if h := lipgloss.Height(frame); h != 20 {
		t.Errorf("frame height = %d, want 20", h)
	}
}
