package iswriter

import (
	"image/color"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimTerminal(t *testing.T, cols, rows int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(cols, rows)
	term, err := NewTerminal(s)
	if err != nil {
		t.Fatal(err)
	}
	return term, s
}

func TestTerminalShowsHalfBlocks(t *testing.T) {
	term, s := newSimTerminal(t, 20, 4)
	term.AddMetadata(testMetadata())
	writeFrame(t, term, "img01.png", solidPNG(t, 24, 12, color.NRGBA{255, 0, 0, 255}))

	cells, w, h := s.GetContents()
	if w != 20 || h != 4 {
		t.Fatalf("screen = %dx%d", w, h)
	}
	c := cells[1*w+5]
	if len(c.Runes) == 0 || c.Runes[0] != halfBlock {
		t.Fatalf("cell runes = %q, want half block", c.Runes)
	}
	fg, bg, _ := c.Style.Decompose()
	for _, col := range []tcell.Color{fg, bg} {
		r, g, b := col.RGB()
		if r < 240 || g > 15 || b > 15 {
			t.Errorf("cell color = (%d,%d,%d), want red", r, g, b)
		}
	}

	var status strings.Builder
	for x := 0; x < w; x++ {
		if rs := cells[(h-1)*w+x].Runes; len(rs) > 0 {
			status.WriteRune(rs[0])
		}
	}
	if !strings.HasPrefix(status.String(), "img01.png  1/3") {
		t.Errorf("status line = %q", status.String())
	}
	if term.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", term.Frames())
	}
}

func TestTerminalRejectsAfterClose(t *testing.T) {
	term, _ := newSimTerminal(t, 10, 5)
	if err := term.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := term.NextOutput("x.png"); err == nil {
		t.Error("expected error after Close")
	}
}

func TestTerminalBadFrame(t *testing.T) {
	term, _ := newSimTerminal(t, 10, 5)
	out, err := term.NextOutput("bad.png")
	if err != nil {
		t.Fatal(err)
	}
	out.Write([]byte("garbage"))
	if err := out.Close(); err == nil {
		t.Error("expected decode error on Close")
	}
}
