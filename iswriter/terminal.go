package iswriter

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/nfnt/resize"

	"github.com/phanxgames/anim2d"
)

// halfBlock shows two vertically stacked pixels in one cell: the
// foreground paints the top half and the background the bottom half.
const halfBlock = '▀'

// Terminal previews frames in a terminal using half-block cells. The
// bottom row shows the frame name.
type Terminal struct {
	screen tcell.Screen
	own    bool
	md     anim2d.SequenceMetadata
	frames int
	closed bool
}

// NewTerminal draws onto screen, which must already be initialized. A nil
// screen opens the controlling terminal; it is restored on Close.
func NewTerminal(screen tcell.Screen) (*Terminal, error) {
	t := &Terminal{screen: screen}
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("terminal: %w", err)
		}
		if err := s.Init(); err != nil {
			return nil, fmt.Errorf("terminal: %w", err)
		}
		t.screen, t.own = s, true
	}
	return t, nil
}

func (t *Terminal) AddMetadata(md anim2d.SequenceMetadata) error {
	t.md = md
	return nil
}

func (t *Terminal) NextOutput(name string) (io.WriteCloser, error) {
	if t.closed {
		return nil, fmt.Errorf("next output %s: terminal closed", name)
	}
	return &frameBuffer{done: func(data []byte) error {
		img, err := decodeFrame(data)
		if err != nil {
			return err
		}
		t.frames++
		t.show(img, name)
		return nil
	}}, nil
}

// show scales img to the screen, keeping one row for the status line.
func (t *Terminal) show(img image.Image, name string) {
	cols, rows := t.screen.Size()
	rows--
	if cols <= 0 || rows <= 0 {
		return
	}
	t.screen.Clear()
	small := resize.Resize(uint(cols), uint(rows*2), img, resize.Bilinear)
	b := small.Bounds()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := cellColor(small.At(b.Min.X+x, b.Min.Y+2*y))
			bottom := cellColor(small.At(b.Min.X+x, b.Min.Y+2*y+1))
			t.screen.SetContent(x, y, halfBlock, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
	status := fmt.Sprintf("%s  %d/%d", name, t.frames, t.md.FrameCount)
	for i, r := range []rune(status) {
		if i >= cols {
			break
		}
		t.screen.SetContent(i, rows, r, nil, tcell.StyleDefault)
	}
	t.screen.Show()
}

func cellColor(c color.Color) tcell.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}

// Frames returns the number of frames shown.
func (t *Terminal) Frames() int { return t.frames }

func (t *Terminal) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	if t.own {
		t.screen.Fini()
	}
	return nil
}
