package iswriter

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/anim2d"
)

// WindowOptions configures a Window.
type WindowOptions struct {
	Title string
	// Scale multiplies the window size relative to the frame size.
	Scale int
	// Buffer is the number of decoded frames that may wait for display
	// before NextOutput's writer blocks on Close.
	Buffer int
	// Hold keeps the window open on the last frame after the sequence is
	// closed, until the user closes it.
	Hold bool
}

// Window plays frames in an ebiten window at the sequence frame rate.
// Frames are produced on one goroutine while Run owns the main thread.
type Window struct {
	opts WindowOptions

	queue chan *image.RGBA
	quit  chan struct{}
	once  sync.Once

	mu     sync.Mutex
	width  int
	height int
	closed bool

	current *image.RGBA
	dirty   bool
	img     *ebiten.Image
	shown   int
}

// NewWindow returns a window player. Call Run on the main goroutine.
func NewWindow(opts WindowOptions) *Window {
	if opts.Title == "" {
		opts.Title = "anim2d"
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Buffer <= 0 {
		opts.Buffer = 8
	}
	return &Window{
		opts:  opts,
		queue: make(chan *image.RGBA, opts.Buffer),
		quit:  make(chan struct{}),
	}
}

func (w *Window) AddMetadata(md anim2d.SequenceMetadata) error {
	w.mu.Lock()
	w.width, w.height = md.Width, md.Height
	w.mu.Unlock()
	if md.FrameRate > 0 {
		ebiten.SetTPS(max(1, int(md.FrameRate+.5)))
	}
	return nil
}

func (w *Window) NextOutput(name string) (io.WriteCloser, error) {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("next output %s: window closed", name)
	}
	return &frameBuffer{done: w.enqueue}, nil
}

func (w *Window) enqueue(data []byte) error {
	img, err := decodeFrame(data)
	if err != nil {
		return err
	}
	select {
	case w.queue <- img:
	case <-w.quit:
		// window gone; keep producing without a viewer
	}
	return nil
}

// Close marks the end of the sequence.
func (w *Window) Close() error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	return nil
}

// Run opens the window and blocks until it is closed or, without Hold,
// until the last frame has been shown.
func (w *Window) Run() error {
	defer w.stop()
	w.mu.Lock()
	width, height := w.layoutSize()
	w.mu.Unlock()
	ebiten.SetWindowTitle(w.opts.Title)
	ebiten.SetWindowSize(width*w.opts.Scale, height*w.opts.Scale)
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

func (w *Window) stop() {
	w.once.Do(func() { close(w.quit) })
}

// Shown returns the number of frames taken from the queue for display.
func (w *Window) Shown() int { return w.shown }

// Update implements ebiten.Game. It advances at most one frame per tick.
func (w *Window) Update() error {
	select {
	case img := <-w.queue:
		w.current = img
		w.dirty = true
		w.shown++
		return nil
	default:
	}
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed && !w.opts.Hold && len(w.queue) == 0 {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.current == nil {
		return
	}
	if w.dirty {
		b := w.current.Bounds()
		if w.img == nil || w.img.Bounds().Size() != b.Size() {
			if w.img != nil {
				w.img.Deallocate()
			}
			w.img = ebiten.NewImage(b.Dx(), b.Dy())
		}
		w.img.WritePixels(w.current.Pix)
		w.dirty = false
	}
	screen.DrawImage(w.img, nil)
}

// Layout implements ebiten.Game with the frame size as the logical screen.
func (w *Window) Layout(_, _ int) (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.layoutSize()
}

func (w *Window) layoutSize() (int, int) {
	if w.width <= 0 || w.height <= 0 {
		return 320, 240
	}
	return w.width, w.height
}
