package iswriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/phanxgames/anim2d"
)

// Dir writes each frame to its own file in a directory, with the sequence
// metadata alongside in MetadataName.
type Dir struct {
	path   string
	log    *zap.Logger
	frames int
	closed bool
}

// NewDir creates path (and parents) if needed and returns a writer into
// it. A nil logger is replaced by a no-op logger.
func NewDir(path string, log *zap.Logger) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", path, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dir{path: path, log: log}, nil
}

// Path returns the output directory.
func (d *Dir) Path() string { return d.path }

// Frames returns the number of frames opened so far.
func (d *Dir) Frames() int { return d.frames }

func (d *Dir) AddMetadata(md anim2d.SequenceMetadata) error {
	data, err := marshalMetadata(md)
	if err != nil {
		return err
	}
	path := filepath.Join(d.path, MetadataName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (d *Dir) NextOutput(name string) (io.WriteCloser, error) {
	if d.closed {
		return nil, fmt.Errorf("next output %s: writer closed", name)
	}
	path := filepath.Join(d.path, sanitizeName(name))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	d.frames++
	d.log.Debug("frame file", zap.String("path", path))
	return f, nil
}

func (d *Dir) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.log.Info("image sequence written", zap.String("dir", d.path), zap.Int("frames", d.frames))
	return nil
}
