package iswriter

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	"github.com/phanxgames/anim2d"
)

// Zip stores frames as entries of a zip archive. PNG data is already
// compressed, so frames are stored without further deflating.
type Zip struct {
	zw     *zip.Writer
	file   io.Closer
	open   *frameBuffer
	names  map[string]bool
	closed bool
}

// NewZip writes an archive to w. Closing the Zip finishes the archive but
// leaves w open.
func NewZip(w io.Writer) *Zip {
	return &Zip{zw: zip.NewWriter(w), names: make(map[string]bool)}
}

// CreateZip creates the file at path and writes an archive to it.
func CreateZip(path string) (*Zip, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	z := NewZip(f)
	z.file = f
	return z, nil
}

func (z *Zip) AddMetadata(md anim2d.SequenceMetadata) error {
	data, err := marshalMetadata(md)
	if err != nil {
		return err
	}
	return z.store(MetadataName, data, zip.Deflate)
}

// NextOutput buffers the frame and stores it when the returned writer is
// closed. Entries are written one at a time, so the previous frame must be
// closed first.
func (z *Zip) NextOutput(name string) (io.WriteCloser, error) {
	if z.closed {
		return nil, fmt.Errorf("next output %s: archive closed", name)
	}
	if z.open != nil && !z.open.closed {
		return nil, fmt.Errorf("next output %s: previous frame still open", name)
	}
	name = sanitizeName(name)
	if z.names[name] {
		return nil, fmt.Errorf("next output %s: duplicate entry", name)
	}
	z.names[name] = true
	z.open = &frameBuffer{done: func(b []byte) error {
		return z.store(name, b, zip.Store)
	}}
	return z.open, nil
}

func (z *Zip) store(name string, data []byte, method uint16) error {
	w, err := z.zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
	if err != nil {
		return fmt.Errorf("zip entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("zip entry %s: %w", name, err)
	}
	return nil
}

func (z *Zip) Close() error {
	if z.closed {
		return nil
	}
	z.closed = true
	err := z.zw.Close()
	if z.file != nil {
		if cerr := z.file.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	return nil
}
