// Package iswriter provides destinations for the frames an animation
// produces: a directory of PNG files, a zip archive, a live ebiten window
// and a terminal preview. Writers can be combined with [Multi].
package iswriter

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/anim2d"
)

// MetadataName is the file name the sequence metadata is stored under.
const MetadataName = "sequence.yaml"

func marshalMetadata(md anim2d.SequenceMetadata) ([]byte, error) {
	data, err := yaml.Marshal(md)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return data, nil
}

// ReadMetadata decodes a metadata document written by Dir or Zip.
func ReadMetadata(data []byte) (anim2d.SequenceMetadata, error) {
	var md anim2d.SequenceMetadata
	if err := yaml.Unmarshal(data, &md); err != nil {
		return md, fmt.Errorf("parse metadata: %w", err)
	}
	return md, nil
}

// sanitizeName replaces characters that are unsafe in file names with
// underscores and falls back to "unnamed" for empty strings.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return "unnamed"
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// frameBuffer collects one encoded frame and hands it to done on Close.
type frameBuffer struct {
	bytes.Buffer
	done   func([]byte) error
	closed bool
}

func (f *frameBuffer) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.done(f.Bytes())
}

// decodeFrame decodes an encoded frame into an RGBA image.
func decodeFrame(data []byte) (*image.RGBA, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}
	return rgba, nil
}
