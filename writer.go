package anim2d

import (
	"fmt"
	"io"
	"strconv"
)

// SequenceMetadata describes an image sequence before its first frame is
// written.
type SequenceMetadata struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	MimeType     string  `yaml:"mimeType"`
	FrameRate    float64 `yaml:"frameRate"`
	NameTemplate string  `yaml:"nameTemplate"`
	FrameCount   int     `yaml:"frameCount"`
	RunID        string  `yaml:"runID"`
}

// ImageSequenceWriter receives the frames of an animation in order.
// NextOutput and Close are called from a single goroutine.
type ImageSequenceWriter interface {
	AddMetadata(md SequenceMetadata) error
	// NextOutput returns the destination for the next frame. The returned
	// writer is closed once the encoded frame has been written to it.
	NextOutput(name string) (io.WriteCloser, error)
	Close() error
}

// frameNameTemplate returns the printf template for frame file names, wide
// enough for maxFrames frames.
func frameNameTemplate(maxFrames int) string {
	return fmt.Sprintf("img%%0%dd.png", len(strconv.Itoa(max(maxFrames, 0))))
}
