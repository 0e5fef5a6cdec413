package iswriter

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDirWritesFramesAndMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "frames")
	core, logs := observer.New(zapcore.DebugLevel)
	d, err := NewDir(path, zap.New(core))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.AddMetadata(testMetadata()); err != nil {
		t.Fatal(err)
	}
	frame := solidPNG(t, 8, 6, color.Black)
	writeFrame(t, d, "img01.png", frame)
	writeFrame(t, d, "img02.png", frame)
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}

	if d.Frames() != 2 {
		t.Errorf("Frames = %d, want 2", d.Frames())
	}
	got, err := os.ReadFile(filepath.Join(path, "img02.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, frame) {
		t.Error("frame file contents differ")
	}
	data, err := os.ReadFile(filepath.Join(path, MetadataName))
	if err != nil {
		t.Fatal(err)
	}
	md, err := ReadMetadata(data)
	if err != nil {
		t.Fatal(err)
	}
	if md.FrameCount != 3 || md.RunID != "run-1" {
		t.Errorf("metadata = %+v", md)
	}

	done := logs.FilterMessage("image sequence written").All()
	if len(done) != 1 {
		t.Fatalf("got %d completion records, want 1", len(done))
	}
	if n := done[0].ContextMap()["frames"]; n != int64(2) {
		t.Errorf("frames field = %v, want 2", n)
	}
}

func TestDirKeepsFramesInside(t *testing.T) {
	root := t.TempDir()
	d, err := NewDir(filepath.Join(root, "seq"), nil)
	if err != nil {
		t.Fatal(err)
	}
	writeFrame(t, d, "../outside.png", []byte("x"))
	if _, err := os.Stat(filepath.Join(root, "outside.png")); !os.IsNotExist(err) {
		t.Error("frame escaped the output directory")
	}
	if _, err := os.Stat(filepath.Join(root, "seq", ".._outside.png")); err != nil {
		t.Errorf("sanitized frame missing: %v", err)
	}
}

func TestDirRejectsAfterClose(t *testing.T) {
	d, err := NewDir(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	d.Close()
	if _, err := d.NextOutput("img1.png"); err == nil {
		t.Error("expected error after Close")
	}
}
