package iswriter

import (
	"archive/zip"
	"bytes"
	"image/color"
	"io"
	"path/filepath"
	"testing"
)

func readEntry(t *testing.T, f *zip.File) []byte {
	t.Helper()
	rc, err := f.Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestZipStoresFramesInOrder(t *testing.T) {
	var buf bytes.Buffer
	z := NewZip(&buf)
	if err := z.AddMetadata(testMetadata()); err != nil {
		t.Fatal(err)
	}
	red := solidPNG(t, 4, 4, color.NRGBA{255, 0, 0, 255})
	blue := solidPNG(t, 4, 4, color.NRGBA{0, 0, 255, 255})
	writeFrame(t, z, "img01.png", red)
	writeFrame(t, z, "img02.png", blue)
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	want := []string{MetadataName, "img01.png", "img02.png"}
	if len(names) != len(want) {
		t.Fatalf("entries = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, names[i], want[i])
		}
	}
	if r.File[1].Method != zip.Store {
		t.Errorf("frame method = %d, want Store", r.File[1].Method)
	}
	if !bytes.Equal(readEntry(t, r.File[2]), blue) {
		t.Error("second frame differs")
	}
	md, err := ReadMetadata(readEntry(t, r.File[0]))
	if err != nil {
		t.Fatal(err)
	}
	if md.Width != 8 {
		t.Errorf("metadata width = %d", md.Width)
	}
}

func TestZipRejectsOverlapAndDuplicates(t *testing.T) {
	z := NewZip(io.Discard)
	out, err := z.NextOutput("a.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.NextOutput("b.png"); err == nil {
		t.Error("expected error while a frame is open")
	}
	out.Close()
	if _, err := z.NextOutput("a.png"); err == nil {
		t.Error("expected duplicate entry error")
	}
	z.Close()
	if _, err := z.NextOutput("c.png"); err == nil {
		t.Error("expected error after Close")
	}
}

func TestCreateZipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.zip")
	z, err := CreateZip(path)
	if err != nil {
		t.Fatal(err)
	}
	writeFrame(t, z, "img1.png", []byte("data"))
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if len(r.File) != 1 || string(readEntry(t, r.File[0])) != "data" {
		t.Errorf("archive contents unexpected: %d entries", len(r.File))
	}
}
