package iswriter

import (
	"errors"
	"io"

	"github.com/phanxgames/anim2d"
)

// Multi duplicates a sequence to several writers, like io.MultiWriter.
func Multi(writers ...anim2d.ImageSequenceWriter) anim2d.ImageSequenceWriter {
	all := make([]anim2d.ImageSequenceWriter, 0, len(writers))
	for _, w := range writers {
		if w != nil {
			all = append(all, w)
		}
	}
	return multiWriter(all)
}

type multiWriter []anim2d.ImageSequenceWriter

func (m multiWriter) AddMetadata(md anim2d.SequenceMetadata) error {
	for _, w := range m {
		if err := w.AddMetadata(md); err != nil {
			return err
		}
	}
	return nil
}

func (m multiWriter) NextOutput(name string) (io.WriteCloser, error) {
	outs := make(multiOutput, 0, len(m))
	for _, w := range m {
		out, err := w.NextOutput(name)
		if err != nil {
			_ = outs.Close()
			return nil, err
		}
		outs = append(outs, out)
	}
	return outs, nil
}

// Close closes every writer and joins their errors.
func (m multiWriter) Close() error {
	var errs []error
	for _, w := range m {
		errs = append(errs, w.Close())
	}
	return errors.Join(errs...)
}

type multiOutput []io.WriteCloser

func (m multiOutput) Write(p []byte) (int, error) {
	for _, w := range m {
		n, err := w.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

func (m multiOutput) Close() error {
	var errs []error
	for _, w := range m {
		errs = append(errs, w.Close())
	}
	return errors.Join(errs...)
}
