package anim2d

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// frameJob is one frame moving through the encoder: encoded concurrently,
// written in submission order.
type frameJob struct {
	name string
	img  *image.RGBA
	data []byte
	err  error
	done chan struct{}
}

// frameEncoder encodes frames to PNG on worker goroutines and hands them to
// the sequence writer in the order they were produced. The first failure
// is reported by the next submit or by close.
type frameEncoder struct {
	w    ImageSequenceWriter
	log  *zap.Logger
	enc  errgroup.Group
	out  errgroup.Group
	jobs chan *frameJob

	mu     sync.Mutex
	err    error
	closed bool
}

func newFrameEncoder(w ImageSequenceWriter, workers int, log *zap.Logger) *frameEncoder {
	if workers <= 0 {
		workers = 1
	}
	e := &frameEncoder{
		w:    w,
		log:  log,
		jobs: make(chan *frameJob, workers*2),
	}
	e.enc.SetLimit(workers)
	e.out.Go(e.writeLoop)
	return e
}

func (e *frameEncoder) fail(err error) {
	e.mu.Lock()
	if e.err == nil {
		e.err = err
	}
	e.mu.Unlock()
}

func (e *frameEncoder) failed() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// submit copies img and queues it for encoding as name.
func (e *frameEncoder) submit(name string, img image.Image) error {
	e.mu.Lock()
	closed, err := e.closed, e.err
	e.mu.Unlock()
	if closed {
		return stateError("submit", "frame encoder closed")
	}
	if err != nil {
		return err
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)

	job := &frameJob{name: name, img: dst, done: make(chan struct{})}
	e.jobs <- job
	e.enc.Go(func() error {
		defer close(job.done)
		var buf bytes.Buffer
		if err := png.Encode(&buf, job.img); err != nil {
			job.err = fmt.Errorf("encode %s: %w", job.name, err)
			return job.err
		}
		job.data = buf.Bytes()
		job.img = nil
		return nil
	})
	return nil
}

func (e *frameEncoder) writeLoop() error {
	for job := range e.jobs {
		<-job.done
		if e.failed() != nil {
			continue
		}
		if job.err != nil {
			e.fail(job.err)
			continue
		}
		if err := e.write(job); err != nil {
			e.fail(err)
			continue
		}
		e.log.Debug("frame written", zap.String("name", job.name), zap.Int("bytes", len(job.data)))
	}
	return e.failed()
}

func (e *frameEncoder) write(job *frameJob) error {
	out, err := e.w.NextOutput(job.name)
	if err != nil {
		return fmt.Errorf("open %s: %w", job.name, err)
	}
	if _, err := out.Write(job.data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", job.name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", job.name, err)
	}
	return nil
}

// close waits for every submitted frame to be written.
func (e *frameEncoder) close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return e.failed()
	}
	e.closed = true
	e.mu.Unlock()

	encErr := e.enc.Wait()
	close(e.jobs)
	outErr := e.out.Wait()
	if outErr != nil {
		return outErr
	}
	return encErr
}
