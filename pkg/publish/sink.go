package publish

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/vango-dev/markup/internal/errors"
)

// Sink stores rendered output under a name.
type Sink interface {
	Put(ctx context.Context, name string, data []byte, contentType string) error
}

// WriterSink writes each blob to an io.Writer followed by a newline.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a WriterSink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Put writes data and a separating newline. The name and content type are
// ignored.
func (s *WriterSink) Put(ctx context.Context, name string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.Write(data); err != nil {
		return errors.New("P001").WithDetail(name).Wrap(err)
	}
	if _, err := s.w.Write([]byte{'\n'}); err != nil {
		return errors.New("P001").WithDetail(name).Wrap(err)
	}
	return nil
}

func (s *WriterSink) String() string { return "writer" }

// DirSink writes each blob to a file inside a directory.
type DirSink struct {
	dir string
}

// NewDirSink creates a DirSink rooted at dir. The directory is created on
// the first Put.
func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

// Dir returns the sink's root directory.
func (s *DirSink) Dir() string { return s.dir }

// Put writes data to <dir>/<name>, creating parent directories. Names must
// stay inside the directory.
func (s *DirSink) Put(ctx context.Context, name string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !filepath.IsLocal(name) {
		return errors.New("P001").
			WithDetailf("name %q escapes the output directory", name)
	}

	path := filepath.Join(s.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.New("P001").WithDetail(path).Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("P001").WithDetail(path).Wrap(err)
	}
	return nil
}

func (s *DirSink) String() string { return "dir:" + s.dir }
