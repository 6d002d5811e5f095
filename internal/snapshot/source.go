package snapshot

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alfredjeanlab/gauge/internal/model"
)

// Source yields raw snapshot bytes from some backing location.
type Source interface {
	// Fetch reads the full snapshot document.
	Fetch(ctx context.Context) ([]byte, error)
	// Name describes the source for logs and errors.
	Name() string
}

// FileSource reads a snapshot from the local filesystem.
type FileSource struct {
	Path string
}

func (s *FileSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	return data, nil
}

func (s *FileSource) Name() string { return s.Path }

// ReaderSource wraps an already-open stream, typically stdin.
type ReaderSource struct {
	Reader io.Reader
	Label  string
}

func (s *ReaderSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := io.ReadAll(s.Reader)
	if err != nil {
		return nil, fmt.Errorf("read snapshot stream: %w", err)
	}
	return data, nil
}

func (s *ReaderSource) Name() string {
	if s.Label != "" {
		return s.Label
	}
	return "stream"
}

// Load fetches and decodes a snapshot from a source.
func Load(ctx context.Context, src Source) (*model.Snapshot, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name(), err)
	}
	return snap, nil
}
