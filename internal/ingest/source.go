package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Source lists and opens candidate doctor listing files.
type Source interface {
	// List returns the names of candidate files, sorted.
	List(ctx context.Context) ([]string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Describe() string
}

// DirSource reads listings from a local directory.
type DirSource struct {
	Dir string
}

// NewDirSource returns a Source over dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

func (s *DirSource) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("ingest: read dir %s: %w", s.Dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsCandidate(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (s *DirSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.Dir, filepath.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", name, err)
	}
	return f, nil
}

func (s *DirSource) Describe() string {
	return "dir:" + s.Dir
}
