package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FSSink stores objects as files under a root directory
type FSSink struct {
	root string
}

var _ Sink = (*FSSink)(nil)

// NewFSSink creates root if needed
func NewFSSink(root string) (*FSSink, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &FSSink{root: root}, nil
}

func (s *FSSink) Name() string { return "fs" }

func (s *FSSink) path(objectName string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(objectName))
	p := filepath.Join(s.root, clean)
	if !strings.HasPrefix(p, filepath.Clean(s.root)+string(filepath.Separator)) {
		return "", fmt.Errorf("object name %q escapes archive root", objectName)
	}
	return p, nil
}

// Put writes the object atomically through a temp file
func (s *FSSink) Put(ctx context.Context, objectName string, r io.Reader, _ int64, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(objectName)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to store file: %w", err)
	}
	return nil
}

// List returns object names under prefix, sorted
func (s *FSSink) List(_ context.Context, prefix string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".upload-") {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, prefix) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}
