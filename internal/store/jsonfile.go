package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var datasetNameRe = regexp.MustCompile(`^[a-z0-9_]+$`)

// FileStore keeps each dataset as <dir>/<name>.json. Writes go through a
// temp file and rename so a crashed save never leaves a half-written
// dataset behind.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Load(_ context.Context, dataset string, out any) error {
	path, err := s.path(dataset)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("read dataset %s: %w", dataset, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode dataset %s: %w", dataset, err)
	}
	return nil
}

func (s *FileStore) Save(_ context.Context, dataset string, doc any) error {
	path, err := s.path(dataset)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset %s: %w", dataset, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write dataset %s: %w", dataset, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace dataset %s: %w", dataset, err)
	}
	return nil
}

func (s *FileStore) path(dataset string) (string, error) {
	if !datasetNameRe.MatchString(dataset) {
		return "", fmt.Errorf("invalid dataset name %q", dataset)
	}
	return filepath.Join(s.dir, dataset+".json"), nil
}
