package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BALASANKARP/Edurecap/internal/recording"
)

type implFile struct {
	path string
}

// NewFile stores the sequence as a JSON array in a single file.
func NewFile(path string) Store {
	return &implFile{path: path}
}

func (s *implFile) LoadAll(ctx context.Context) ([]recording.Recording, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []recording.Recording{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", recording.ErrStorage, s.path, err)
	}
	return decode(data)
}

func (s *implFile) SaveAll(ctx context.Context, recs []recording.Recording) error {
	data, err := encode(recs)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("%w: create directory: %v", recording.ErrStorage, err)
	}

	// Write then rename so a crash never leaves a truncated file behind.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".recordings-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", recording.ErrStorage, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write temp file: %v", recording.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close temp file: %v", recording.ErrStorage, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replace %s: %v", recording.ErrStorage, s.path, err)
	}

	return nil
}

func (s *implFile) Close() error {
	return nil
}

func encode(recs []recording.Recording) ([]byte, error) {
	if recs == nil {
		recs = []recording.Recording{}
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("%w: encode recordings: %v", recording.ErrStorage, err)
	}
	return data, nil
}

func decode(data []byte) ([]recording.Recording, error) {
	recs := []recording.Recording{}
	if len(data) == 0 {
		return recs, nil
	}
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: decode recordings: %v", recording.ErrStorage, err)
	}
	return recs, nil
}
