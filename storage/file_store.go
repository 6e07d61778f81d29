package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"xpquest/story"
)

// FileStore keeps the game state in a single indented JSON file.
type FileStore struct {
	path string
}

// NewFileStore prepares a JSON store at path, creating its directory.
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load(ctx context.Context) (story.GameState, error) {
	if err := ctx.Err(); err != nil {
		return story.GameState{}, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return story.GameState{}, ErrNotFound
		}
		return story.GameState{}, fmt.Errorf("read state file: %w", err)
	}
	var st story.GameState
	if err := json.Unmarshal(b, &st); err != nil {
		return story.GameState{}, fmt.Errorf("decode state file: %w", err)
	}
	return st, nil
}

func (s *FileStore) Save(ctx context.Context, st story.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if st.History == nil {
		st.History = []story.Turn{}
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
