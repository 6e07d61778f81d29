// Package storage persists the Tamagotchi game state between sessions.
package storage

import (
	"context"
	"errors"
	"fmt"

	"xpquest/story"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("game state not found")

// Store loads and saves the full game state. Save always overwrites.
type Store interface {
	Load(ctx context.Context) (story.GameState, error)
	Save(ctx context.Context, state story.GameState) error
	Close() error
}

// Supported drivers.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Open returns the store for driver at path.
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverJSON:
		return NewFileStore(path)
	case DriverSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
