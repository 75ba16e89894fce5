// Package store reads and writes board seeds in a local SQLite file. The
// board itself lives in memory; a seed file only provides the starting
// state and the label catalog.
package store

import (
	"context"

	"github.com/nhle/kanban-board/internal/board"
	"github.com/nhle/kanban-board/internal/model"
)

// Store defines the seed persistence interface.
type Store interface {
	// === Seed ===

	LoadSeed(ctx context.Context) (board.Seed, error)
	SaveSeed(ctx context.Context, seed board.Seed) error

	// === Label catalog ===

	GetCatalog(ctx context.Context) ([]model.LabelPreset, error)
	SetCatalog(ctx context.Context, presets []model.LabelPreset) error

	Close() error
}
