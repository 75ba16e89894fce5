package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/nhle/kanban-board/internal/model"
)

// GetCatalog retrieves the label catalog in display order.
func (s *SQLiteStore) GetCatalog(ctx context.Context) ([]model.LabelPreset, error) {
	var presets []model.LabelPreset
	err := s.db.SelectContext(ctx, &presets,
		"SELECT name, color FROM label_catalog ORDER BY position, name")
	if err != nil {
		return nil, fmt.Errorf("querying label catalog: %w", err)
	}
	return presets, nil
}

// SetCatalog replaces the label catalog.
func (s *SQLiteStore) SetCatalog(ctx context.Context, presets []model.LabelPreset) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM label_catalog"); err != nil {
		return fmt.Errorf("clearing label catalog: %w", err)
	}

	for i, p := range presets {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("label name must not be empty")
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO label_catalog (name, color, position) VALUES (?, ?, ?)",
			model.NormalizeLabel(p.Name), p.Color, i,
		); err != nil {
			return fmt.Errorf("inserting label %s: %w", p.Name, err)
		}
	}

	return tx.Commit()
}
