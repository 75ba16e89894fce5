package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/kanban-board/internal/board"
	"github.com/nhle/kanban-board/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys.
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the highest applied migration.
func (s *SQLiteStore) SchemaVersion() (int, error) {
	var v int
	if err := s.db.Get(&v, "SELECT COALESCE(MAX(version), 0) FROM schema_version"); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		currentVersion, err = s.SchemaVersion()
		if err != nil {
			return err
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// taskRow is a task plus its placement on the board.
type taskRow struct {
	model.Task
	ColumnID model.ColumnID `db:"column_id"`
	Position int            `db:"position"`
}

type commentRow struct {
	model.Comment
	model.SideKey
	Position int `db:"position"`
}

type attachmentRow struct {
	model.Attachment
	model.SideKey
	Position int `db:"position"`
}

type labelRow struct {
	model.SideKey
	Position int    `db:"position"`
	Label    string `db:"label"`
}

// LoadSeed reads the whole board. Rows come back in column and position
// order so each list keeps its saved ordering.
func (s *SQLiteStore) LoadSeed(ctx context.Context) (board.Seed, error) {
	seed := board.EmptySeed()

	var tasks []taskRow
	err := s.db.SelectContext(ctx, &tasks, `
		SELECT id, column_id, position, title, description,
			owner, owner_initials, due, status, priority,
			created_at, updated_at
		FROM tasks
		ORDER BY column_id, position`)
	if err != nil {
		return board.Seed{}, fmt.Errorf("querying tasks: %w", err)
	}
	for _, r := range tasks {
		seed.Columns[r.ColumnID] = append(seed.Columns[r.ColumnID], r.Task)
	}

	var comments []commentRow
	err = s.db.SelectContext(ctx, &comments, `
		SELECT id, task_id, column_id, position, text
		FROM comments
		ORDER BY task_id, column_id, position`)
	if err != nil {
		return board.Seed{}, fmt.Errorf("querying comments: %w", err)
	}
	for _, r := range comments {
		seed.Comments[r.SideKey] = append(seed.Comments[r.SideKey], r.Comment)
	}

	var attachments []attachmentRow
	err = s.db.SelectContext(ctx, &attachments, `
		SELECT id, task_id, column_id, position, name, size
		FROM attachments
		ORDER BY task_id, column_id, position`)
	if err != nil {
		return board.Seed{}, fmt.Errorf("querying attachments: %w", err)
	}
	for _, r := range attachments {
		seed.Attachments[r.SideKey] = append(seed.Attachments[r.SideKey], r.Attachment)
	}

	var labels []labelRow
	err = s.db.SelectContext(ctx, &labels, `
		SELECT task_id, column_id, position, label
		FROM labels
		ORDER BY task_id, column_id, position`)
	if err != nil {
		return board.Seed{}, fmt.Errorf("querying labels: %w", err)
	}
	for _, r := range labels {
		seed.Labels[r.SideKey] = append(seed.Labels[r.SideKey], r.Label)
	}

	return seed, nil
}

// SaveSeed replaces the stored board with seed. Invalid seeds are rejected
// before anything is written.
func (s *SQLiteStore) SaveSeed(ctx context.Context, seed board.Seed) error {
	if err := seed.Validate(); err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"labels", "attachments", "comments", "tasks"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := insertTasks(ctx, tx, seed); err != nil {
		return err
	}
	if err := insertSideRows(ctx, tx, seed); err != nil {
		return err
	}

	return tx.Commit()
}

func insertTasks(ctx context.Context, tx *sqlx.Tx, seed board.Seed) error {
	stmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO tasks (
			id, column_id, position, title, description,
			owner, owner_initials, due, status, priority,
			created_at, updated_at
		) VALUES (
			:id, :column_id, :position, :title, :description,
			:owner, :owner_initials, :due, :status, :priority,
			:created_at, :updated_at
		)`)
	if err != nil {
		return fmt.Errorf("preparing task insert: %w", err)
	}
	defer stmt.Close()

	for _, col := range model.Columns() {
		for i, t := range seed.Columns[col.ID] {
			row := taskRow{Task: t, ColumnID: col.ID, Position: i}
			if _, err := stmt.ExecContext(ctx, row); err != nil {
				return fmt.Errorf("inserting task %s: %w", t.ID, err)
			}
		}
	}
	return nil
}

func insertSideRows(ctx context.Context, tx *sqlx.Tx, seed board.Seed) error {
	for key, items := range seed.Comments {
		for i, c := range items {
			row := commentRow{Comment: c, SideKey: key, Position: i}
			if _, err := tx.NamedExecContext(ctx, `
				INSERT INTO comments (id, task_id, column_id, position, text)
				VALUES (:id, :task_id, :column_id, :position, :text)`, row); err != nil {
				return fmt.Errorf("inserting comment for %s: %w", key, err)
			}
		}
	}

	for key, items := range seed.Attachments {
		for i, a := range items {
			row := attachmentRow{Attachment: a, SideKey: key, Position: i}
			if _, err := tx.NamedExecContext(ctx, `
				INSERT INTO attachments (id, task_id, column_id, position, name, size)
				VALUES (:id, :task_id, :column_id, :position, :name, :size)`, row); err != nil {
				return fmt.Errorf("inserting attachment for %s: %w", key, err)
			}
		}
	}

	for key, items := range seed.Labels {
		for i, l := range items {
			row := labelRow{SideKey: key, Position: i, Label: l}
			if _, err := tx.NamedExecContext(ctx, `
				INSERT OR IGNORE INTO labels (task_id, column_id, position, label)
				VALUES (:task_id, :column_id, :position, :label)`, row); err != nil {
				return fmt.Errorf("inserting label for %s: %w", key, err)
			}
		}
	}

	return nil
}
