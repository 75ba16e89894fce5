package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nhle/kanban-board/internal/app"
	"github.com/nhle/kanban-board/internal/board"
	"github.com/nhle/kanban-board/internal/logging"
	"github.com/nhle/kanban-board/internal/model"
	"github.com/nhle/kanban-board/internal/store"
	"github.com/nhle/kanban-board/internal/theme"
)

var (
	configPath string
	seedPath   string
	openTask   string
	openColumn string
)

var rootCmd = &cobra.Command{
	Use:          "board",
	Short:        "Kanban board in the terminal",
	Long:         "Four-column kanban board with task details, comments, attachments and labels.",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runBoard,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", model.DefaultConfigPath(), "path to config file")
	rootCmd.Flags().StringVarP(&seedPath, "seed", "s", "", "SQLite seed file (overrides board.seed_db)")
	rootCmd.Flags().StringVarP(&openTask, "open", "o", "", "open this task on start, e.g. KB-298")
	rootCmd.Flags().StringVar(&openColumn, "column", "", "column hint for --open")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(configCmd)
}

func runBoard(cmd *cobra.Command, _ []string) error {
	link, err := deepLink(openTask, openColumn)
	if err != nil {
		return err
	}

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	opts := logging.DefaultOptions(cfg.Log.Path)
	opts.Level = cfg.Log.Level
	logger, logFile, err := logging.Open(opts)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if err := theme.Apply(cfg.Display.Theme); err != nil {
		logger.Warn("using default theme", "err", err)
	}

	path := seedPath
	if path == "" {
		path = cfg.Board.SeedDB
	}
	seed, catalog, err := loadBoard(cmd.Context(), path, cfg, logger)
	if err != nil {
		logger.Error("loading board", "seed", path, "err", err)
		return err
	}

	engine := board.NewEngine(seed,
		board.WithLogger(logger),
		board.WithCurrentUser(cfg.User.Name, cfg.User.Initials),
		board.WithIDPrefix(cfg.Board.IDPrefix),
	)

	logger.Info("starting board", "seed", path, "open", link.TaskID)
	m := app.New(engine, app.Options{
		Logger:   logger,
		Catalog:  catalog,
		DeepLink: link,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	return nil
}

// deepLink validates the --open and --column flags.
func deepLink(taskID, column string) (model.DeepLink, error) {
	if taskID == "" {
		if column != "" {
			return model.DeepLink{}, errors.New("--column needs --open")
		}
		return model.DeepLink{}, nil
	}
	link := model.DeepLink{TaskID: taskID}
	if column != "" {
		col, ok := model.LookupColumn(model.ColumnID(column))
		if !ok {
			return model.DeepLink{}, fmt.Errorf("unknown column %q", column)
		}
		link.ColumnID = col.ID
	}
	return link, nil
}

// loadBoard returns the starting board and label catalog. Without a seed
// file the demo board and the configured catalog are used. Seed
// inconsistencies are logged; the engine repairs them on load.
func loadBoard(ctx context.Context, path string, cfg *model.AppConfig, logger *log.Logger) (board.Seed, []model.LabelPreset, error) {
	fromConfig := model.PresetsFromNames(cfg.Board.LabelCatalog)
	if path == "" {
		return board.DemoSeed(), fromConfig, nil
	}

	s, release, err := openSeed(ctx, path, false)
	if err != nil {
		return board.Seed{}, nil, err
	}
	defer release()

	seed, err := s.LoadSeed(ctx)
	if err != nil {
		return board.Seed{}, nil, err
	}
	if err := seed.Validate(); err != nil {
		logger.Warn("seed has inconsistencies", "seed", path, "err", err)
	}

	catalog, err := s.GetCatalog(ctx)
	if err != nil {
		return board.Seed{}, nil, err
	}
	if len(catalog) == 0 {
		catalog = fromConfig
	}
	return seed, catalog, nil
}

// lockWait bounds how long the board waits for a seed export to finish.
const lockWait = 5 * time.Second

// openSeed locks and opens a seed file. Readers share the lock and writers
// hold it alone. A reader's file must already exist, otherwise
// NewSQLiteStore would silently create a mistyped path. The returned
// release func closes the store and drops the lock.
func openSeed(ctx context.Context, path string, write bool) (*store.SQLiteStore, func(), error) {
	if !write {
		if _, err := os.Stat(path); err != nil {
			return nil, nil, fmt.Errorf("seed file: %w", err)
		}
	}

	lockCtx, cancel := context.WithTimeout(ctx, lockWait)
	defer cancel()
	lock := store.NewSeedLock(path)
	acquire := lock.RLock
	if write {
		acquire = lock.Lock
	}
	if err := acquire(lockCtx); err != nil {
		return nil, nil, err
	}

	s, err := store.NewSQLiteStore(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, nil, err
	}
	return s, func() {
		_ = s.Close()
		_ = lock.Unlock()
	}, nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
