package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/kanban-board/internal/board"
	"github.com/nhle/kanban-board/internal/model"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed file tools",
	Long:  "Create and inspect the SQLite files the board can start from.",
}

var seedExportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Write the demo board to a seed file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := model.LoadConfig(configPath)
		if err != nil {
			return err
		}

		s, release, err := openSeed(cmd.Context(), args[0], true)
		if err != nil {
			return err
		}
		defer release()

		seed := board.DemoSeed()
		if err := s.SaveSeed(cmd.Context(), seed); err != nil {
			return err
		}
		if err := s.SetCatalog(cmd.Context(), model.PresetsFromNames(cfg.Board.LabelCatalog)); err != nil {
			return err
		}

		printf(cmd.OutOrStdout(), "wrote %d tasks to %s\n", countTasks(seed), args[0])
		return nil
	},
}

var seedShowCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Print a seed file's column counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, release, err := openSeed(cmd.Context(), args[0], false)
		if err != nil {
			return err
		}
		defer release()

		seed, err := s.LoadSeed(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, c := range model.Columns() {
			printf(w, "%-12s %d\n", c.Title, len(seed.Columns[c.ID]))
		}
		printf(w, "%-12s %d\n", "Comentarios", sideCount(seed.Comments))
		printf(w, "%-12s %d\n", "Adjuntos", sideCount(seed.Attachments))
		printf(w, "%-12s %d\n", "Etiquetas", sideCount(seed.Labels))
		if err := seed.Validate(); err != nil {
			return fmt.Errorf("seed is inconsistent: %w", err)
		}
		return nil
	},
}

func init() {
	seedCmd.AddCommand(seedExportCmd)
	seedCmd.AddCommand(seedShowCmd)
}

func countTasks(seed board.Seed) int {
	n := 0
	for _, tasks := range seed.Columns {
		n += len(tasks)
	}
	return n
}

func sideCount[V any](m map[model.SideKey][]V) int {
	n := 0
	for _, v := range m {
		n += len(v)
	}
	return n
}
