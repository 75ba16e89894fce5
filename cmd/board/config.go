package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/kanban-board/internal/model"
)

var forceConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration tools",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  "Write the default configuration to --config. An existing file is kept unless --force is given.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := os.Stat(configPath); err == nil && !forceConfig {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
		if err := model.SaveConfig(configPath, model.DefaultConfig()); err != nil {
			return err
		}
		printf(cmd.OutOrStdout(), "wrote %s\n", configPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&forceConfig, "force", "f", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}
