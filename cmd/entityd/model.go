package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"entityd/internal/modelstore"
)

func newModelCmd(g *globalFlags) *cobra.Command {
	modelCmd := &cobra.Command{Use: "model", Short: "Manage the on-disk model", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("model requires a subcommand: pull|path")
	}}
	pull := &cobra.Command{
		Use:     "pull",
		Short:   "Download and unpack the configured model if it is missing",
		Example: "  entityd model pull --model-name en-v2 --model-url https://example.com/en-v2.tar.gz",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g, nil)
			if err != nil {
				return err
			}
			if cfg.ModelName == "" {
				return fmt.Errorf("no model configured: set --model-name (the built-in model needs no download)")
			}
			path, err := modelstore.Ensure(cmd.Context(), storeOptions(cfg, newLogger(cfg)))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	path := &cobra.Command{
		Use:   "path",
		Short: "Print where the configured model lives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g, nil)
			if err != nil {
				return err
			}
			if cfg.ModelName == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "built-in")
				return nil
			}
			p, err := modelstore.Path(storeOptions(cfg, newLogger(cfg)))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
	modelCmd.AddCommand(pull, path)
	return modelCmd
}
