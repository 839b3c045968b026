package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
)

var rebuildCmd = &cobra.Command{
	Use:          "rebuild-protoprojects",
	Short:        "Ask the site to build every followed protoproject again",
	SilenceUsage: true,
	RunE:         runRebuild,
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, args []string) error {
	service, err := syncService(false)
	if err != nil {
		return err
	}

	if err := service.RebuildProtoprojects(context.Background()); err != nil {
		return err
	}

	slog.Info("rebuild requests completed")
	return nil
}
