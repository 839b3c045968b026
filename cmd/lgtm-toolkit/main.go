package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/naag/lgtm-toolkit/internal/config"
	"github.com/naag/lgtm-toolkit/internal/github"
	"github.com/naag/lgtm-toolkit/internal/lgtm"
	"github.com/naag/lgtm-toolkit/internal/sync"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "lgtm-toolkit",
	Short:        "LGTM Toolkit - Bulk project management for lgtm.com",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Configure logging based on verbose level
		var level slog.Level
		switch verboseLevel {
		case 0:
			level = slog.LevelInfo
		case 1, 2:
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
}

var (
	configPath   string
	verboseLevel int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yml", "Path to the credentials file")
	rootCmd.PersistentFlags().CountVarP(&verboseLevel, "verbose", "v", "Verbosity level (-v for debug logs, -vv for debug logs and HTTP traffic)")
}

// site builds the authenticated site client from the config file.
func site() (*lgtm.Site, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	creds := lgtm.Credentials{
		Nonce:        cfg.LGTM.Nonce,
		LongSession:  cfg.LGTM.LongSession,
		ShortSession: cfg.LGTM.ShortSession,
		APIVersion:   cfg.LGTM.APIVersion,
	}
	return lgtm.NewSite(creds, verboseLevel >= 2), cfg, nil
}

// syncService builds the orchestration service; withGitHub selects whether
// a GitHub client is required too.
func syncService(withGitHub bool) (*sync.Service, error) {
	siteClient, cfg, err := site()
	if err != nil {
		return nil, err
	}

	var githubClient github.Client
	if withGitHub {
		githubClient, err = github.NewGraphQLClient(cfg.GitHubToken(), verboseLevel >= 2)
		if err != nil {
			return nil, err
		}
	}
	return sync.NewService(siteClient, githubClient), nil
}
