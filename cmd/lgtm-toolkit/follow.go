package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/naag/lgtm-toolkit/internal/github"
	"github.com/naag/lgtm-toolkit/internal/github/repourl"
)

var followRepoCmd = &cobra.Command{
	Use:          "follow-repo <repository>",
	Short:        "Follow a single repository given as URL or owner/repo path",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runFollowRepo,
}

var followOrgCmd = &cobra.Command{
	Use:          "follow-org <org>",
	Short:        "Follow every repository of a GitHub organization or user",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runFollowOrg,
}

var followSearchCmd = &cobra.Command{
	Use:          "follow-search",
	Short:        "Follow the repositories matching a GitHub search query",
	SilenceUsage: true,
	RunE:         runFollowSearch,
}

var (
	followOwnerIsUser bool
	searchQuery       string
	searchLimit       int
)

func init() {
	rootCmd.AddCommand(followRepoCmd)
	rootCmd.AddCommand(followOrgCmd)
	rootCmd.AddCommand(followSearchCmd)

	followOrgCmd.Flags().BoolVar(&followOwnerIsUser, "user", false, "Treat the argument as a user instead of an organization")

	followSearchCmd.Flags().StringVar(&searchQuery, "query", "", "GitHub repository search query (e.g., 'language:java stars:>1000')")
	followSearchCmd.Flags().IntVar(&searchLimit, "limit", 100, "Maximum number of repositories to follow")
	if err := followSearchCmd.MarkFlagRequired("query"); err != nil {
		panic(fmt.Sprintf("failed to mark flag query as required: %v", err))
	}
}

func runFollowRepo(cmd *cobra.Command, args []string) error {
	info, err := repourl.Parse(args[0])
	if err != nil {
		return err
	}

	siteClient, _, err := site()
	if err != nil {
		return err
	}

	if err := siteClient.FollowRepository(context.Background(), info.URL()); err != nil {
		return fmt.Errorf("failed to follow repository: %w", err)
	}

	slog.Info("followed repository", "url", info.URL())
	return nil
}

func runFollowOrg(cmd *cobra.Command, args []string) error {
	service, err := syncService(true)
	if err != nil {
		return err
	}

	ownerType := github.OwnerTypeOrg
	if followOwnerIsUser {
		ownerType = github.OwnerTypeUser
	}

	if err := service.FollowOrg(context.Background(), ownerType, args[0]); err != nil {
		return err
	}

	slog.Info("follow completed successfully", "owner", args[0])
	return nil
}

func runFollowSearch(cmd *cobra.Command, args []string) error {
	service, err := syncService(true)
	if err != nil {
		return err
	}

	if err := service.FollowSearch(context.Background(), searchQuery, searchLimit); err != nil {
		return err
	}

	slog.Info("follow completed successfully", "query", searchQuery)
	return nil
}
