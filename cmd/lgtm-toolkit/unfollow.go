package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/naag/lgtm-toolkit/internal/lgtm"
)

var unfollowOrgCmd = &cobra.Command{
	Use:          "unfollow-org <org>",
	Short:        "Stop following every project of an organization",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runUnfollowOrg,
}

var unfollowProjectCmd = &cobra.Command{
	Use:          "unfollow-project <key>",
	Short:        "Stop following a single project by its key",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runUnfollowProject,
}

var (
	includeProtoprojects bool
	unfollowProto        bool
)

func init() {
	rootCmd.AddCommand(unfollowOrgCmd)
	rootCmd.AddCommand(unfollowProjectCmd)

	unfollowOrgCmd.Flags().BoolVar(&includeProtoprojects, "include-protoprojects", false, "Also unfollow projects the site has not finished onboarding")
	unfollowProjectCmd.Flags().BoolVar(&unfollowProto, "protoproject", false, "The key names a protoproject")
}

func runUnfollowOrg(cmd *cobra.Command, args []string) error {
	service, err := syncService(false)
	if err != nil {
		return err
	}

	if err := service.UnfollowOrg(context.Background(), args[0], includeProtoprojects); err != nil {
		return err
	}

	slog.Info("unfollow completed successfully", "org", args[0])
	return nil
}

func runUnfollowProject(cmd *cobra.Command, args []string) error {
	siteClient, _, err := site()
	if err != nil {
		return err
	}

	key := args[0]
	if unfollowProto {
		err = siteClient.UnfollowProject(context.Background(), lgtm.SimpleProject{Key: key, IsProtoproject: true})
	} else {
		err = siteClient.UnfollowProjectByKey(context.Background(), key)
	}
	if err != nil {
		return err
	}

	slog.Info("unfollowed project", "key", key)
	return nil
}
