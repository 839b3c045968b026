package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var listSelectionsCmd = &cobra.Command{
	Use:          "list-selections",
	Short:        "List the session's project selections",
	SilenceUsage: true,
	RunE:         runListSelections,
}

var createSelectionCmd = &cobra.Command{
	Use:          "create-selection <name>",
	Short:        "Create an empty project selection",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runCreateSelection,
}

var addOrgToSelectionCmd = &cobra.Command{
	Use:          "add-org-to-selection <org> <selection>",
	Short:        "Add every followed project of an organization to a selection",
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runAddOrgToSelection,
}

func init() {
	rootCmd.AddCommand(listSelectionsCmd)
	rootCmd.AddCommand(createSelectionCmd)
	rootCmd.AddCommand(addOrgToSelectionCmd)
}

func runListSelections(cmd *cobra.Command, args []string) error {
	siteClient, _, err := site()
	if err != nil {
		return err
	}

	selections, err := siteClient.ProjectSelections(context.Background())
	if err != nil {
		return err
	}

	for _, selection := range selections {
		fmt.Printf("%d\t%s\n", selection.Key, selection.Name)
	}
	return nil
}

func runCreateSelection(cmd *cobra.Command, args []string) error {
	siteClient, _, err := site()
	if err != nil {
		return err
	}

	key, err := siteClient.CreateProjectSelection(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Println(key)
	return nil
}

func runAddOrgToSelection(cmd *cobra.Command, args []string) error {
	service, err := syncService(false)
	if err != nil {
		return err
	}

	if err := service.AddOrgToSelection(context.Background(), args[0], args[1]); err != nil {
		return err
	}

	slog.Info("selection updated successfully", "org", args[0], "selection", args[1])
	return nil
}
