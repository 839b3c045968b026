package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naag/lgtm-toolkit/internal/github/repourl"
	"github.com/naag/lgtm-toolkit/internal/lgtm"
)

var listProjectsCmd = &cobra.Command{
	Use:          "list-projects",
	Short:        "List followed GitHub projects grouped by organization",
	SilenceUsage: true,
	RunE:         runListProjects,
}

var projectIDCmd = &cobra.Command{
	Use:          "project-id <repository>",
	Short:        "Look up the site's numeric id of a GitHub repository",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runProjectID,
}

var listProjectsOrg string

func init() {
	rootCmd.AddCommand(listProjectsCmd)
	rootCmd.AddCommand(projectIDCmd)

	listProjectsCmd.Flags().StringVar(&listProjectsOrg, "org", "", "Only list projects of this organization")
}

func runListProjects(cmd *cobra.Command, args []string) error {
	siteClient, _, err := site()
	if err != nil {
		return err
	}

	projects, err := siteClient.MyProjects(context.Background())
	if err != nil {
		return err
	}
	grouped, err := lgtm.GroupByOrg(projects)
	if err != nil {
		return err
	}

	if listProjectsOrg != "" {
		printOrgProjects(listProjectsOrg, grouped.ProjectsFor(listProjectsOrg))
		return nil
	}
	for _, org := range grouped.Orgs() {
		printOrgProjects(org, grouped.ProjectsFor(org))
	}
	return nil
}

func printOrgProjects(org string, projects []lgtm.SimpleProject) {
	fmt.Printf("%s (%d)\n", org, len(projects))
	for _, project := range projects {
		marker := ""
		if project.IsProtoproject {
			marker = " (protoproject)"
		}
		fmt.Printf("  %s  %s%s\n", project.Key, project.DisplayName, marker)
	}
}

func runProjectID(cmd *cobra.Command, args []string) error {
	info, err := repourl.Parse(args[0])
	if err != nil {
		return err
	}

	id, err := lgtm.RetrieveProjectID(context.Background(), info.Path())
	if err != nil {
		return err
	}

	fmt.Println(id)
	return nil
}
