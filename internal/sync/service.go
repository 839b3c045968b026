// Package sync drives the bulk workflows that keep followed projects and
// project selections on the site in step with GitHub.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/naag/lgtm-toolkit/internal/github"
	"github.com/naag/lgtm-toolkit/internal/lgtm"
)

// defaultPacing is the delay between mutating site calls in bulk loops.
// The site throttles nothing itself, so the client paces.
const defaultPacing = time.Second

// Service provides functionality for bulk project management
type Service struct {
	lgtm   lgtm.Client
	github github.Client

	// Pacing is the delay inserted before each mutating site call in a
	// bulk loop. Tests set it to zero.
	Pacing time.Duration
}

// NewService creates a new sync service. The GitHub client may be nil for
// workflows that only touch the site.
func NewService(lgtmClient lgtm.Client, githubClient github.Client) *Service {
	return &Service{
		lgtm:   lgtmClient,
		github: githubClient,
		Pacing: defaultPacing,
	}
}

func (s *Service) pace() {
	if s.Pacing > 0 {
		time.Sleep(s.Pacing)
	}
}

// FollowOrg follows every repository of a GitHub user or organization on
// the site. Repositories that fail to follow are reported and skipped.
func (s *Service) FollowOrg(ctx context.Context, ownerType github.OwnerType, ownerLogin string) error {
	repos, err := s.github.ListRepositories(ctx, ownerType, ownerLogin)
	if err != nil {
		return fmt.Errorf("failed to list repositories: %w", err)
	}
	return s.followAll(ctx, repos)
}

// FollowSearch follows up to limit repositories matching a GitHub
// repository search query.
func (s *Service) FollowSearch(ctx context.Context, query string, limit int) error {
	repos, err := s.github.SearchRepositories(ctx, query, limit)
	if err != nil {
		return fmt.Errorf("failed to search repositories: %w", err)
	}
	return s.followAll(ctx, repos)
}

func (s *Service) followAll(ctx context.Context, repos []github.Repository) error {
	var hasErrors bool
	for _, repo := range repos {
		s.pace()
		slog.Info("following repository", "repository", repo.NameWithOwner)
		if err := s.lgtm.FollowRepository(ctx, repo.URL); err != nil {
			slog.Error("failed to follow repository", "error", err, "repository", repo.NameWithOwner)
			hasErrors = true
		}
	}
	if hasErrors {
		return fmt.Errorf("one or more follow operations failed")
	}
	return nil
}

// UnfollowOrg stops following every project under an organization.
// Protoprojects are kept unless includeProtoprojects is set.
func (s *Service) UnfollowOrg(ctx context.Context, org string, includeProtoprojects bool) error {
	projects, err := s.lgtm.ProjectsUnderOrg(ctx, org)
	if err != nil {
		return err
	}

	for _, project := range projects {
		if project.IsProtoproject && !includeProtoprojects {
			slog.Info("keeping protoproject", "project", project.DisplayName)
			continue
		}
		slog.Info("unfollowing project", "project", project.DisplayName)
		if err := s.lgtm.UnfollowProject(ctx, project); err != nil {
			return fmt.Errorf("failed to unfollow %s: %w", project.DisplayName, err)
		}
	}
	return nil
}

// RebuildProtoprojects asks the site to rebuild every followed
// protoproject. The site rejects rebuilds of projects it is already
// building, so a failed rebuild is only a warning.
func (s *Service) RebuildProtoprojects(ctx context.Context) error {
	projects, err := s.lgtm.MyProjects(ctx)
	if err != nil {
		return err
	}
	grouped, err := lgtm.GroupByOrg(projects)
	if err != nil {
		return err
	}

	for _, org := range grouped.Orgs() {
		for _, project := range grouped.ProjectsFor(org) {
			if !project.IsProtoproject {
				continue
			}
			s.pace()
			slog.Info("rebuilding protoproject", "project", project.DisplayName)
			if err := s.lgtm.RebuildProtoproject(ctx, project); err != nil {
				slog.Warn("failed to rebuild protoproject, it may already be building",
					"error", err,
					"project", project.DisplayName,
				)
			}
		}
	}
	return nil
}

// AddOrgToSelection puts every followed project under an organization into
// the named selection, creating the selection first when needed. The site
// takes the whole added set in one call.
func (s *Service) AddOrgToSelection(ctx context.Context, org, selectionName string) error {
	selectionID, err := s.lgtm.GetOrCreateProjectSelection(ctx, selectionName)
	if err != nil {
		return err
	}

	projects, err := s.lgtm.ProjectsUnderOrg(ctx, org)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(projects))
	for _, project := range projects {
		slog.Info("adding project to selection", "project", project.DisplayName, "selection", selectionName)
		keys = append(keys, project.Key)
	}
	return s.lgtm.UpdateProjectSelection(ctx, selectionID, keys, nil)
}
