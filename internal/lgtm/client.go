package lgtm

import (
	"context"
)

// Client defines the interface for the site operations the toolkit's
// workflows consume. Site implements it against lgtm.com; tests substitute
// MockClient.
type Client interface {
	// MyProjects returns the raw records of every followed project
	MyProjects(ctx context.Context) ([]Project, error)

	// ProjectsUnderOrg returns the followed GitHub projects of one organization
	ProjectsUnderOrg(ctx context.Context, org string) ([]SimpleProject, error)

	// FollowRepository asks the site to follow the repository at repoURL
	FollowRepository(ctx context.Context, repoURL string) error

	// UnfollowProject stops following a project, protoproject or real
	UnfollowProject(ctx context.Context, project SimpleProject) error

	// UnfollowProjectByKey stops following the real project with the given key
	UnfollowProjectByKey(ctx context.Context, key string) error

	// RebuildProtoproject asks the site to attempt a protoproject's build again
	RebuildProtoproject(ctx context.Context, project SimpleProject) error

	// ProjectSelections lists the session's project selections
	ProjectSelections(ctx context.Context) ([]ProjectSelection, error)

	// FindProjectSelection resolves a selection name to its key
	FindProjectSelection(ctx context.Context, name string) (int, error)

	// CreateProjectSelection creates an empty named selection and returns its key
	CreateProjectSelection(ctx context.Context, name string) (int, error)

	// GetOrCreateProjectSelection resolves a selection by name, creating it when absent
	GetOrCreateProjectSelection(ctx context.Context, name string) (int, error)

	// UpdateProjectSelection adds and removes project keys from a selection
	UpdateProjectSelection(ctx context.Context, selectionID int, added, removed []string) error
}
