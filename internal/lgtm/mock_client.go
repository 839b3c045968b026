package lgtm

import (
	"context"
)

// MockClient implements the Client interface for testing
type MockClient struct {
	MyProjectsFunc                  func(ctx context.Context) ([]Project, error)
	ProjectsUnderOrgFunc            func(ctx context.Context, org string) ([]SimpleProject, error)
	FollowRepositoryFunc            func(ctx context.Context, repoURL string) error
	UnfollowProjectFunc             func(ctx context.Context, project SimpleProject) error
	UnfollowProjectByKeyFunc        func(ctx context.Context, key string) error
	RebuildProtoprojectFunc         func(ctx context.Context, project SimpleProject) error
	ProjectSelectionsFunc           func(ctx context.Context) ([]ProjectSelection, error)
	FindProjectSelectionFunc        func(ctx context.Context, name string) (int, error)
	CreateProjectSelectionFunc      func(ctx context.Context, name string) (int, error)
	GetOrCreateProjectSelectionFunc func(ctx context.Context, name string) (int, error)
	UpdateProjectSelectionFunc      func(ctx context.Context, selectionID int, added, removed []string) error
}

// MyProjects implements the Client interface
func (c *MockClient) MyProjects(ctx context.Context) ([]Project, error) {
	if c.MyProjectsFunc != nil {
		return c.MyProjectsFunc(ctx)
	}
	return nil, nil
}

// ProjectsUnderOrg implements the Client interface
func (c *MockClient) ProjectsUnderOrg(ctx context.Context, org string) ([]SimpleProject, error) {
	if c.ProjectsUnderOrgFunc != nil {
		return c.ProjectsUnderOrgFunc(ctx, org)
	}
	return nil, nil
}

// FollowRepository implements the Client interface
func (c *MockClient) FollowRepository(ctx context.Context, repoURL string) error {
	if c.FollowRepositoryFunc != nil {
		return c.FollowRepositoryFunc(ctx, repoURL)
	}
	return nil
}

// UnfollowProject implements the Client interface
func (c *MockClient) UnfollowProject(ctx context.Context, project SimpleProject) error {
	if c.UnfollowProjectFunc != nil {
		return c.UnfollowProjectFunc(ctx, project)
	}
	return nil
}

// UnfollowProjectByKey implements the Client interface
func (c *MockClient) UnfollowProjectByKey(ctx context.Context, key string) error {
	if c.UnfollowProjectByKeyFunc != nil {
		return c.UnfollowProjectByKeyFunc(ctx, key)
	}
	return nil
}

// RebuildProtoproject implements the Client interface
func (c *MockClient) RebuildProtoproject(ctx context.Context, project SimpleProject) error {
	if c.RebuildProtoprojectFunc != nil {
		return c.RebuildProtoprojectFunc(ctx, project)
	}
	return nil
}

// ProjectSelections implements the Client interface
func (c *MockClient) ProjectSelections(ctx context.Context) ([]ProjectSelection, error) {
	if c.ProjectSelectionsFunc != nil {
		return c.ProjectSelectionsFunc(ctx)
	}
	return nil, nil
}

// FindProjectSelection implements the Client interface
func (c *MockClient) FindProjectSelection(ctx context.Context, name string) (int, error) {
	if c.FindProjectSelectionFunc != nil {
		return c.FindProjectSelectionFunc(ctx, name)
	}
	return 0, nil
}

// CreateProjectSelection implements the Client interface
func (c *MockClient) CreateProjectSelection(ctx context.Context, name string) (int, error) {
	if c.CreateProjectSelectionFunc != nil {
		return c.CreateProjectSelectionFunc(ctx, name)
	}
	return 0, nil
}

// GetOrCreateProjectSelection implements the Client interface
func (c *MockClient) GetOrCreateProjectSelection(ctx context.Context, name string) (int, error) {
	if c.GetOrCreateProjectSelectionFunc != nil {
		return c.GetOrCreateProjectSelectionFunc(ctx, name)
	}
	return 0, nil
}

// UpdateProjectSelection implements the Client interface
func (c *MockClient) UpdateProjectSelection(ctx context.Context, selectionID int, added, removed []string) error {
	if c.UpdateProjectSelectionFunc != nil {
		return c.UpdateProjectSelectionFunc(ctx, selectionID, added, removed)
	}
	return nil
}
