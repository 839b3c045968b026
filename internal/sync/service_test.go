package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naag/lgtm-toolkit/internal/github"
	"github.com/naag/lgtm-toolkit/internal/lgtm"
)

func testService(lgtmClient lgtm.Client, githubClient github.Client) *Service {
	service := NewService(lgtmClient, githubClient)
	service.Pacing = 0
	return service
}

func TestFollowOrg(t *testing.T) {
	githubClient := &github.MockClient{
		ListRepositoriesFunc: func(ctx context.Context, ownerType github.OwnerType, ownerLogin string) ([]github.Repository, error) {
			assert.Equal(t, github.OwnerTypeOrg, ownerType)
			assert.Equal(t, "orgA", ownerLogin)
			return []github.Repository{
				{NameWithOwner: "orgA/x", URL: "https://github.com/orgA/x"},
				{NameWithOwner: "orgA/y", URL: "https://github.com/orgA/y"},
			}, nil
		},
	}

	var followed []string
	lgtmClient := &lgtm.MockClient{
		FollowRepositoryFunc: func(ctx context.Context, repoURL string) error {
			followed = append(followed, repoURL)
			return nil
		},
	}

	service := testService(lgtmClient, githubClient)

	err := service.FollowOrg(context.Background(), github.OwnerTypeOrg, "orgA")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://github.com/orgA/x", "https://github.com/orgA/y"}, followed)
}

func TestFollowOrgContinuesAfterFailure(t *testing.T) {
	githubClient := &github.MockClient{
		ListRepositoriesFunc: func(ctx context.Context, ownerType github.OwnerType, ownerLogin string) ([]github.Repository, error) {
			return []github.Repository{
				{NameWithOwner: "orgA/x", URL: "https://github.com/orgA/x"},
				{NameWithOwner: "orgA/y", URL: "https://github.com/orgA/y"},
			}, nil
		},
	}

	var followed []string
	lgtmClient := &lgtm.MockClient{
		FollowRepositoryFunc: func(ctx context.Context, repoURL string) error {
			followed = append(followed, repoURL)
			if repoURL == "https://github.com/orgA/x" {
				return errors.New("boom")
			}
			return nil
		},
	}

	service := testService(lgtmClient, githubClient)

	err := service.FollowOrg(context.Background(), github.OwnerTypeOrg, "orgA")
	assert.Error(t, err)
	assert.Len(t, followed, 2)
}

func TestFollowSearch(t *testing.T) {
	githubClient := &github.MockClient{
		SearchRepositoriesFunc: func(ctx context.Context, query string, limit int) ([]github.Repository, error) {
			assert.Equal(t, "language:go stars:>100", query)
			assert.Equal(t, 50, limit)
			return []github.Repository{
				{NameWithOwner: "orgA/x", URL: "https://github.com/orgA/x"},
			}, nil
		},
	}

	var followed []string
	lgtmClient := &lgtm.MockClient{
		FollowRepositoryFunc: func(ctx context.Context, repoURL string) error {
			followed = append(followed, repoURL)
			return nil
		},
	}

	service := testService(lgtmClient, githubClient)

	err := service.FollowSearch(context.Background(), "language:go stars:>100", 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://github.com/orgA/x"}, followed)
}

func TestUnfollowOrgKeepsProtoprojects(t *testing.T) {
	var unfollowed []string
	lgtmClient := &lgtm.MockClient{
		ProjectsUnderOrgFunc: func(ctx context.Context, org string) ([]lgtm.SimpleProject, error) {
			assert.Equal(t, "orgA", org)
			return []lgtm.SimpleProject{
				{DisplayName: "orgA/x", Key: "k1"},
				{DisplayName: "orgA/y", Key: "k2", IsProtoproject: true},
				{DisplayName: "orgA/z", Key: "k3"},
			}, nil
		},
		UnfollowProjectFunc: func(ctx context.Context, project lgtm.SimpleProject) error {
			unfollowed = append(unfollowed, project.Key)
			return nil
		},
	}

	service := testService(lgtmClient, nil)

	err := service.UnfollowOrg(context.Background(), "orgA", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k3"}, unfollowed)
}

func TestUnfollowOrgIncludesProtoprojects(t *testing.T) {
	var unfollowed []string
	lgtmClient := &lgtm.MockClient{
		ProjectsUnderOrgFunc: func(ctx context.Context, org string) ([]lgtm.SimpleProject, error) {
			return []lgtm.SimpleProject{
				{DisplayName: "orgA/x", Key: "k1"},
				{DisplayName: "orgA/y", Key: "k2", IsProtoproject: true},
			}, nil
		},
		UnfollowProjectFunc: func(ctx context.Context, project lgtm.SimpleProject) error {
			unfollowed = append(unfollowed, project.Key)
			return nil
		},
	}

	service := testService(lgtmClient, nil)

	err := service.UnfollowOrg(context.Background(), "orgA", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2"}, unfollowed)
}

func TestUnfollowOrgStopsOnError(t *testing.T) {
	var unfollowed []string
	lgtmClient := &lgtm.MockClient{
		ProjectsUnderOrgFunc: func(ctx context.Context, org string) ([]lgtm.SimpleProject, error) {
			return []lgtm.SimpleProject{
				{DisplayName: "orgA/x", Key: "k1"},
				{DisplayName: "orgA/y", Key: "k2"},
			}, nil
		},
		UnfollowProjectFunc: func(ctx context.Context, project lgtm.SimpleProject) error {
			unfollowed = append(unfollowed, project.Key)
			return errors.New("boom")
		},
	}

	service := testService(lgtmClient, nil)

	err := service.UnfollowOrg(context.Background(), "orgA", false)
	assert.Error(t, err)
	assert.Equal(t, []string{"k1"}, unfollowed)
}

func TestRebuildProtoprojectsToleratesFailures(t *testing.T) {
	var rebuilt []string
	lgtmClient := &lgtm.MockClient{
		MyProjectsFunc: func(ctx context.Context) ([]lgtm.Project, error) {
			return []lgtm.Project{
				{Protoproject: &lgtm.Protoproject{
					CloneURL:    "https://github.com/orgA/x",
					DisplayName: "orgA/x",
					Key:         "p1",
				}},
				{RealProject: []lgtm.RealProject{{
					Slug:         "gh/orgA/y",
					DisplayName:  "orgA/y",
					Key:          "k1",
					RepoProvider: "github_apps",
				}}},
				{Protoproject: &lgtm.Protoproject{
					CloneURL:    "https://github.com/orgB/z",
					DisplayName: "orgB/z",
					Key:         "p2",
				}},
			}, nil
		},
		RebuildProtoprojectFunc: func(ctx context.Context, project lgtm.SimpleProject) error {
			rebuilt = append(rebuilt, project.Key)
			if project.Key == "p1" {
				return errors.New("already building")
			}
			return nil
		},
	}

	service := testService(lgtmClient, nil)

	// Rebuild failures are warnings; every protoproject is still tried
	// and real projects are left alone.
	err := service.RebuildProtoprojects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, rebuilt)
}

func TestAddOrgToSelection(t *testing.T) {
	var (
		gotSelectionID int
		gotAdded       []string
		gotRemoved     []string
	)
	lgtmClient := &lgtm.MockClient{
		GetOrCreateProjectSelectionFunc: func(ctx context.Context, name string) (int, error) {
			assert.Equal(t, "interesting", name)
			return 42, nil
		},
		ProjectsUnderOrgFunc: func(ctx context.Context, org string) ([]lgtm.SimpleProject, error) {
			assert.Equal(t, "orgA", org)
			return []lgtm.SimpleProject{
				{DisplayName: "orgA/x", Key: "k1"},
				{DisplayName: "orgA/y", Key: "k2", IsProtoproject: true},
			}, nil
		},
		UpdateProjectSelectionFunc: func(ctx context.Context, selectionID int, added, removed []string) error {
			gotSelectionID = selectionID
			gotAdded = added
			gotRemoved = removed
			return nil
		},
	}

	service := testService(lgtmClient, nil)

	err := service.AddOrgToSelection(context.Background(), "orgA", "interesting")
	require.NoError(t, err)
	assert.Equal(t, 42, gotSelectionID)
	assert.Equal(t, []string{"k1", "k2"}, gotAdded)
	assert.Empty(t, gotRemoved)
}
