package github

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/naag/lgtm-toolkit/internal/loghttp"
)

// GraphQLClient implements the Client interface using GitHub's GraphQL API
type GraphQLClient struct {
	client *githubv4.Client
}

// NewGraphQLClient creates a new GitHub GraphQL client from a personal
// access token
func NewGraphQLClient(token string, verbose bool) (*GraphQLClient, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token not set (github.token in the config file or GITHUB_TOKEN)")
	}

	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(context.Background(), src)

	if verbose {
		httpClient.Transport = &loghttp.Transport{
			Next: httpClient.Transport,
		}
	}

	client := githubv4.NewClient(httpClient)
	return &GraphQLClient{client: client}, nil
}

// repositoryNode is the repository projection shared by the listing and
// search queries
type repositoryNode struct {
	Name           string
	NameWithOwner  string
	URL            string
	IsFork         bool
	IsArchived     bool
	StargazerCount int
}

func (n repositoryNode) repository() Repository {
	return Repository{
		Name:          n.Name,
		NameWithOwner: n.NameWithOwner,
		URL:           n.URL,
		IsFork:        n.IsFork,
		IsArchived:    n.IsArchived,
		Stars:         n.StargazerCount,
	}
}

// repositoryConnection is a page of repositories plus the cursor to the
// next one
type repositoryConnection struct {
	Nodes    []repositoryNode
	PageInfo struct {
		EndCursor   githubv4.String
		HasNextPage bool
	}
}

func (c *GraphQLClient) listOrgRepositories(ctx context.Context, orgName string) ([]Repository, error) {
	var query struct {
		Organization struct {
			Repositories repositoryConnection `graphql:"repositories(first: 100, after: $cursor)"`
		} `graphql:"organization(login: $login)"`
	}

	variables := map[string]interface{}{
		"login":  githubv4.String(orgName),
		"cursor": (*githubv4.String)(nil),
	}

	var repos []Repository
	for {
		if err := c.client.Query(ctx, &query, variables); err != nil {
			return nil, fmt.Errorf("failed to query organization repositories: %w", err)
		}
		for _, node := range query.Organization.Repositories.Nodes {
			repos = append(repos, node.repository())
		}
		if !query.Organization.Repositories.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(query.Organization.Repositories.PageInfo.EndCursor)
	}

	return repos, nil
}

func (c *GraphQLClient) listUserRepositories(ctx context.Context, username string) ([]Repository, error) {
	var query struct {
		User struct {
			Repositories repositoryConnection `graphql:"repositories(first: 100, after: $cursor)"`
		} `graphql:"user(login: $login)"`
	}

	variables := map[string]interface{}{
		"login":  githubv4.String(username),
		"cursor": (*githubv4.String)(nil),
	}

	var repos []Repository
	for {
		if err := c.client.Query(ctx, &query, variables); err != nil {
			return nil, fmt.Errorf("failed to query user repositories: %w", err)
		}
		for _, node := range query.User.Repositories.Nodes {
			repos = append(repos, node.repository())
		}
		if !query.User.Repositories.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(query.User.Repositories.PageInfo.EndCursor)
	}

	return repos, nil
}

// ListRepositories implements the Client interface
func (c *GraphQLClient) ListRepositories(ctx context.Context, ownerType OwnerType, ownerLogin string) ([]Repository, error) {
	switch ownerType {
	case OwnerTypeUser:
		return c.listUserRepositories(ctx, ownerLogin)
	case OwnerTypeOrg:
		return c.listOrgRepositories(ctx, ownerLogin)
	default:
		return nil, fmt.Errorf("invalid owner type")
	}
}

// SearchRepositories implements the Client interface
func (c *GraphQLClient) SearchRepositories(ctx context.Context, searchQuery string, limit int) ([]Repository, error) {
	var query struct {
		Search struct {
			Nodes []struct {
				Repository repositoryNode `graphql:"... on Repository"`
			}
			PageInfo struct {
				EndCursor   githubv4.String
				HasNextPage bool
			}
		} `graphql:"search(query: $query, type: REPOSITORY, first: 100, after: $cursor)"`
	}

	variables := map[string]interface{}{
		"query":  githubv4.String(searchQuery),
		"cursor": (*githubv4.String)(nil),
	}

	var repos []Repository
	for len(repos) < limit {
		if err := c.client.Query(ctx, &query, variables); err != nil {
			return nil, fmt.Errorf("failed to query repository search: %w", err)
		}
		for _, node := range query.Search.Nodes {
			repos = append(repos, node.Repository.repository())
			if len(repos) == limit {
				return repos, nil
			}
		}
		if !query.Search.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(query.Search.PageInfo.EndCursor)
	}

	return repos, nil
}
