package github

import (
	"context"
)

// MockClient implements the Client interface for testing
type MockClient struct {
	ListRepositoriesFunc   func(ctx context.Context, ownerType OwnerType, ownerLogin string) ([]Repository, error)
	SearchRepositoriesFunc func(ctx context.Context, query string, limit int) ([]Repository, error)
}

// ListRepositories implements the Client interface
func (c *MockClient) ListRepositories(ctx context.Context, ownerType OwnerType, ownerLogin string) ([]Repository, error) {
	if c.ListRepositoriesFunc != nil {
		return c.ListRepositoriesFunc(ctx, ownerType, ownerLogin)
	}
	return nil, nil
}

// SearchRepositories implements the Client interface
func (c *MockClient) SearchRepositories(ctx context.Context, query string, limit int) ([]Repository, error) {
	if c.SearchRepositoriesFunc != nil {
		return c.SearchRepositoriesFunc(ctx, query, limit)
	}
	return nil, nil
}
