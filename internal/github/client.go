package github

import (
	"context"
)

// Client defines the interface for interacting with GitHub
type Client interface {
	// ListRepositories retrieves every repository of a user or organization
	ListRepositories(ctx context.Context, ownerType OwnerType, ownerLogin string) ([]Repository, error)

	// SearchRepositories retrieves up to limit repositories matching a
	// GitHub repository search query, best match first
	SearchRepositories(ctx context.Context, query string, limit int) ([]Repository, error)
}
