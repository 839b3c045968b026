package github

// Repository is the subset of a GitHub repository the toolkit consumes
type Repository struct {
	Name          string
	NameWithOwner string
	URL           string
	IsFork        bool
	IsArchived    bool
	Stars         int
}

// OwnerType represents the type of repository owner (user or organization)
type OwnerType int

const (
	// OwnerTypeUser represents a user-owned repository
	OwnerTypeUser OwnerType = iota
	// OwnerTypeOrg represents an organization-owned repository
	OwnerTypeOrg
)
