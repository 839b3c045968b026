// Package repourl resolves GitHub repository URLs and bare "owner/repo"
// paths into a single form.
package repourl

import (
	"fmt"
	"net/url"
	"strings"
)

// RepoInfo contains the parsed information from a GitHub repository URL
// or path
type RepoInfo struct {
	Owner string
	Name  string
}

// Path returns the "owner/repo" path the site's public API addresses
// projects by
func (r *RepoInfo) Path() string {
	return r.Owner + "/" + r.Name
}

// URL returns the canonical https URL of the repository
func (r *RepoInfo) URL() string {
	return "https://github.com/" + r.Owner + "/" + r.Name
}

// Parse takes a GitHub repository URL or a bare "owner/repo" path and
// returns the parsed RepoInfo
func Parse(raw string) (*RepoInfo, error) {
	if strings.Contains(raw, "://") {
		return parseURL(raw)
	}

	parts := strings.Split(raw, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid repository path: %s", raw)
	}

	return &RepoInfo{Owner: parts[0], Name: parts[1]}, nil
}

func parseURL(repoURL string) (*RepoInfo, error) {
	u, err := url.Parse(repoURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	if u.Host != "github.com" {
		return nil, fmt.Errorf("not a GitHub URL")
	}

	// Split path into components
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid repository URL format")
	}

	return &RepoInfo{
		Owner: parts[0],
		Name:  strings.TrimSuffix(parts[1], ".git"),
	}, nil
}
