package lgtm

import (
	"encoding/json"
	"log/slog"
	"strings"
)

const (
	// githubCloneHost marks the clone URLs of the one hosting provider
	// the toolkit handles.
	githubCloneHost = "https://github.com/"

	// githubProvider is the provider tag of real projects that were
	// onboarded through the GitHub app.
	githubProvider = "github_apps"
)

// Protoproject is the record shape of a repository the site knows about
// but has not finished onboarding.
type Protoproject struct {
	DisplayName string `json:"displayName"`
	Key         string `json:"key"`
	CloneURL    string `json:"cloneUrl"`
}

// RealProject is the record shape of a fully analyzed repository. The
// site wraps it in a one-element list.
type RealProject struct {
	DisplayName  string `json:"displayName"`
	Key          string `json:"key"`
	Slug         string `json:"slug"`
	RepoProvider string `json:"repoProvider"`
}

// Project is one raw record from the followed-projects listing. At most
// one of the two branches is populated.
type Project struct {
	Protoproject *Protoproject `json:"protoproject"`
	RealProject  []RealProject `json:"realProject"`

	raw json.RawMessage
}

// UnmarshalJSON keeps the raw record alongside the decoded branches so
// shape faults can be reported verbatim.
func (p *Project) UnmarshalJSON(data []byte) error {
	type project Project
	var decoded project
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = Project(decoded)
	p.raw = append(json.RawMessage(nil), data...)
	return nil
}

// SimpleProject is the uniform view of a followed repository.
type SimpleProject struct {
	DisplayName    string
	Key            string
	IsProtoproject bool
}

// keyField names the form field that identifies the project in mutation
// calls; the site keys protoprojects and real projects differently.
func (p SimpleProject) keyField() string {
	if p.IsProtoproject {
		return "protoproject_key"
	}
	return "project_key"
}

// OrgProjects groups followed projects by GitHub organization, keeping
// organizations and projects in first-appearance order.
type OrgProjects struct {
	orgs  []string
	byOrg map[string][]SimpleProject
}

// Orgs returns the organization names in first-appearance order.
func (g *OrgProjects) Orgs() []string {
	return g.orgs
}

// ProjectsFor returns the organization's projects in input order. An
// organization that is not present yields an empty list; that is a lookup
// miss, not an error.
func (g *OrgProjects) ProjectsFor(org string) []SimpleProject {
	projects, ok := g.byOrg[org]
	if !ok {
		slog.Info("organization not found in followed projects", "org", org)
		return nil
	}
	return projects
}

func (g *OrgProjects) add(org string, project SimpleProject) {
	if _, ok := g.byOrg[org]; !ok {
		g.orgs = append(g.orgs, org)
	}
	g.byOrg[org] = append(g.byOrg[org], project)
}

// GroupByOrg reshapes raw followed-project records into per-organization
// lists, keeping only GitHub-hosted projects. Records from other providers
// are dropped silently; a record matching neither known shape fails the
// whole batch.
func GroupByOrg(projects []Project) (*OrgProjects, error) {
	grouped := &OrgProjects{byOrg: make(map[string][]SimpleProject)}

	for _, project := range projects {
		switch {
		case project.Protoproject != nil:
			proto := project.Protoproject
			if !strings.Contains(proto.CloneURL, githubCloneHost) {
				continue
			}
			org := strings.Split(proto.DisplayName, "/")[0]
			grouped.add(org, SimpleProject{
				DisplayName:    proto.DisplayName,
				Key:            proto.Key,
				IsProtoproject: true,
			})

		case len(project.RealProject) > 0:
			real := project.RealProject[0]
			if real.RepoProvider != githubProvider {
				continue
			}
			// Slugs look like "g/<org>/<repo>"; the org sits after the
			// provider prefix.
			parts := strings.Split(real.Slug, "/")
			if len(parts) < 2 {
				return nil, &UnrecognizedShapeError{Record: project.raw}
			}
			grouped.add(parts[1], SimpleProject{
				DisplayName:    real.DisplayName,
				Key:            real.Key,
				IsProtoproject: false,
			})

		default:
			return nil, &UnrecognizedShapeError{Record: project.raw}
		}
	}

	return grouped, nil
}
