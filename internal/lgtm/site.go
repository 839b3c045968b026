// Package lgtm talks to lgtm.com's internal API, the one the site's own
// web UI uses. There is no documented contract behind it; request shapes
// and record layouts follow what the site actually sends and accepts.
package lgtm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/naag/lgtm-toolkit/internal/loghttp"
)

const (
	internalAPIURL = "https://lgtm.com/internal_api/v0.2"
	publicAPIURL   = "https://lgtm.com/api/v1.0"

	nonceHeader        = "LGTM-Nonce"
	longSessionCookie  = "lgtm_long_session"
	shortSessionCookie = "lgtm_short_session"
)

// defaultClient serves the helpers that hit the public API without a
// session.
var defaultClient = newRetryClient(cleanhttp.DefaultPooledTransport())

// Credentials hold a pre-obtained lgtm.com browser session: the anti-replay
// nonce, the two session cookies, and the internal API version the session
// was issued for. The toolkit never obtains or refreshes them itself.
type Credentials struct {
	Nonce        string
	LongSession  string
	ShortSession string
	APIVersion   string
}

// Site is an authenticated client for the lgtm.com internal API.
type Site struct {
	creds  Credentials
	client *retryablehttp.Client
}

// NewSite creates a site client from a browser session. When verbose is
// set, every request and response is dumped to stderr.
func NewSite(creds Credentials, verbose bool) *Site {
	var rt http.RoundTripper = cleanhttp.DefaultPooledTransport()
	if verbose {
		rt = &loghttp.Transport{Next: rt}
	}
	return &Site{
		creds:  creds,
		client: newRetryClient(rt),
	}
}

// envelope is the {status, data} wrapper every internal API response
// carries.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// decodeEnvelope unwraps an internal API response body. Anything but a
// well-formed success envelope becomes a RequestError holding the body
// verbatim.
func decodeEnvelope(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &RequestError{Body: string(body), Err: fmt.Errorf("parse response: %w", err)}
	}
	if env.Status != "success" {
		return nil, &RequestError{Body: string(body)}
	}
	return env.Data, nil
}

// decorate attaches the session cookies and the nonce header.
func (s *Site) decorate(req *retryablehttp.Request) {
	req.AddCookie(&http.Cookie{Name: longSessionCookie, Value: s.creds.LongSession})
	req.AddCookie(&http.Cookie{Name: shortSessionCookie, Value: s.creds.ShortSession})
	req.Header.Set(nonceHeader, s.creds.Nonce)
}

// get issues an authenticated GET and returns the envelope's data.
func (s *Site) get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	s.decorate(req)
	return s.roundTrip(req)
}

// postForm issues an authenticated form POST, adding the session's
// apiVersion field, and returns the envelope's data.
func (s *Site) postForm(ctx context.Context, endpoint string, form url.Values) (json.RawMessage, error) {
	if form == nil {
		form = url.Values{}
	}
	form.Set("apiVersion", s.creds.APIVersion)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.decorate(req)
	return s.roundTrip(req)
}

func (s *Site) roundTrip(req *retryablehttp.Request) (json.RawMessage, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return decodeEnvelope(body)
}

// MyProjects returns every project the session follows, raw. Use
// GroupByOrg to shape the result.
func (s *Site) MyProjects(ctx context.Context) ([]Project, error) {
	endpoint := internalAPIURL + "/getMyProjects?apiVersion=" + url.QueryEscape(s.creds.APIVersion)
	data, err := s.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var projects []Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, &RequestError{Body: string(data), Err: fmt.Errorf("parse project records: %w", err)}
	}
	return projects, nil
}

// ProjectsUnderOrg returns the followed GitHub projects of one
// organization, in follow order.
func (s *Site) ProjectsUnderOrg(ctx context.Context, org string) ([]SimpleProject, error) {
	projects, err := s.MyProjects(ctx)
	if err != nil {
		return nil, err
	}
	grouped, err := GroupByOrg(projects)
	if err != nil {
		return nil, err
	}
	return grouped.ProjectsFor(org), nil
}

// FollowRepository asks the site to follow the repository at repoURL. The
// repository shows up as a protoproject until the site finishes onboarding
// it.
func (s *Site) FollowRepository(ctx context.Context, repoURL string) error {
	form := url.Values{}
	form.Set("url", repoURL)
	_, err := s.postForm(ctx, internalAPIURL+"/followProject", form)
	return err
}

// UnfollowProject stops following a project, using the protoproject
// variant of the call when needed.
func (s *Site) UnfollowProject(ctx context.Context, project SimpleProject) error {
	endpoint := internalAPIURL + "/unfollowProject"
	if project.IsProtoproject {
		endpoint = internalAPIURL + "/unfollowProtoproject"
	}

	form := url.Values{}
	form.Set(project.keyField(), project.Key)
	_, err := s.postForm(ctx, endpoint, form)
	return err
}

// UnfollowProjectByKey stops following the real project with the given
// key.
func (s *Site) UnfollowProjectByKey(ctx context.Context, key string) error {
	form := url.Values{}
	form.Set("project_key", key)
	_, err := s.postForm(ctx, internalAPIURL+"/unfollowProject", form)
	return err
}

// RebuildProtoproject asks the site to attempt the protoproject's build
// again with its default configuration.
func (s *Site) RebuildProtoproject(ctx context.Context, project SimpleProject) error {
	form := url.Values{}
	form.Set(project.keyField(), project.Key)
	form.Set("config", "")
	_, err := s.postForm(ctx, internalAPIURL+"/rebuildProtoproject", form)
	return err
}

// ProjectSelection is a named server-side collection of project keys.
type ProjectSelection struct {
	Name string       `json:"name"`
	Key  SelectionKey `json:"key"`
}

// SelectionKey is a selection identifier. The site has returned it both
// as a bare number and as a quoted one, so both forms parse.
type SelectionKey int

// UnmarshalJSON implements the json.Unmarshaler interface
func (k *SelectionKey) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("selection key %s: %w", string(data), err)
	}
	*k = SelectionKey(n)
	return nil
}

// ProjectSelections lists the session's project selections.
func (s *Site) ProjectSelections(ctx context.Context) ([]ProjectSelection, error) {
	data, err := s.postForm(ctx, internalAPIURL+"/getUsedProjectSelections", nil)
	if err != nil {
		return nil, err
	}

	var selections []ProjectSelection
	if err := json.Unmarshal(data, &selections); err != nil {
		return nil, &RequestError{Body: string(data), Err: fmt.Errorf("parse selections: %w", err)}
	}
	return selections, nil
}

// FindProjectSelection resolves a selection name to its key, or
// ErrSelectionNotFound when the session has no selection by that name.
func (s *Site) FindProjectSelection(ctx context.Context, name string) (int, error) {
	selections, err := s.ProjectSelections(ctx)
	if err != nil {
		return 0, err
	}
	for _, selection := range selections {
		if selection.Name == name {
			return int(selection.Key), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrSelectionNotFound)
}

// CreateProjectSelection creates an empty named selection and returns its
// key.
func (s *Site) CreateProjectSelection(ctx context.Context, name string) (int, error) {
	form := url.Values{}
	form.Set("name", name)
	data, err := s.postForm(ctx, internalAPIURL+"/createProjectSelection", form)
	if err != nil {
		return 0, err
	}

	var created struct {
		Key SelectionKey `json:"key"`
	}
	if err := json.Unmarshal(data, &created); err != nil {
		return 0, &RequestError{Body: string(data), Err: fmt.Errorf("parse created selection: %w", err)}
	}
	return int(created.Key), nil
}

// GetOrCreateProjectSelection resolves a selection by name, creating it
// when absent.
func (s *Site) GetOrCreateProjectSelection(ctx context.Context, name string) (int, error) {
	key, err := s.FindProjectSelection(ctx, name)
	switch {
	case err == nil:
		slog.Info("found project selection", "name", name, "key", key)
		return key, nil
	case errors.Is(err, ErrSelectionNotFound):
		slog.Info("creating project selection", "name", name)
		return s.CreateProjectSelection(ctx, name)
	default:
		return 0, err
	}
}

// UpdateProjectSelection adds and removes project keys from a selection in
// one call. The site wants each key list as a single bracketed form value,
// not as repeated fields.
func (s *Site) UpdateProjectSelection(ctx context.Context, selectionID int, added, removed []string) error {
	form := url.Values{}
	form.Set("projectSelectionId", strconv.Itoa(selectionID))
	form.Set("addedProjects", quoteKeyList(added))
	form.Set("removedProjects", quoteKeyList(removed))
	_, err := s.postForm(ctx, internalAPIURL+"/updateProjectSelection", form)
	return err
}

// quoteKeyList renders keys as the bracketed, comma-space-separated,
// double-quoted list the selection update call expects.
func quoteKeyList(keys []string) string {
	quoted := make([]string, len(keys))
	for i, key := range keys {
		quoted[i] = `"` + key + `"`
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// PublicProject is the subset of the public v1.0 project record the
// toolkit reads.
type PublicProject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RetrieveProject fetches the public record of a GitHub-hosted project by
// its "org/repo" path. No session is required.
func RetrieveProject(ctx context.Context, ghPath string) (*PublicProject, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, publicAPIURL+"/projects/g/"+ghPath, nil)
	if err != nil {
		return nil, err
	}

	resp, err := defaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var project PublicProject
	if err := json.Unmarshal(body, &project); err != nil {
		return nil, &RequestError{Body: string(body), Err: fmt.Errorf("parse project: %w", err)}
	}
	return &project, nil
}

// RetrieveProjectID resolves a GitHub "org/repo" path to the site's
// numeric project id, or ErrProjectNotFound when the site has not analyzed
// the repository.
func RetrieveProjectID(ctx context.Context, ghPath string) (int64, error) {
	project, err := RetrieveProject(ctx, ghPath)
	if err != nil {
		return 0, err
	}
	if project.ID == 0 {
		return 0, fmt.Errorf("%s: %w", ghPath, ErrProjectNotFound)
	}
	return project.ID, nil
}
