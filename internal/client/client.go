package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/odmkit/webodm-client/internal/model"
)

// Doer describes the HTTP client used by the transport; *http.Client
// satisfies it, tests substitute their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Session holds the server address and the bearer credential obtained on
// login. The token is empty until Authenticate succeeds and cleared again
// on Logout. Callers must serialize login/logout against other operations
// on the same session.
type Session struct {
	ServerURL string
	Token     string
}

// Authenticated reports whether a token is held.
func (s Session) Authenticated() bool { return s.Token != "" }

// AuthHeader returns the Authorization header value for the session.
func (s Session) AuthHeader() string { return "JWT " + s.Token }

// Client is the transport client for one WebODM server.
type Client struct {
	session *Session
	http    Doer
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the HTTP client used for all requests.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithLogger sets the logger used by the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithToken restores a previously obtained token onto the session, e.g.
// one persisted by the caller between runs.
func WithToken(token string) Option {
	return func(c *Client) { c.session.Token = strings.TrimSpace(token) }
}

// New creates a transport client for the given server base URL. A trailing
// slash on the URL is tolerated and stripped.
func New(serverURL string, opts ...Option) *Client {
	c := &Client{
		session: &Session{ServerURL: strings.TrimRight(strings.TrimSpace(serverURL), "/")},
		http:    http.DefaultClient,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session exposes the current session state, e.g. for token persistence by
// the caller.
func (c *Client) Session() Session { return *c.session }

// Authenticate posts credentials to the token endpoint and stores the
// bearer token on success. On failure the session is left unauthenticated.
func (c *Client) Authenticate(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.session.ServerURL+"/api/token-auth/", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: "authenticate", Code: resp.StatusCode}
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode auth response: %w", err)
	}
	if body.Token == "" {
		return fmt.Errorf("authenticate: server returned no token")
	}

	c.session.Token = body.Token
	c.logger.Debug("authenticated", "server", c.session.ServerURL, "user", username)
	return nil
}

// Logout clears the session token.
func (c *Client) Logout() {
	c.session.Token = ""
}

// newRequest builds an authenticated request against an API path.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if !c.session.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	req, err := http.NewRequestWithContext(ctx, method, c.session.ServerURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.session.AuthHeader())
	return req, nil
}

// getJSON performs an authenticated GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: op, Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// normalizeList decodes the two list response shapes the API produces: a
// bare JSON array, or a paginated {"results": [...]} envelope. Any other
// shape yields an empty slice rather than an error.
func normalizeList[T any](data []byte) []T {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []T{}
	}
	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return []T{}
		}
		return items
	case '{':
		var envelope struct {
			Results []T `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil || envelope.Results == nil {
			return []T{}
		}
		return envelope.Results
	default:
		return []T{}
	}
}

// getList performs an authenticated GET against a list endpoint and
// normalizes the response envelope.
func getList[T any](ctx context.Context, c *Client, op, path string) ([]T, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Op: op, Code: resp.StatusCode}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", op, err)
	}
	return normalizeList[T](data), nil
}

// ListProjects returns all projects visible to the session user.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	return getList[model.Project](ctx, c, "list projects", "/api/projects/")
}

// GetProject fetches one project by id.
func (c *Client) GetProject(ctx context.Context, projectID int) (*model.Project, error) {
	var project model.Project
	path := fmt.Sprintf("/api/projects/%d/", projectID)
	if err := c.getJSON(ctx, "get project", path, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a new project. The description may be empty.
func (c *Client) CreateProject(ctx context.Context, name, description string) (*model.Project, error) {
	form := url.Values{}
	form.Set("name", name)
	if description != "" {
		form.Set("description", description)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/projects/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return nil, &StatusError{Op: "create project", Code: resp.StatusCode}
	}

	var project model.Project
	if err := json.NewDecoder(resp.Body).Decode(&project); err != nil {
		return nil, fmt.Errorf("create project: decode response: %w", err)
	}
	c.logger.Info("project created", "id", project.ID, "name", project.Name)
	return &project, nil
}

// ListTasks returns the tasks of a project.
func (c *Client) ListTasks(ctx context.Context, projectID int) ([]model.Task, error) {
	path := fmt.Sprintf("/api/projects/%d/tasks/", projectID)
	return getList[model.Task](ctx, c, "list tasks", path)
}

// GetTask fetches one task by id.
func (c *Client) GetTask(ctx context.Context, projectID int, taskID model.TaskID) (*model.Task, error) {
	var task model.Task
	path := fmt.Sprintf("/api/projects/%d/tasks/%s/", projectID, taskID)
	if err := c.getJSON(ctx, "get task", path, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// AvailableAssets returns the downloadable artifact names of a task.
func (c *Client) AvailableAssets(ctx context.Context, projectID int, taskID model.TaskID) ([]string, error) {
	task, err := c.GetTask(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}
	return task.AvailableAssets, nil
}
