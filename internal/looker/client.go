package looker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/lookerci/contentcheck/internal/config"
	"github.com/lookerci/contentcheck/internal/content"
	"github.com/lookerci/contentcheck/internal/faults"
	"github.com/lookerci/contentcheck/internal/retry"
)

// Client provides access to the Looker REST API.
type Client struct {
	baseURL      string
	apiVersion   string
	clientID     string
	clientSecret string
	httpCli      *http.Client
	policy       retry.Policy

	mu    sync.Mutex
	token string
}

// NewClient creates a Looker client from config. Credentials are only checked
// by Login.
func NewClient(cfg config.LookerConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, faults.Configuration("looker base URL is not set (set LOOKERSDK_BASE_URL)", nil)
	}
	version := cfg.APIVersion
	if version == "" {
		version = "4.0"
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiVersion:   version,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpCli:      &http.Client{Timeout: cfg.Timeout},
		policy:       retry.Default,
	}, nil
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Login exchanges the API client credentials for an access token.
func (c *Client) Login(ctx context.Context) error {
	if c.clientID == "" || c.clientSecret == "" {
		return faults.Configuration("looker client id and secret are required (set LOOKERSDK_CLIENT_ID and LOOKERSDK_CLIENT_SECRET)", nil)
	}
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	var lr loginResponse
	err := c.call(ctx, request{
		method:      http.MethodPost,
		path:        "/login",
		body:        []byte(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
		anonymous:   true,
	}, &lr)
	if err != nil {
		return fmt.Errorf("looker login: %w", err)
	}
	if lr.AccessToken == "" {
		return faults.Auth("looker login returned no access token", nil)
	}

	c.mu.Lock()
	c.token = lr.AccessToken
	c.mu.Unlock()
	return nil
}

// Logout revokes the access token. It is a no-op when not logged in.
func (c *Client) Logout(ctx context.Context) error {
	if c.accessToken() == "" {
		return nil
	}
	err := c.call(ctx, request{method: http.MethodDelete, path: "/logout"}, nil)

	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("looker logout: %w", err)
	}
	return nil
}

// UpdateSession switches the API session to the named workspace.
func (c *Client) UpdateSession(ctx context.Context, workspace string) error {
	payload, _ := json.Marshal(map[string]string{"workspace_id": workspace})
	if err := c.call(ctx, request{method: http.MethodPatch, path: "/session", body: payload}, nil); err != nil {
		return fmt.Errorf("switching to %s workspace: %w", workspace, err)
	}
	return nil
}

// UpdateGitBranch checks out branch in the project.
func (c *Client) UpdateGitBranch(ctx context.Context, project, branch string) error {
	payload, _ := json.Marshal(map[string]string{"name": branch})
	path := fmt.Sprintf("/projects/%s/git_branch", url.PathEscape(project))
	if err := c.call(ctx, request{method: http.MethodPut, path: path, body: payload}, nil); err != nil {
		return fmt.Errorf("checking out branch %s in project %s: %w", branch, project, err)
	}
	return nil
}

// ResetToRemote discards local changes in the project's checked-out branch.
func (c *Client) ResetToRemote(ctx context.Context, project string) error {
	path := fmt.Sprintf("/projects/%s/reset_to_remote", url.PathEscape(project))
	if err := c.call(ctx, request{method: http.MethodPost, path: path}, nil); err != nil {
		return fmt.Errorf("resetting project %s to remote: %w", project, err)
	}
	return nil
}

// Checkout puts the session on branch: switch to workspace, check out the
// branch, then reset it to the remote head.
func (c *Client) Checkout(ctx context.Context, project, workspace, branch string) error {
	if err := c.UpdateSession(ctx, workspace); err != nil {
		return err
	}
	if err := c.UpdateGitBranch(ctx, project, branch); err != nil {
		return err
	}
	return c.ResetToRemote(ctx, project)
}

// ContentValidation runs the content validator and decodes its result.
func (c *Client) ContentValidation(ctx context.Context) (*content.ValidationResult, error) {
	var raw json.RawMessage
	if err := c.call(ctx, request{method: http.MethodGet, path: "/content_validation"}, &raw); err != nil {
		return nil, fmt.Errorf("running content validation: %w", err)
	}
	return content.DecodeResult(bytes.NewReader(raw))
}

func (c *Client) accessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

type request struct {
	method      string
	path        string
	body        []byte
	contentType string
	anonymous   bool
}

// call performs the request with retries and decodes a JSON response into out
// when out is non-nil.
func (c *Client) call(ctx context.Context, r request, out any) error {
	return retry.Do(ctx, c.policy, func() error {
		return c.do(ctx, r, out)
	})
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	endpoint := fmt.Sprintf("%s/api/%s%s", c.baseURL, c.apiVersion, r.path)

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		ct := r.contentType
		if ct == "" {
			ct = "application/json"
		}
		req.Header.Set("Content-Type", ct)
	}
	if !r.anonymous {
		tok := c.accessToken()
		if tok == "" {
			return faults.Auth("not logged in to looker", nil)
		}
		req.Header.Set("Authorization", "token "+tok)
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return faults.Transient(fmt.Sprintf("%s %s", r.method, r.path), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return faults.Transient("reading response", err)
	}

	if err := statusFault(r.method, r.path, resp.StatusCode, respBody); err != nil {
		return err
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], respBody...)
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return faults.Platform(fmt.Sprintf("parsing %s response", r.path), err)
	}
	return nil
}

// statusFault classifies a non-2xx response.
func statusFault(method, path string, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	msg := fmt.Sprintf("looker %s %s (status %d): %s", method, path, status, apiMessage(body))
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return faults.Auth(msg, nil)
	case status == http.StatusTooManyRequests || status >= 500:
		return faults.Transient(msg, nil)
	default:
		return faults.Platform(msg, nil)
	}
}

// apiMessage extracts Looker's {"message": ...} error text, falling back to
// the raw body.
func apiMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &e) == nil && e.Message != "" {
		return e.Message
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
