package gitlab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lookerci/contentcheck/internal/config"
	"github.com/lookerci/contentcheck/internal/faults"
	"github.com/lookerci/contentcheck/internal/retry"
)

const perPage = 100

// Client provides access to the notes of one GitLab merge request.
type Client struct {
	token     string
	apiURL    string
	projectID string
	mrIID     int
	httpCli   *http.Client
	policy    retry.Policy
}

// NewClient creates a GitLab client for the merge request named in cfg.
func NewClient(cfg config.GitLabConfig) (*Client, error) {
	if cfg.Token == "" {
		return nil, faults.Configuration("GITLAB_API_TOKEN is not set", nil)
	}
	if cfg.ProjectID == "" || cfg.MergeRequestIID <= 0 {
		return nil, faults.Configuration("CI_PROJECT_ID and CI_MERGE_REQUEST_IID are required", nil)
	}
	apiURL := cfg.URL
	if apiURL == "" {
		apiURL = "https://gitlab.com/api/v4"
	}
	return &Client{
		token:     cfg.Token,
		apiURL:    strings.TrimRight(apiURL, "/"),
		projectID: cfg.ProjectID,
		mrIID:     cfg.MergeRequestIID,
		httpCli:   &http.Client{Timeout: 60 * time.Second},
		policy:    retry.Default,
	}, nil
}

// Note is a merge request comment.
type Note struct {
	ID     int64  `json:"id"`
	Body   string `json:"body"`
	System bool   `json:"system"`
}

func (c *Client) notesURL() string {
	return fmt.Sprintf("%s/projects/%s/merge_requests/%d/notes",
		c.apiURL, url.PathEscape(c.projectID), c.mrIID)
}

// ListNotes returns every note on the merge request, oldest first.
func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var all []Note
	page := "1"
	for page != "" {
		q := url.Values{}
		q.Set("sort", "asc")
		q.Set("order_by", "created_at")
		q.Set("per_page", strconv.Itoa(perPage))
		q.Set("page", page)

		var notes []Note
		var next string
		err := retry.Do(ctx, c.policy, func() error {
			h, err := c.do(ctx, http.MethodGet, c.notesURL()+"?"+q.Encode(), nil, &notes)
			if err != nil {
				return err
			}
			next = h.Get("X-Next-Page")
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("listing merge request notes: %w", err)
		}
		all = append(all, notes...)
		page = next
	}
	return all, nil
}

// CreateNote posts a new note.
func (c *Client) CreateNote(ctx context.Context, body string) (Note, error) {
	var n Note
	err := c.send(ctx, http.MethodPost, c.notesURL(), body, &n)
	if err != nil {
		return Note{}, fmt.Errorf("creating merge request note: %w", err)
	}
	return n, nil
}

// UpdateNote replaces the body of an existing note.
func (c *Client) UpdateNote(ctx context.Context, id int64, body string) (Note, error) {
	var n Note
	err := c.send(ctx, http.MethodPut, fmt.Sprintf("%s/%d", c.notesURL(), id), body, &n)
	if err != nil {
		return Note{}, fmt.Errorf("updating merge request note %d: %w", id, err)
	}
	return n, nil
}

func (c *Client) send(ctx context.Context, method, endpoint, body string, out any) error {
	payload, err := json.Marshal(map[string]string{"body": body})
	if err != nil {
		return fmt.Errorf("marshaling note: %w", err)
	}
	return retry.Do(ctx, c.policy, func() error {
		_, err := c.do(ctx, method, endpoint, payload, out)
		return err
	})
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte, out any) (http.Header, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("PRIVATE-TOKEN", c.token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, faults.Transient(method+" notes", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, faults.Transient("reading response", err)
	}

	switch {
	case resp.StatusCode == 401 || resp.StatusCode == 403:
		return nil, faults.Auth(fmt.Sprintf("gitlab rejected token (status %d): %s", resp.StatusCode, apiMessage(respBody)), nil)
	case resp.StatusCode == 404:
		return nil, faults.Platform(fmt.Sprintf("merge request !%d not found in project %s", c.mrIID, c.projectID), nil)
	case resp.StatusCode == 429 || resp.StatusCode >= 500:
		return nil, faults.Transient(fmt.Sprintf("GitLab API error (status %d): %s", resp.StatusCode, apiMessage(respBody)), nil)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, faults.Platform(fmt.Sprintf("GitLab API error (status %d): %s", resp.StatusCode, apiMessage(respBody)), nil)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return nil, faults.Platform("parsing GitLab response", err)
		}
	}
	return resp.Header, nil
}

func apiMessage(body []byte) string {
	var e struct {
		Message any    `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil {
		if e.Message != nil {
			return fmt.Sprint(e.Message)
		}
		if e.Error != "" {
			return e.Error
		}
	}
	return strings.TrimSpace(string(body))
}
