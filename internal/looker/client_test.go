package looker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lookerci/contentcheck/internal/config"
	"github.com/lookerci/contentcheck/internal/faults"
	"github.com/lookerci/contentcheck/internal/retry"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	c, err := NewClient(config.LookerConfig{
		BaseURL:      server.URL,
		ClientID:     "id",
		ClientSecret: "secret",
		APIVersion:   "4.0",
		Timeout:      5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	c.policy = retry.Policy{MaxRetries: 2, BaseDelay: time.Millisecond}
	return c
}

func loginHandler(t *testing.T, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/4.0/login" {
			if err := r.ParseForm(); err != nil {
				t.Fatalf("ParseForm: %v", err)
			}
			if r.PostForm.Get("client_id") != "id" || r.PostForm.Get("client_secret") != "secret" {
				t.Errorf("login form = %v", r.PostForm)
			}
			w.Write([]byte(`{"access_token":"tok-1","token_type":"Bearer","expires_in":3600}`))
			return
		}
		if got := r.Header.Get("Authorization"); got != "token tok-1" {
			t.Errorf("Authorization = %q", got)
		}
		next(w, r)
	})
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(config.LookerConfig{})
	if !faults.Is(err, faults.KindConfiguration) {
		t.Errorf("err = %v, want configuration fault", err)
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	c, err := NewClient(config.LookerConfig{BaseURL: "https://example.looker.com:19999"})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Login(context.Background()); !faults.Is(err, faults.KindConfiguration) {
		t.Errorf("err = %v, want configuration fault", err)
	}
}

func TestCheckoutAndValidate(t *testing.T) {
	var calls []string
	c := newTestClient(t, loginHandler(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/api/4.0/session":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["workspace_id"] != "dev" {
				t.Errorf("workspace_id = %q", body["workspace_id"])
			}
			w.Write([]byte(`{"workspace_id":"dev"}`))
		case "/api/4.0/projects/reports/git_branch":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["name"] != "feature/x" {
				t.Errorf("branch name = %q", body["name"])
			}
			w.Write([]byte(`{"name":"feature/x"}`))
		case "/api/4.0/projects/reports/reset_to_remote":
			w.WriteHeader(http.StatusNoContent)
		case "/api/4.0/content_validation":
			w.Write([]byte(`{"computation_time":1.5,"total_looks_validated":7,"content_with_errors":[{"look":{"id":1,"title":"L","folder":{"id":"2","name":"F"}},"errors":[{"message":"m"}]}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	ctx := context.Background()
	if err := c.Login(ctx); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if err := c.Checkout(ctx, "reports", "dev", "feature/x"); err != nil {
		t.Fatalf("Checkout error: %v", err)
	}
	res, err := c.ContentValidation(ctx)
	if err != nil {
		t.Fatalf("ContentValidation error: %v", err)
	}
	if res.TotalLooksValidated != 7 || len(res.ContentWithErrors) != 1 {
		t.Errorf("result = %+v", res)
	}

	want := []string{
		"PATCH /api/4.0/session",
		"PUT /api/4.0/projects/reports/git_branch",
		"POST /api/4.0/projects/reports/reset_to_remote",
		"GET /api/4.0/content_validation",
	}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestNotLoggedIn(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	_, err := c.ContentValidation(context.Background())
	if !faults.Is(err, faults.KindAuth) {
		t.Errorf("err = %v, want auth fault", err)
	}
}

func TestLogin_Unauthorized(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Not found"}`))
	}))
	err := c.Login(context.Background())
	if !faults.Is(err, faults.KindAuth) {
		t.Fatalf("err = %v, want auth fault", err)
	}
	if strings.Contains(err.Error(), "secret") {
		t.Errorf("error leaks credentials: %v", err)
	}
}

func TestRetriesServerErrors(t *testing.T) {
	var n atomic.Int32
	c := newTestClient(t, loginHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if n.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"content_with_errors":[]}`))
	}))
	ctx := context.Background()
	if err := c.Login(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ContentValidation(ctx); err != nil {
		t.Fatalf("ContentValidation error: %v", err)
	}
	if n.Load() != 3 {
		t.Errorf("attempts = %d, want 3", n.Load())
	}
}

func TestRetriesExhausted(t *testing.T) {
	var n atomic.Int32
	c := newTestClient(t, loginHandler(t, func(w http.ResponseWriter, r *http.Request) {
		n.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	ctx := context.Background()
	if err := c.Login(ctx); err != nil {
		t.Fatal(err)
	}
	err := c.ResetToRemote(ctx, "reports")
	if !faults.IsRetryable(err) {
		t.Errorf("err = %v, want retryable platform fault", err)
	}
	if n.Load() != 3 {
		t.Errorf("attempts = %d, want 3", n.Load())
	}
}

func TestClientErrorNotRetried(t *testing.T) {
	var n atomic.Int32
	c := newTestClient(t, loginHandler(t, func(w http.ResponseWriter, r *http.Request) {
		n.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"branch not found"}`))
	}))
	ctx := context.Background()
	if err := c.Login(ctx); err != nil {
		t.Fatal(err)
	}
	err := c.UpdateGitBranch(ctx, "reports", "gone")
	if !faults.Is(err, faults.KindPlatform) || faults.IsRetryable(err) {
		t.Errorf("err = %v, want permanent platform fault", err)
	}
	if !strings.Contains(err.Error(), "branch not found") {
		t.Errorf("err should carry API message: %v", err)
	}
	if n.Load() != 1 {
		t.Errorf("attempts = %d, want 1", n.Load())
	}
}

func TestMalformedValidationBody(t *testing.T) {
	c := newTestClient(t, loginHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content_with_errors":`))
	}))
	ctx := context.Background()
	if err := c.Login(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ContentValidation(ctx); !faults.Is(err, faults.KindMalformedInput) {
		t.Errorf("err = %v, want malformed input fault", err)
	}
}

func TestLogout(t *testing.T) {
	var loggedOut bool
	c := newTestClient(t, loginHandler(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete && r.URL.Path == "/api/4.0/logout" {
			loggedOut = true
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	ctx := context.Background()
	if err := c.Logout(ctx); err != nil {
		t.Fatalf("Logout before Login should be a no-op: %v", err)
	}
	if err := c.Login(ctx); err != nil {
		t.Fatal(err)
	}
	if err := c.Logout(ctx); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if !loggedOut || c.accessToken() != "" {
		t.Error("token should be revoked and cleared")
	}
}
