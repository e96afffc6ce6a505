package web

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"indvend/internal/adapters/email"
	"indvend/internal/adapters/http/metrics"
	ledgerStore "indvend/internal/adapters/storage/attendance"
	"indvend/internal/adapters/storage/localstore"
	"indvend/internal/application/workspace"
	"indvend/internal/domain/catalog"
)

var csrfField = regexp.MustCompile(`name="gorilla.csrf.Token" value="([^"]+)"`)

func newFullServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ledgers := ledgerStore.NewLedgerStore(localstore.NewMemoryStore())
	m := metrics.New()
	reg := workspace.NewRegistry(workspace.RegistryDeps{Ledgers: ledgers, GenerateID: uuid.NewString, OnChange: m.SetWorkspaces})
	h := NewMux(ctx, Deps{
		Workspaces:  reg,
		Ledgers:     ledgers,
		Catalog:     catalog.Default(),
		EmailSender: email.NewNoopSender(),
		Metrics:     m,
		Location:    time.UTC,
		CSRFKey:     make([]byte, 32),
		RateLimit:   1000,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar}
}

func getBody(t *testing.T, c *http.Client, u string) (int, string) {
	t.Helper()
	resp, err := c.Get(u)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(b)
}

// TestNewMux_LoginWithCSRFToken drives a browser-like client through the
// full middleware chain.
func TestNewMux_LoginWithCSRFToken(t *testing.T) {
	srv := newFullServer(t)
	c := newClient(t)

	status, body := getBody(t, c, srv.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("GET / = %d", status)
	}
	m := csrfField.FindStringSubmatch(body)
	if m == nil {
		t.Fatal("login form has no CSRF field")
	}

	resp, err := c.PostForm(srv.URL+"/login", url.Values{"name": {"Jordan"}, "role": {"Member"}, "gorilla.csrf.Token": {m[1]}})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login followed to %d", resp.StatusCode)
	}

	_, body = getBody(t, c, srv.URL+"/")
	if !strings.Contains(body, "Recent Attendance") {
		t.Error("login did not reach the member dashboard")
	}
}

// TestNewMux_RejectsMissingToken verifies the chain enforces CSRF.
func TestNewMux_RejectsMissingToken(t *testing.T) {
	srv := newFullServer(t)
	c := newClient(t)
	getBody(t, c, srv.URL+"/")

	resp, err := c.PostForm(srv.URL+"/login", url.Values{"name": {"Mallory"}})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

// TestNewMux_DevicesAreIsolated verifies two browsers do not share state.
func TestNewMux_DevicesAreIsolated(t *testing.T) {
	srv := newFullServer(t)
	a, b := newClient(t), newClient(t)

	_, body := getBody(t, a, srv.URL+"/")
	token := csrfField.FindStringSubmatch(body)[1]
	resp, err := a.PostForm(srv.URL+"/login", url.Values{"name": {"Jordan"}, "gorilla.csrf.Token": {token}})
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	_, body = getBody(t, b, srv.URL+"/")
	if !strings.Contains(body, `action="/login"`) {
		t.Error("second browser saw the first browser's session")
	}
}

// TestNewMux_SecurityHeadersAndMetrics checks headers and route labels.
func TestNewMux_SecurityHeadersAndMetrics(t *testing.T) {
	srv := newFullServer(t)
	c := newClient(t)

	resp, err := c.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.Header.Get("X-Frame-Options") != "DENY" {
		t.Error("missing security headers")
	}

	_, body := getBody(t, c, srv.URL+"/metrics")
	if !strings.Contains(body, `path="GET /{$}"`) {
		t.Errorf("request histogram not labelled by route:\n%s", body)
	}
}
