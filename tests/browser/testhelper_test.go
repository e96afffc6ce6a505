//go:build browser

package browser_test

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"indvend/internal/adapters/email"
	web "indvend/internal/adapters/http"
	"indvend/internal/adapters/storage"
	attendanceStore "indvend/internal/adapters/storage/attendance"
	"indvend/internal/adapters/storage/localstore"
	"indvend/internal/application/workspace"
	"indvend/internal/domain/attendance"
	"indvend/internal/domain/catalog"
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL string
	Ledgers *attendanceStore.LedgerStore
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// newTestApp creates a fully wired app with a temp SQLite DB and starts an HTTP server.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init test DB: %v", err)
	}
	ledgers := attendanceStore.NewLedgerStore(localstore.NewSQLiteStore(db))
	registry := workspace.NewRegistry(workspace.RegistryDeps{Ledgers: ledgers, GenerateID: uuid.NewString})

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	ctx, cancel := context.WithCancel(context.Background())
	handler := web.NewMux(ctx, web.Deps{
		Workspaces:     registry,
		Ledgers:        ledgers,
		Catalog:        catalog.Default(),
		EmailSender:    email.NewNoopSender(),
		Location:       time.UTC,
		CSRFKey:        make([]byte, 32),
		TrustedOrigins: []string{fmt.Sprintf("127.0.0.1:%d", port)},
		RateLimit:      1000,
		GenerateID:     uuid.NewString,
		ChainHash:      attendance.NewChainHash,
	})
	srv := &http.Server{Addr: fmt.Sprintf("127.0.0.1:%d", port), Handler: handler}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for range 50 {
		resp, err := http.Get(baseURL + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		cancel()
		db.Close()
	})

	return &testApp{BaseURL: baseURL, Ledgers: ledgers, Server: srv, PW: pw, Browser: browser}
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login fills the login form with the given name and role.
func (a *testApp) login(t *testing.T, page playwright.Page, name, role string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=name]").Fill(name); err != nil {
		t.Fatalf("failed to fill name: %v", err)
	}
	if err := page.Locator(fmt.Sprintf("input[name=role][value=%s]", role)).Check(); err != nil {
		t.Fatalf("failed to pick role: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.Locator("text=Logout").WaitFor(); err != nil {
		t.Fatalf("login did not complete: %v", err)
	}
}

// bodyText returns the visible text of the page.
func bodyText(t *testing.T, page playwright.Page) string {
	t.Helper()
	text, err := page.Locator("main").InnerText()
	if err != nil {
		t.Fatalf("failed to read page text: %v", err)
	}
	return text
}
