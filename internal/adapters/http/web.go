package web

import (
	"context"
	"net/http"
	"time"

	"indvend/internal/adapters/email"
	"indvend/internal/adapters/http/metrics"
	"indvend/internal/adapters/http/middleware"
	"indvend/internal/application/orchestrators"
	"indvend/internal/application/workspace"
	"indvend/internal/domain/catalog"
	"indvend/internal/domain/profile"
)

// Deps holds everything the HTTP layer needs.
type Deps struct {
	Workspaces  middleware.WorkspaceOpener
	Ledgers     orchestrators.LedgerSaver
	Catalog     *catalog.Catalog
	EmailSender email.Sender    // optional
	Metrics     *metrics.Metrics // optional
	Location    *time.Location

	CSRFKey        []byte
	SecureCookies  bool
	TrustedOrigins []string
	RateLimit      int // requests per second per IP; 0 disables
	SlowRequest    time.Duration

	// Health reports whether backing storage is reachable. Optional.
	Health func(ctx context.Context) error

	// Injectable for tests.
	Now        func() time.Time
	GenerateID func() string
	ChainHash  func() string
}

// server carries the dependencies shared by all handlers.
type server struct {
	Deps
}

func (s *server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// NewMux wires HTTP handlers for the app.
// The rate limiter's cleanup goroutine stops when ctx is cancelled.
// PRE: deps.Workspaces, deps.Ledgers, deps.Catalog are non-nil; len(deps.CSRFKey) == 32
func NewMux(ctx context.Context, deps Deps) http.Handler {
	if deps.Location == nil {
		deps.Location = time.Local
	}
	s := &server{Deps: deps}
	middleware.SecureCookies = deps.SecureCookies

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	// Apply middleware: RateLimit -> SecurityHeaders -> CSRF -> Device -> Timing -> Mux
	// Timing wraps the mux directly so it sees the matched route pattern.
	chain := []func(http.Handler) http.Handler{
		middleware.Timing(deps.Metrics, deps.SlowRequest),
		middleware.Device(deps.Workspaces, "/healthz", "/metrics", "/static/"),
		middleware.CSRF(deps.CSRFKey, deps.SecureCookies, deps.TrustedOrigins...),
		middleware.SecurityHeaders,
	}
	if deps.RateLimit > 0 {
		chain = append(chain, middleware.RateLimit(middleware.NewRateLimiter(ctx, deps.RateLimit)))
	}
	return middleware.Chain(mux, chain...)
}

func (s *server) registerRoutes(mux *http.ServeMux) {
	session := middleware.RequireSession
	owner := middleware.RequireRole(profile.RoleOwner)

	mux.Handle("GET /static/", http.FileServerFS(staticFS))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.Metrics != nil {
		mux.Handle("GET /metrics", s.Metrics.Handler())
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)

	mux.Handle("POST /nav/{page}", session(http.HandlerFunc(s.handleNavigate)))
	mux.Handle("POST /scan/open", session(http.HandlerFunc(s.handleOpenScan)))
	mux.Handle("POST /scan/close", session(http.HandlerFunc(s.handleCloseScan)))

	mux.Handle("GET /attendance", session(http.HandlerFunc(s.handleAttendancePage)))
	mux.Handle("POST /attendance", session(http.HandlerFunc(s.handleRecordVisit)))
	mux.Handle("GET /attendance/export.csv", session(http.HandlerFunc(s.handleExportAttendance)))

	mux.Handle("GET /marketplace", session(http.HandlerFunc(s.handleMarketplace)))
	mux.Handle("POST /marketplace/subscribe", session(http.HandlerFunc(s.handleSubscribe)))
	mux.Handle("POST /marketplace/book", session(http.HandlerFunc(s.handleBookTrainer)))

	mux.Handle("POST /owner/offers", owner(http.HandlerFunc(s.handleSendOffer)))
	mux.Handle("POST /owner/staff", owner(http.HandlerFunc(s.handleAddStaff)))
}

// workspaceFor returns the request's device workspace. Device middleware
// guarantees one on every route that calls this.
func workspaceFor(r *http.Request) *workspace.Workspace {
	ws, _ := middleware.WorkspaceFromContext(r.Context())
	return ws
}
