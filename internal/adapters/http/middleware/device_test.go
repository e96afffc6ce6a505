package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"

	"indvend/internal/application/workspace"
	"indvend/internal/domain/profile"
)

// mockOpener hands out one workspace per device and records requested ids.
type mockOpener struct {
	mu    sync.Mutex
	items map[string]*workspace.Workspace
	calls []string
	err   error
}

func newMockOpener() *mockOpener {
	return &mockOpener{items: make(map[string]*workspace.Workspace)}
}

func (m *mockOpener) Open(_ context.Context, deviceID string) (*workspace.Workspace, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, deviceID)
	if m.err != nil {
		return nil, m.err
	}
	ws, ok := m.items[deviceID]
	if !ok {
		ws = workspace.New(deviceID, nil, fixedTime, uuid.NewString)
		m.items[deviceID] = ws
	}
	return ws, nil
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// TestDevice_IssuesCookieOnFirstVisit verifies new browsers get a device id.
func TestDevice_IssuesCookieOnFirstVisit(t *testing.T) {
	opener := newMockOpener()
	var got *workspace.Workspace
	h := Device(opener)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = WorkspaceFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != DeviceCookieName {
		t.Fatalf("cookies = %+v, want one %s cookie", cookies, DeviceCookieName)
	}
	if !cookies[0].HttpOnly {
		t.Error("device cookie should be HttpOnly")
	}
	if _, err := uuid.Parse(cookies[0].Value); err != nil {
		t.Errorf("device id %q is not a UUID", cookies[0].Value)
	}
	if got == nil || got.Snapshot().DeviceID != cookies[0].Value {
		t.Error("workspace in context does not belong to the issued device")
	}
}

// TestDevice_ReusesExistingCookie verifies returning browsers keep their workspace.
func TestDevice_ReusesExistingCookie(t *testing.T) {
	opener := newMockOpener()
	h := Device(opener)(http.HandlerFunc(okHandler))
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DeviceCookieName, Value: id})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if len(rec.Result().Cookies()) != 0 {
		t.Error("existing device should not be reissued a cookie")
	}
	if len(opener.calls) != 1 || opener.calls[0] != id {
		t.Errorf("Open calls = %v, want [%s]", opener.calls, id)
	}
}

// TestDevice_ReplacesMalformedCookie verifies non-UUID values are not trusted.
func TestDevice_ReplacesMalformedCookie(t *testing.T) {
	opener := newMockOpener()
	h := Device(opener)(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DeviceCookieName, Value: "../../etc"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if len(opener.calls) != 1 || opener.calls[0] == "../../etc" {
		t.Errorf("Open calls = %v, want a fresh id", opener.calls)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Error("expected a replacement cookie")
	}
}

// TestDevice_SkipsPaths verifies infrastructure endpoints bypass workspaces.
func TestDevice_SkipsPaths(t *testing.T) {
	opener := newMockOpener()
	h := Device(opener, "/healthz", "/static/")(http.HandlerFunc(okHandler))

	for _, path := range []string{"/healthz", "/static/app.css"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, rec.Code)
		}
	}
	if len(opener.calls) != 0 {
		t.Errorf("Open called for skipped paths: %v", opener.calls)
	}
}

// TestDevice_OpenFailureIs500 verifies storage errors are not leaked.
func TestDevice_OpenFailureIs500(t *testing.T) {
	opener := newMockOpener()
	opener.err = errors.New("disk on fire")
	h := Device(opener)(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body := rec.Body.String(); body != "internal server error\n" {
		t.Errorf("body = %q", body)
	}
}

func requestWithSession(t *testing.T, p *profile.Profile) *http.Request {
	t.Helper()
	ws := workspace.New("device-1", nil, fixedTime, uuid.NewString)
	if p != nil {
		if err := ws.Update(func(s *workspace.State) error {
			s.Session = p
			return nil
		}); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(http.MethodPost, "/owner/offers", nil)
	return req.WithContext(WithWorkspace(req.Context(), ws))
}

// TestRequireSession redirects visitors without a session.
func TestRequireSession(t *testing.T) {
	h := RequireSession(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithSession(t, nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Errorf("no session: status = %d, location = %q", rec.Code, rec.Header().Get("Location"))
	}

	p := profile.New("p1", "Jordan", "", profile.RoleMember)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithSession(t, &p))
	if rec.Code != http.StatusOK {
		t.Errorf("with session: status = %d", rec.Code)
	}
}

// TestRequireRole tests role gating.
func TestRequireRole(t *testing.T) {
	h := RequireRole(profile.RoleOwner)(http.HandlerFunc(okHandler))
	tests := []struct {
		name string
		role profile.Role
		want int
	}{
		{"owner allowed", profile.RoleOwner, http.StatusOK},
		{"member forbidden", profile.RoleMember, http.StatusForbidden},
		{"trainer forbidden", profile.RoleTrainer, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profile.New("p1", "Casey", "", tt.role)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, requestWithSession(t, &p))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithSession(t, nil))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("no session: status = %d, want 303", rec.Code)
	}
}
