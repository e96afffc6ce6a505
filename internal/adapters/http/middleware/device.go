package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/google/uuid"

	"indvend/internal/application/workspace"
	"indvend/internal/domain/profile"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const workspaceContextKey contextKey = "workspace"

// DeviceCookieName identifies a browser across visits.
const DeviceCookieName = "indvend_device"

const deviceCookieMaxAge = 400 * 24 * 60 * 60

// SecureCookies sets the Secure flag on cookies. Enabled in production.
var SecureCookies = false

// WorkspaceOpener returns the workspace for a device.
type WorkspaceOpener interface {
	Open(ctx context.Context, deviceID string) (*workspace.Workspace, error)
}

// Device returns middleware that identifies the browser by its device
// cookie, issuing one when missing, and puts the device's workspace in the
// request context. Paths under skip are passed through untouched.
func Device(opener WorkspaceOpener, skip ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.ContainsFunc(skip, func(p string) bool { return strings.HasPrefix(r.URL.Path, p) }) {
				next.ServeHTTP(w, r)
				return
			}

			deviceID := ""
			if c, err := r.Cookie(DeviceCookieName); err == nil {
				if id, err := uuid.Parse(c.Value); err == nil {
					deviceID = id.String()
				}
			}
			if deviceID == "" {
				deviceID = uuid.NewString()
				setDeviceCookie(w, deviceID)
				slog.Debug("device_event", "event", "device_issued", "device_id", deviceID)
			}

			ws, err := opener.Open(r.Context(), deviceID)
			if err != nil {
				slog.Error("internal_error", "error", err.Error(), "device_id", deviceID)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithWorkspace(r.Context(), ws)))
		})
	}
}

// WithWorkspace returns a context carrying ws.
func WithWorkspace(ctx context.Context, ws *workspace.Workspace) context.Context {
	return context.WithValue(ctx, workspaceContextKey, ws)
}

// WorkspaceFromContext extracts the device workspace from the request context.
func WorkspaceFromContext(ctx context.Context) (*workspace.Workspace, bool) {
	ws, ok := ctx.Value(workspaceContextKey).(*workspace.Workspace)
	return ws, ok && ws != nil
}

// RequireSession returns middleware that sends visitors without a session
// back to the login page.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole returns middleware that blocks sessions without one of the specified roles.
func RequireRole(roles ...profile.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := SessionFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			if !slices.Contains(roles, p.Role()) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext returns the profile signed in on the request's device.
func SessionFromContext(ctx context.Context) (profile.Profile, bool) {
	ws, ok := WorkspaceFromContext(ctx)
	if !ok {
		return profile.Profile{}, false
	}
	s := ws.Snapshot()
	if s.Session == nil {
		return profile.Profile{}, false
	}
	return *s.Session, true
}

func setDeviceCookie(w http.ResponseWriter, deviceID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     DeviceCookieName,
		Value:    deviceID,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   deviceCookieMaxAge,
	})
}
