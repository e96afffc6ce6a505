package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"indvend/internal/application/listutil"
	"indvend/internal/application/orchestrators"
	"indvend/internal/application/workspace"
	"indvend/internal/domain/profile"
	"indvend/internal/domain/staff"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// mdRenderer converts catalog descriptions from Markdown to HTML.
// Raw HTML in the source is dropped by goldmark's default renderer.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

var funcMap = template.FuncMap{
	"renderMarkdown": renderMarkdown,
	"add":            func(a, b int) int { return a + b },
	"sub":            func(a, b int) int { return a - b },
	"stars":          func(r float64) string { return fmt.Sprintf("%.1f", r) },
	"pageURL":        pageURL,
	"sortURL":        sortURL,
}

// pageURL links to another page of the attendance log keeping the filters.
func pageURL(p listutil.ListParams, page int) template.URL {
	q := p.Query()
	q.Set("page", strconv.Itoa(page))
	return template.URL("/attendance?" + q.Encode())
}

// sortURL links to the attendance log sorted by col, flipping the
// direction when col is already the active sort.
func sortURL(p listutil.ListParams, col string) template.URL {
	q := p.Query()
	dir := "asc"
	if p.Sort == col && p.Dir == "asc" {
		dir = "desc"
	}
	q.Set("sort", col)
	q.Set("dir", dir)
	return template.URL("/attendance?" + q.Encode())
}

// pages maps a page template name to the layout parsed together with it.
var pages = mustParsePages()

func mustParsePages() map[string]*template.Template {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		panic(err)
	}
	out := make(map[string]*template.Template, len(names))
	for _, path := range names {
		name := strings.TrimPrefix(path, "templates/")
		if name == "layout.html" {
			continue
		}
		out[name] = template.Must(template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", path))
	}
	return out
}

// internalError logs the real error and returns a generic 500.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func isJSONRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("internal_error", "error", err.Error())
	}
}

// writeActionError maps orchestrator errors onto HTTP responses.
func writeActionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, orchestrators.ErrNoSession):
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, orchestrators.ErrNotOwner):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, orchestrators.ErrUnknownGym),
		errors.Is(err, orchestrators.ErrUnknownTrainer),
		errors.Is(err, orchestrators.ErrGymNotOffered),
		errors.Is(err, staff.ErrNameTooLong),
		errors.Is(err, staff.ErrControlChar),
		errors.Is(err, profile.ErrNameTooLong),
		errors.Is(err, profile.ErrEmailTooLong),
		errors.Is(err, profile.ErrControlChar):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		internalError(w, err)
	}
}

// navLink is one entry in the navigation bar.
type navLink struct {
	Page   workspace.Page
	Label  string
	Active bool
}

var pageLabels = map[workspace.Page]string{
	workspace.PageHome:        "Home",
	workspace.PageMarketplace: "Marketplace",
	workspace.PageAttendance:  "Attendance",
	workspace.PageProfile:     "Profile",
}

// scanView is the attendance modal as rendered.
type scanView struct {
	Open    bool
	Gym     string
	Options []string
}

// pageData is what every page template receives.
type pageData struct {
	Title     string
	CSRFField template.HTML
	User      *profile.Profile
	Nav       []navLink
	Flash     string
	Scan      scanView
	Body      any
}

func newPageData(r *http.Request, s workspace.State, flash string) pageData {
	d := pageData{
		Title:     "IndVend Fitness",
		CSRFField: csrf.TemplateField(r),
		User:      s.Session,
		Flash:     flash,
	}
	if s.Session == nil {
		return d
	}
	for _, p := range workspace.Pages {
		d.Nav = append(d.Nav, navLink{Page: p, Label: pageLabels[p], Active: p == s.Page})
	}
	d.Scan = scanView{
		Open:    s.Scan.Open,
		Gym:     s.Scan.Gym,
		Options: orchestrators.ScanOptions(s.Session),
	}
	return d
}

func renderTemplate(w http.ResponseWriter, templateName string, data pageData) {
	tpl, ok := pages[templateName]
	if !ok {
		internalError(w, fmt.Errorf("unknown template %q", templateName))
		return
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, fmt.Errorf("render %s: %w", templateName, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
