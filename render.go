package main

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

/* --------- Template cache --------- */

// templates maps a page file name ("index.html") to its parsed set
// (base layout + partials + the page itself). Populated once at startup.
var templates map[string]*template.Template

var templateFuncs = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
	"hasSuffix": strings.HasSuffix,
}

func loadTemplates(dir string) (map[string]*template.Template, error) {
	pages, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}

	cache := make(map[string]*template.Template)
	for _, page := range pages {
		name := filepath.Base(page)
		if name == "base.layout.html" {
			continue
		}

		ts, err := template.New(name).Funcs(templateFuncs).ParseFiles(
			filepath.Join(dir, "base.layout.html"),
			page,
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		ts, err = ts.ParseGlob(filepath.Join(dir, "partials", "*.html"))
		if err != nil {
			return nil, fmt.Errorf("parse partials for %s: %w", name, err)
		}
		cache[name] = ts
	}
	return cache, nil
}

/* --------- Render context --------- */

// pageData is the render context shared by every page. Handlers fill in the
// fields their template reads and leave the rest zero.
type pageData struct {
	Title       string
	Path        string
	CurrentUser *User

	FormError   string            // one banner error (login)
	FormData    map[string]string // submitted values echoed back into inputs
	FieldErrors map[string]string // per-field validation messages

	Page     *postPage
	Post     *Post
	Comments []Comment
	Comment  *Comment
	Category *Category
	Profile  *User

	// Select options for the post form.
	Categories []Category
	Locations  []Location
}

func render(w http.ResponseWriter, r *http.Request, page string, data *pageData) {
	renderStatus(w, r, http.StatusOK, page, data)
}

// renderStatus executes the page into a buffer first so a template error
// can still become a clean 500 instead of a half-written body.
func renderStatus(w http.ResponseWriter, r *http.Request, status int, page string, data *pageData) {
	ts, ok := templates[page]
	if !ok {
		serverError(w, r, fmt.Errorf("no template %q", page))
		return
	}

	if data == nil {
		data = &pageData{}
	}
	data.Path = r.URL.Path
	if data.CurrentUser == nil {
		data.CurrentUser = currentUser(r)
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

/* --------- Error responses --------- */

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error().Err(err).Str("path", r.URL.Path).Msg("server error")
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	if _, ok := templates["404.html"]; ok {
		renderStatus(w, r, http.StatusNotFound, "404.html", &pageData{Title: "Not found"})
		return
	}
	http.NotFound(w, r)
}
