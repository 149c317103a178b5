package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fainmariya/sorting-books-read/internal/data"
	"github.com/fainmariya/sorting-books-read/ui"
)

// templateData is the single data object handed to every page template.
type templateData struct {
	Title       string
	CurrentYear int
	Books       []data.BookView
	Book        data.BookView
	Form        bookForm
	Sort        string
	Order       string
	SortOptions []data.SortKey
}

// bookForm holds the string values shown in the create and edit forms.
type bookForm struct {
	ID       int64
	Title    string
	Author   string
	ISBN     string
	ReadDate string
	Rating   string
	Notes    string
}

func newBookForm(b *data.Book) bookForm {
	form := bookForm{
		ID:       b.ID,
		Title:    b.Title,
		Author:   deref(b.Author),
		ISBN:     deref(b.ISBN),
		ReadDate: inputDate(b.ReadDate),
		Notes:    deref(b.Notes),
	}
	if b.Rating != nil {
		form.Rating = strconv.Itoa(*b.Rating)
	}
	return form
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func inputDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func humanDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2 Jan 2006")
}

func ratingText(r *int) string {
	if r == nil {
		return "-"
	}
	return strconv.Itoa(*r) + "/10"
}

func optionalText(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

var functions = template.FuncMap{
	"date":   humanDate,
	"rating": ratingText,
	"text":   optionalText,
}

// newTemplateCache parses every page together with the base layout and the
// partials, keyed by the page's file name.
func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(ui.Files, "html/pages/*.tmpl")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		patterns := []string{
			"html/base.tmpl",
			"html/partials/*.tmpl",
			page,
		}

		ts, err := template.New(name).Funcs(functions).ParseFS(ui.Files, patterns...)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		cache[name] = ts
	}

	return cache, nil
}

func (app *applicationDependencies) newTemplateData(title string) templateData {
	return templateData{
		Title:       title,
		CurrentYear: time.Now().Year(),
	}
}

// render executes the page into a buffer first so that a template error
// becomes a clean 500 instead of a half-written page.
func (app *applicationDependencies) render(w http.ResponseWriter, r *http.Request, status int, page string, td templateData) {
	ts, ok := app.templateCache[page]
	if !ok {
		app.serverErrorResponse(w, r, fmt.Errorf("the template %s does not exist", page))
		return
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", td); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
