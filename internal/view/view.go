// Package view renders server-side HTML pages.
package view

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/spec-kit/deadline-tracker/internal/domain"
	"github.com/spec-kit/deadline-tracker/internal/timetable"
)

//go:embed templates/*.html
var templateFS embed.FS

// ModeAll shows every section of the timetable.
const ModeAll = "all"

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"date": func(t time.Time) string { return t.Format(domain.DateLayout) },
	"bucket": func(title string, entries []timetable.Entry) bucketData {
		return bucketData{Title: title, Entries: entries}
	},
}).ParseFS(templateFS, "templates/*.html"))

type bucketData struct {
	Title   string
	Entries []timetable.Entry
}

type timetablePage struct {
	View timetable.View
	Mode string
}

// Show reports whether a section belongs on the page for the selected mode.
// Unknown modes show everything.
func (p timetablePage) Show(section string) bool {
	switch p.Mode {
	case "daily", "weekly", "monthly":
		return p.Mode == section
	default:
		return true
	}
}

// Timetable renders the timetable page. mode selects one bucket ("daily",
// "weekly", "monthly"); anything else renders all of them.
func Timetable(v timetable.View, mode string) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "timetable.html", timetablePage{View: v, Mode: mode}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
