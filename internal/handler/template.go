package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"math"
	"net/http"

	"github.com/dukerupert/habitual/internal/day"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"displayDay": func(s string) string {
		out, err := day.FormatDisplay(s)
		if err != nil {
			return s
		}
		return out
	},
	"percent": func(rate float64) int {
		return int(math.Round(rate * 100))
	},
}

// ParseTemplates loads the embedded page templates.
func ParseTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"))
}

func render(w http.ResponseWriter, logger *slog.Logger, tmpl *template.Template, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("template error", "template", name, "error", err)
	}
}
