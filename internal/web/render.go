package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/fitness-tracker/internal/ctxutil"
	"github.com/Spok95/fitness-tracker/internal/fitness"
	"github.com/Spok95/fitness-tracker/internal/metrics"
	"github.com/Spok95/fitness-tracker/internal/observability"
	"github.com/Spok95/fitness-tracker/internal/students"
)

var flashes = map[string]string{
	"created":  "Student fitness data recorded successfully.",
	"deleted":  "Student record deleted successfully.",
	"imported": "Students imported successfully.",
}

type pageData struct {
	students.Dashboard
	Errors map[string]string
	Old    map[string]string
	Flash  string
	Levels []fitness.Level
}

func parseTemplates(loc *time.Location) *template.Template {
	funcs := template.FuncMap{
		"num": func(v float64) string {
			return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
		},
		"when": func(t time.Time) string { return t.In(loc).Format("02 Jan 2006 15:04") },
		"levelClass": func(l fitness.Level) string {
			switch l {
			case fitness.Good:
				return "good"
			case fitness.Average:
				return "average"
			}
			return "poor"
		},
		"count": func(s fitness.Summary, l fitness.Level) int { return s.Count(l) },
	}
	return template.Must(template.New("index.html").Funcs(funcs).ParseFS(templatesFS, "templates/index.html"))
}

func (s *Server) renderIndex(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	data.Levels = fitness.Levels
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		s.serverError(w, r, fmt.Errorf("render index: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if wantsJSON(r) {
		writeJSON(w, status, map[string]string{"error": msg})
		return
	}
	http.Error(w, msg, status)
}

// serverError отвечает 500 и отправляет ошибку в лог и Sentry.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	metrics.HandlerErrors.Inc()
	s.log.Error("handler failed", zap.String("path", r.URL.Path), zap.Error(err))
	observability.CaptureErrOp(ctxutil.WithOp(r.Context(), r.Method+" "+r.URL.Path), err)
	writeError(w, r, http.StatusInternalServerError, "internal error")
}

func isJSONBody(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// wantsJSON: API-маршруты, JSON-тело или явный Accept.
func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") || isJSONBody(r) ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}
