package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Spok95/fitness-tracker/internal/ctxutil"
	"github.com/Spok95/fitness-tracker/internal/export"
	"github.com/Spok95/fitness-tracker/internal/metrics"
	"github.com/Spok95/fitness-tracker/internal/students"
)

//go:embed templates/*.html
var templatesFS embed.FS

const maxImportSize = 10 << 20

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.Dashboard(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.renderIndex(w, r, http.StatusOK, pageData{Dashboard: d, Flash: flashes[r.URL.Query().Get("ok")]})
}

func (s *Server) createStudent(w http.ResponseWriter, r *http.Request) {
	raw, err := readValues(w, r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	in, ve := students.ParseForm(raw)
	if ve = students.Validate(in, ve); ve != nil {
		s.rejectCreate(w, r, raw, ve)
		return
	}

	st, err := s.svc.Create(r.Context(), in)
	var vErr *students.ValidationError
	switch {
	case errors.As(err, &vErr):
		s.rejectCreate(w, r, raw, vErr)
		return
	case err != nil:
		s.serverError(w, r, err)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusCreated, st)
		return
	}
	http.Redirect(w, r, "/?ok=created", http.StatusSeeOther)
}

func (s *Server) rejectCreate(w http.ResponseWriter, r *http.Request, raw map[string]string, ve *students.ValidationError) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusUnprocessableEntity, ve)
		return
	}
	d, err := s.svc.Dashboard(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.renderIndex(w, r, http.StatusUnprocessableEntity, pageData{Dashboard: d, Errors: ve.Fields, Old: raw})
}

// readValues collects the submitted fields as strings, from a JSON object or a form.
func readValues(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	out := make(map[string]string, len(students.Fields))
	if isJSONBody(r) {
		var body map[string]any
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			return nil, fmt.Errorf("bad json: %w", err)
		}
		for _, f := range students.Fields {
			switch v := body[f].(type) {
			case nil:
			case string:
				out[f] = v
			case json.Number:
				out[f] = v.String()
			default:
				out[f] = fmt.Sprint(v)
			}
		}
		return out, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("bad form: %w", err)
	}
	for _, f := range students.Fields {
		out[f] = r.PostForm.Get(f)
	}
	return out, nil
}

// deleteStudent serves both the HTML form (POST .../delete) and DELETE.
func (s *Server) deleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusNotFound, "student not found")
		return
	}
	if err := s.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, students.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "student not found")
			return
		}
		s.serverError(w, r, err)
		return
	}
	if r.Method == http.MethodDelete {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/?ok=deleted", http.StatusSeeOther)
}

func (s *Server) getStudent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusNotFound, "student not found")
		return
	}
	st, err := s.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, students.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "student not found")
			return
		}
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) listStudents(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.Dashboard(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d.Stats)
}

func (s *Server) exportStudents(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	f, err := export.StudentsWorkbook(list, s.loc)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	defer func() { _ = f.Close() }()

	name := export.BuildExportFilename(s.now().In(s.loc))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := f.WriteTo(w); err != nil {
		s.log.Warn("export write failed", zap.Error(err))
	}
}

// importStudents restores records from an exported workbook, keeping their scores.
func (s *Server) importStudents(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "file is required")
		return
	}
	defer func() { _ = file.Close() }()

	records, err := export.ReadStudents(file, s.loc)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	n, err := s.svc.Import(r.Context(), records)
	if err != nil {
		s.log.Warn("import rejected", zap.Int("stored", n), zap.Error(err))
		if errors.Is(err, students.ErrInvalidRecord) {
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.serverError(w, r, err)
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]int{"imported": n})
		return
	}
	http.Redirect(w, r, "/?ok=imported", http.StatusSeeOther)
}

func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := ctxutil.WithTimeout(r.Context(), 800*time.Millisecond)
	defer cancel()
	t0 := time.Now()
	if err := s.svc.Ping(ctx); err != nil {
		http.Error(w, "db not ok: "+err.Error(), http.StatusServiceUnavailable)
		return
	}
	metrics.ObserveDBPing(time.Since(t0))
	_, _ = w.Write([]byte("ok"))
}
