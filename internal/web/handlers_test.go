package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/fitness-tracker/internal/db"
	"github.com/Spok95/fitness-tracker/internal/export"
	"github.com/Spok95/fitness-tracker/internal/fitness"
	"github.com/Spok95/fitness-tracker/internal/models"
	"github.com/Spok95/fitness-tracker/internal/students"
)

func newTestServer(t *testing.T) (http.Handler, *students.Service) {
	t.Helper()
	svc := students.NewService(db.NewMemStore(), nil)
	h := NewRouter(svc, Options{Location: time.UTC, CORSOrigins: []string{"http://localhost:5173"}})
	return h, svc
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func validForm() url.Values {
	return url.Values{
		"name": {"John Doe"}, "age": {"18"}, "height": {"175"}, "weight": {"70"},
		"running_time": {"8.0"}, "sit_ups": {"45"}, "push_ups": {"30"},
	}
}

func postForm(path string, v url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(v.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postJSON(path string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreate_FormRedirects(t *testing.T) {
	h, svc := newTestServer(t)

	rec := do(h, postForm("/students", validForm()))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?ok=created", rec.Header().Get("Location"))

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 95.0, list[0].Score)
	assert.Equal(t, fitness.Good, list[0].Level)

	page := do(h, httptest.NewRequest(http.MethodGet, "/?ok=created", nil))
	require.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	assert.Contains(t, body, "Student fitness data recorded successfully.")
	assert.Contains(t, body, "John Doe")
	assert.Contains(t, body, "22.86")
}

func TestCreate_FormInvalidRerenders(t *testing.T) {
	h, svc := newTestServer(t)
	v := url.Values{
		"name": {""}, "age": {"5"}, "height": {"50"}, "weight": {"20"},
		"running_time": {"2"}, "sit_ups": {"-5"}, "push_ups": {"150"},
	}
	rec := do(h, postForm("/students", v))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Student name is required.")
	assert.Contains(t, body, "Age must be at least 10 years old.")
	assert.Contains(t, body, "Push-ups count must not exceed 100.")
	assert.Contains(t, body, `value="150"`, "submitted values are kept")

	list, _ := svc.List(context.Background())
	assert.Empty(t, list)
}

func TestCreate_JSON(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(h, postJSON("/api/students", map[string]any{
		"name": "Siti Aminah", "age": 17, "height": 160, "weight": 55,
		"running_time": 9.2, "sit_ups": 35, "push_ups": 20,
	}))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 75.0, got["fitness_score"])
	assert.Equal(t, "Cukup", got["fitness_level"])
	assert.Equal(t, 21.48, got["bmi"])
	assert.Equal(t, 9.2, got["running_time"])
}

func TestCreate_JSONValidationErrors(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(h, postJSON("/students", map[string]any{"name": "X", "age": "abc", "height": 300}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var got struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "The age field must be an integer.", got.Errors["age"])
	assert.Equal(t, "Height must not exceed 250 cm.", got.Errors["height"])
	assert.Equal(t, "Weight is required.", got.Errors["weight"])
	assert.NotContains(t, got.Errors, "name")
}

func TestCreate_BadJSON(t *testing.T) {
	h, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/students", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, do(h, req).Code)
}

func TestGetStudent(t *testing.T) {
	h, svc := newTestServer(t)
	st, err := svc.Create(context.Background(), students.Input{
		Name:        "Siti",
		Measurement: fitness.Measurement{Age: 18, Height: 175, Weight: 70, RunningTime: 8.5, SitUps: 40, PushUps: 25},
	})
	require.NoError(t, err)

	rec := do(h, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/students/%d", st.ID), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Siti", got["name"])
	assert.EqualValues(t, 85, got["fitness_score"])
	assert.Contains(t, got, "bmi")

	assert.Equal(t, http.StatusNotFound, do(h, httptest.NewRequest(http.MethodGet, "/api/students/999", nil)).Code)
	assert.Equal(t, http.StatusNotFound, do(h, httptest.NewRequest(http.MethodGet, "/api/students/abc", nil)).Code)
}

func TestDelete(t *testing.T) {
	h, svc := newTestServer(t)
	st, err := svc.Create(context.Background(), students.Input{
		Name:        "Budi",
		Measurement: fitness.Measurement{Age: 19, Height: 180, Weight: 85, RunningTime: 12, SitUps: 25, PushUps: 15},
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/students/%d", st.ID)
	assert.Equal(t, http.StatusNoContent, do(h, httptest.NewRequest(http.MethodDelete, path, nil)).Code)
	assert.Equal(t, http.StatusNotFound, do(h, httptest.NewRequest(http.MethodDelete, path, nil)).Code)
	assert.Equal(t, http.StatusNotFound, do(h, httptest.NewRequest(http.MethodDelete, "/students/abc", nil)).Code)
}

func TestDelete_FormRedirects(t *testing.T) {
	h, svc := newTestServer(t)
	st, err := svc.Create(context.Background(), students.Input{
		Name:        "Budi",
		Measurement: fitness.Measurement{Age: 19, Height: 180, Weight: 85, RunningTime: 12, SitUps: 25, PushUps: 15},
	})
	require.NoError(t, err)

	rec := do(h, postForm(fmt.Sprintf("/students/%d/delete", st.ID), nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?ok=deleted", rec.Header().Get("Location"))

	rec = do(h, postForm(fmt.Sprintf("/students/%d/delete", st.ID), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStats(t *testing.T) {
	h, svc := newTestServer(t)
	_, err := svc.Import(context.Background(), []models.Student{
		record("A", 85, fitness.Good), record("B", 90, fitness.Good),
		record("C", 65, fitness.Average), record("D", 45, fitness.Poor),
	})
	require.NoError(t, err)

	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":4,"baik":2,"cukup":1,"kurang":1,"average_score":71.25}`, rec.Body.String())

	rec = do(h, httptest.NewRequest(http.MethodGet, "/api/students", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 4)
	assert.Equal(t, "D", list[0].Name)
}

func TestStats_Empty(t *testing.T) {
	h, _ := newTestServer(t)
	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.JSONEq(t, `{"total":0,"baik":0,"cukup":0,"kurang":0,"average_score":0}`, rec.Body.String())

	page := do(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, page.Body.String(), "No students recorded yet")
}

func TestExportImportRoundTrip(t *testing.T) {
	h, svc := newTestServer(t)
	for _, f := range []url.Values{validForm(), func() url.Values {
		v := validForm()
		v.Set("name", "Slow Runner")
		v.Set("running_time", "20")
		return v
	}()} {
		require.Equal(t, http.StatusSeeOther, do(h, postForm("/students", f)).Code)
	}

	rec := do(h, httptest.NewRequest(http.MethodGet, "/students/export.xlsx", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "students_")
	exported, err := export.ReadStudents(bytes.NewReader(rec.Body.Bytes()), time.UTC)
	require.NoError(t, err)
	require.Len(t, exported, 2)

	// restore into a fresh instance
	h2, svc2 := newTestServer(t)
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "students.xlsx")
	require.NoError(t, err)
	_, _ = part.Write(rec.Body.Bytes())
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/students/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	imp := do(h2, req)
	require.Equal(t, http.StatusOK, imp.Code, imp.Body.String())
	assert.JSONEq(t, `{"imported":2}`, imp.Body.String())

	orig, _ := svc.Dashboard(context.Background())
	restored, _ := svc2.Dashboard(context.Background())
	assert.Equal(t, orig.Stats, restored.Stats)
}

func TestImport_RequiresFile(t *testing.T) {
	h, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/students/import", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	assert.Equal(t, http.StatusBadRequest, do(h, req).Code)
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(h, httptest.NewRequest(http.MethodGet, "/health-check", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got["status"])
	_, err := time.Parse(time.RFC3339, got["timestamp"])
	assert.NoError(t, err)

	rec = do(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = do(h, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fitness_http_requests_total")
}

func TestCORS_OnlyOnAPI(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := do(h, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = do(h, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func record(name string, score float64, level fitness.Level) models.Student {
	return models.Student{
		Name:        name,
		Measurement: fitness.Measurement{Age: 18, Height: 175, Weight: 70, RunningTime: 8.5, SitUps: 40, PushUps: 25},
		Score:       score,
		Level:       level,
	}
}
