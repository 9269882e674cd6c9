// Package students records fitness tests. New records are always scored here,
// callers cannot set score or level except through Import.
package students

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/fitness-tracker/internal/ctxutil"
	"github.com/Spok95/fitness-tracker/internal/db"
	"github.com/Spok95/fitness-tracker/internal/fitness"
	"github.com/Spok95/fitness-tracker/internal/metrics"
	"github.com/Spok95/fitness-tracker/internal/models"
)

// ErrNotFound is returned by Get and Delete for an unknown id.
var ErrNotFound = db.ErrNotFound

// ErrInvalidRecord wraps every Import rejection; nothing is stored in that case.
var ErrInvalidRecord = errors.New("invalid record")

// Store is implemented by db.StudentRepo and db.MemStore.
type Store = db.StudentStore

type Service struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

func NewService(store Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log, now: time.Now}
}

// Dashboard is everything the index page shows.
type Dashboard struct {
	Students []models.Student `json:"students"`
	Stats    fitness.Summary  `json:"stats"`
}

// Create validates in, scores it and stores the record.
// Invalid input yields *ValidationError.
func (s *Service) Create(ctx context.Context, in Input) (models.Student, error) {
	ctx = ctxutil.WithOp(ctx, "students.create")
	in.Name = strings.TrimSpace(in.Name)
	if ve := Validate(in, nil); ve != nil {
		return models.Student{}, ve
	}

	m := in.Measurement.Normalize()
	res, err := fitness.Evaluate(m)
	if err != nil {
		// Validate already ran, so this means the two disagree.
		return models.Student{}, fmt.Errorf("evaluate: %w", err)
	}

	now := s.now().UTC()
	st := models.Student{
		Name:        in.Name,
		Measurement: m,
		Score:       res.Score,
		Level:       res.Level,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.store.CreateStudent(ctx, st)
	if err != nil {
		return models.Student{}, fmt.Errorf("create student: %w", err)
	}
	st.ID = id

	metrics.StudentsCreated.WithLabelValues(string(st.Level)).Inc()
	metrics.Scores.Observe(st.Score)
	s.log.Info("student recorded",
		zap.Int64("id", id),
		zap.Float64("score", st.Score),
		zap.String("level", string(st.Level)),
	)
	return st, nil
}

// Import stores already scored records as they are (restore from an export).
// It is the only path that accepts a caller supplied score and level; both are
// checked for plausibility but not recomputed.
func (s *Service) Import(ctx context.Context, records []models.Student) (int, error) {
	ctx = ctxutil.WithOp(ctx, "students.import")
	for i, r := range records {
		if err := checkImported(r); err != nil {
			return 0, fmt.Errorf("%w %d (%q): %w", ErrInvalidRecord, i+1, r.Name, err)
		}
	}

	n := 0
	for _, r := range records {
		r.ID = 0
		r.Name = strings.TrimSpace(r.Name)
		r.Measurement = r.Measurement.Normalize()
		if r.CreatedAt.IsZero() {
			r.CreatedAt = s.now()
		}
		r.CreatedAt = r.CreatedAt.UTC()
		r.UpdatedAt = s.now().UTC()
		if _, err := s.store.CreateStudent(ctx, r); err != nil {
			return n, fmt.Errorf("import %q: %w", r.Name, err)
		}
		n++
	}
	s.log.Info("students imported", zap.Int("count", n))
	return n, nil
}

func checkImported(r models.Student) error {
	if ve := Validate(Input{Name: r.Name, Measurement: r.Measurement}, nil); ve != nil {
		return ve
	}
	if !r.Level.Valid() {
		return fmt.Errorf("unknown fitness level %q", r.Level)
	}
	if r.Score < 0 || r.Score > 100 {
		return fmt.Errorf("score %.2f out of [0,100]", r.Score)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]models.Student, error) {
	return s.store.ListStudents(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (models.Student, error) {
	st, err := s.store.GetStudent(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Student{}, ErrNotFound
		}
		return models.Student{}, fmt.Errorf("get student %d: %w", id, err)
	}
	return st, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteStudent(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete student %d: %w", id, err)
	}
	metrics.StudentsDeleted.Inc()
	s.log.Info("student deleted", zap.Int64("id", id))
	return nil
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	list, err := s.store.ListStudents(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("dashboard: %w", err)
	}
	return Dashboard{Students: list, Stats: fitness.Summarize(models.Results(list))}, nil
}

// Recent returns at most n newest students.
func (s *Service) Recent(ctx context.Context, n int) ([]models.Student, error) {
	list, err := s.store.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) > n {
		list = list[:n]
	}
	return list, nil
}

func (s *Service) Ping(ctx context.Context) error { return s.store.Ping(ctx) }
