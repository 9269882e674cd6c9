package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Spok95/fitness-tracker/internal/ctxutil"
	"github.com/Spok95/fitness-tracker/internal/fitness"
	"github.com/Spok95/fitness-tracker/internal/models"
)

var ErrNotFound = errors.New("student not found")

// StudentRepo stores students in Postgres or SQLite. Queries use $N placeholders,
// both drivers accept them.
type StudentRepo struct {
	db *sql.DB
}

func NewStudentRepo(database *sql.DB) *StudentRepo {
	return &StudentRepo{db: database}
}

const studentColumns = `id, name, age, height, weight, running_time, sit_ups, push_ups, fitness_score, fitness_level, created_at, updated_at`

func (r *StudentRepo) CreateStudent(ctx context.Context, s models.Student) (int64, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO students (name, age, height, weight, running_time, sit_ups, push_ups, fitness_score, fitness_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		s.Name, s.Age, s.Height, s.Weight, s.RunningTime, s.SitUps, s.PushUps,
		s.Score, string(s.Level), s.CreatedAt.UTC(), s.UpdatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert student: %w", err)
	}
	return id, nil
}

// ListStudents returns all students, newest first.
func (r *StudentRepo) ListStudents(ctx context.Context) ([]models.Student, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+studentColumns+` FROM students ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return out, nil
}

func (r *StudentRepo) GetStudent(ctx context.Context, id int64) (models.Student, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	s, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Student{}, ErrNotFound
	}
	return s, err
}

// DeleteStudent removes the student. A second delete of the same id returns ErrNotFound.
func (r *StudentRepo) DeleteStudent(ctx context.Context, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete student %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *StudentRepo) CountByLevel(ctx context.Context) (map[fitness.Level]int, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT fitness_level, COUNT(*) FROM students GROUP BY fitness_level`)
	if err != nil {
		return nil, fmt.Errorf("count by level: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[fitness.Level]int, len(fitness.Levels))
	for _, l := range fitness.Levels {
		out[l] = 0
	}
	for rows.Next() {
		var (
			level string
			n     int
		)
		if err := rows.Scan(&level, &n); err != nil {
			return nil, err
		}
		out[fitness.Level(level)] = n
	}
	return out, rows.Err()
}

func (r *StudentRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (models.Student, error) {
	var (
		s     models.Student
		level string
	)
	err := row.Scan(&s.ID, &s.Name, &s.Age, &s.Height, &s.Weight, &s.RunningTime, &s.SitUps, &s.PushUps,
		&s.Score, &level, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return models.Student{}, err
	}
	s.Level = fitness.Level(level)
	return s, nil
}
