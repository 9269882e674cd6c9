package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Spok95/fitness-tracker/internal/fitness"
	"github.com/Spok95/fitness-tracker/internal/models"
)

// StudentStore is what StudentRepo and MemStore have in common.
type StudentStore interface {
	CreateStudent(ctx context.Context, s models.Student) (int64, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
	GetStudent(ctx context.Context, id int64) (models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
	CountByLevel(ctx context.Context) (map[fitness.Level]int, error)
	Ping(ctx context.Context) error
}

var (
	_ StudentStore = (*StudentRepo)(nil)
	_ StudentStore = (*MemStore)(nil)
)

// OpenStore returns the store for driver and a close func.
// SQL drivers are opened and migrated; memory gets a fresh MemStore.
func OpenStore(ctx context.Context, driver Driver, dsn string, log *zap.Logger) (StudentStore, func(), error) {
	if driver == DriverMemory {
		return NewMemStore(), func() {}, nil
	}
	database, err := Open(ctx, driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := Migrate(ctx, database, driver, log); err != nil {
		_ = database.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return NewStudentRepo(database), func() { _ = database.Close() }, nil
}
