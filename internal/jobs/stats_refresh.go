package jobs

import (
	"context"

	"github.com/Spok95/fitness-tracker/internal/fitness"
	"github.com/Spok95/fitness-tracker/internal/metrics"
)

// LevelCounter is implemented by the student stores.
type LevelCounter interface {
	CountByLevel(ctx context.Context) (map[fitness.Level]int, error)
}

// StatsRefresh keeps the fitness_students{level} gauge in sync with storage.
func StatsRefresh(store LevelCounter) Job {
	return func(ctx context.Context) error {
		counts, err := store.CountByLevel(ctx)
		if err != nil {
			return err
		}
		for _, l := range fitness.Levels {
			metrics.StudentsByLevel.WithLabelValues(string(l)).Set(float64(counts[l]))
		}
		return nil
	}
}
