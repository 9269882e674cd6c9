package models

import (
	"encoding/json"
	"time"

	"github.com/Spok95/fitness-tracker/internal/fitness"
)

// Student is one stored test: the measurement with its computed score and level.
type Student struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	fitness.Measurement
	Score     float64       `db:"fitness_score" json:"fitness_score"`
	Level     fitness.Level `db:"fitness_level" json:"fitness_level"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// BMI is computed on the fly, it is never stored.
func (s Student) BMI() float64 { return fitness.BMI(s.Height, s.Weight) }

// MarshalJSON adds the derived bmi field.
func (s Student) MarshalJSON() ([]byte, error) {
	type plain Student
	return json.Marshal(struct {
		plain
		BMI float64 `json:"bmi"`
	}{plain(s), s.BMI()})
}

func (s Student) Result() fitness.Result {
	return fitness.Result{Score: s.Score, Level: s.Level}
}

// Results projects students onto their stored results for aggregation.
func Results(students []Student) []fitness.Result {
	out := make([]fitness.Result, 0, len(students))
	for _, s := range students {
		out = append(out, s.Result())
	}
	return out
}
