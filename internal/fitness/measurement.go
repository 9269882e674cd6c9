package fitness

import (
	"errors"
	"math"
	"strings"
)

// Допустимые диапазоны полей замера.
const (
	MinAge, MaxAge                 = 10, 30
	MinHeight, MaxHeight           = 100.0, 250.0
	MinWeight, MaxWeight           = 30.0, 150.0
	MinRunningTime, MaxRunningTime = 5.0, 30.0
	MinReps, MaxReps               = 0, 100
)

// Measurement is one student's raw test results.
type Measurement struct {
	Age         int     `json:"age"`
	Height      float64 `json:"height"`       // cm
	Weight      float64 `json:"weight"`       // kg
	RunningTime float64 `json:"running_time"` // minutes, lower is better
	SitUps      int     `json:"sit_ups"`
	PushUps     int     `json:"push_ups"`
}

// ErrInvalidMeasurement is matched by every *InvalidMeasurementError.
var ErrInvalidMeasurement = errors.New("invalid measurement")

// FieldError describes one out-of-range field.
type FieldError struct {
	Field   string
	Message string
}

type InvalidMeasurementError struct {
	Fields []FieldError
}

func (e *InvalidMeasurementError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid measurement: " + strings.Join(parts, "; ")
}

func (e *InvalidMeasurementError) Is(target error) bool { return target == ErrInvalidMeasurement }

// Normalize rounds the decimal fields to two places, the precision they are stored with.
func (m Measurement) Normalize() Measurement {
	m.Height = Round2(m.Height)
	m.Weight = Round2(m.Weight)
	m.RunningTime = Round2(m.RunningTime)
	return m
}

// Validate reports every field outside its domain. Values are never clamped.
func (m Measurement) Validate() error {
	var fe []FieldError
	add := func(field, msg string) { fe = append(fe, FieldError{Field: field, Message: msg}) }

	switch {
	case m.Age < MinAge:
		add("age", "Age must be at least 10 years old.")
	case m.Age > MaxAge:
		add("age", "Age must not exceed 30 years old.")
	}
	switch {
	case !inRange(m.Height, MinHeight):
		add("height", "Height must be at least 100 cm.")
	case m.Height > MaxHeight:
		add("height", "Height must not exceed 250 cm.")
	}
	switch {
	case !inRange(m.Weight, MinWeight):
		add("weight", "Weight must be at least 30 kg.")
	case m.Weight > MaxWeight:
		add("weight", "Weight must not exceed 150 kg.")
	}
	switch {
	case !inRange(m.RunningTime, MinRunningTime):
		add("running_time", "Running time must be at least 5 minutes.")
	case m.RunningTime > MaxRunningTime:
		add("running_time", "Running time must not exceed 30 minutes.")
	}
	switch {
	case m.SitUps < MinReps:
		add("sit_ups", "Sit-ups count cannot be negative.")
	case m.SitUps > MaxReps:
		add("sit_ups", "Sit-ups count must not exceed 100.")
	}
	switch {
	case m.PushUps < MinReps:
		add("push_ups", "Push-ups count cannot be negative.")
	case m.PushUps > MaxReps:
		add("push_ups", "Push-ups count must not exceed 100.")
	}

	if len(fe) > 0 {
		return &InvalidMeasurementError{Fields: fe}
	}
	return nil
}

// inRange is false for NaN as well as for values below lo.
func inRange(v, lo float64) bool {
	return !math.IsNaN(v) && v >= lo
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
