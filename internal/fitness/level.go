package fitness

import (
	"fmt"
	"strings"
)

// Level is the fitness category. Values are the labels used in storage.
type Level string

const (
	Good    Level = "Baik"
	Average Level = "Cukup"
	Poor    Level = "Kurang"
)

// Score thresholds for Classify.
const (
	ThresholdGood    = 80.0
	ThresholdAverage = 60.0
)

// Levels lists all levels from best to worst.
var Levels = []Level{Good, Average, Poor}

func Classify(score float64) Level {
	switch {
	case score >= ThresholdGood:
		return Good
	case score >= ThresholdAverage:
		return Average
	default:
		return Poor
	}
}

func (l Level) Valid() bool {
	switch l {
	case Good, Average, Poor:
		return true
	}
	return false
}

func (l Level) English() string {
	switch l {
	case Good:
		return "Good"
	case Average:
		return "Average"
	case Poor:
		return "Poor"
	}
	return string(l)
}

// ParseLevel accepts both the stored label and the English name.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "baik", "good":
		return Good, nil
	case "cukup", "average":
		return Average, nil
	case "kurang", "poor":
		return Poor, nil
	}
	return "", fmt.Errorf("unknown fitness level %q", s)
}
