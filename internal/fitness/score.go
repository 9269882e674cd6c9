// Package fitness scores a student's physical test.
//
// Four sub-scores (BMI, running, sit-ups, push-ups), each worth 5–25 points,
// are summed into a composite score which is then mapped to a level.
// Everything here is pure and safe to call from any goroutine.
package fitness

// SubScores is the per-rubric breakdown of a composite score.
type SubScores struct {
	BMI     int `json:"bmi"`
	Running int `json:"running"`
	SitUps  int `json:"sit_ups"`
	PushUps int `json:"push_ups"`
}

func (s SubScores) Total() int { return s.BMI + s.Running + s.SitUps + s.PushUps }

// Result is what gets stored next to a measurement.
type Result struct {
	Score     float64   `json:"score"`
	Level     Level     `json:"level"`
	SubScores SubScores `json:"sub_scores"`
}

// Breakdown validates the raw m, then scores each rubric on the rounded values.
func Breakdown(m Measurement) (SubScores, error) {
	if err := m.Validate(); err != nil {
		return SubScores{}, err
	}
	m = m.Normalize()
	return SubScores{
		BMI:     bmiRubric.points(rawBMI(m.Height, m.Weight)),
		Running: runningRubric.points(m.RunningTime),
		SitUps:  sitUpsRubric.points(float64(m.SitUps)),
		PushUps: pushUpsRubric.points(float64(m.PushUps)),
	}, nil
}

// Calculate returns the composite score of m.
func Calculate(m Measurement) (float64, error) {
	s, err := Breakdown(m)
	if err != nil {
		return 0, err
	}
	return float64(s.Total()), nil
}

// Evaluate scores and classifies m in one step.
func Evaluate(m Measurement) (Result, error) {
	s, err := Breakdown(m)
	if err != nil {
		return Result{}, err
	}
	score := float64(s.Total())
	return Result{Score: score, Level: Classify(score), SubScores: s}, nil
}
