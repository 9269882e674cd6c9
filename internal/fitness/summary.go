package fitness

// Summary holds the dashboard counters.
type Summary struct {
	Total        int     `json:"total"`
	Good         int     `json:"baik"`
	Average      int     `json:"cukup"`
	Poor         int     `json:"kurang"`
	AverageScore float64 `json:"average_score"`
}

// Summarize counts results per level and averages their scores.
// An empty input gives a zero average.
func Summarize(results []Result) Summary {
	var s Summary
	var sum float64
	for _, r := range results {
		s.Total++
		sum += r.Score
		switch r.Level {
		case Good:
			s.Good++
		case Average:
			s.Average++
		case Poor:
			s.Poor++
		}
	}
	if s.Total > 0 {
		s.AverageScore = sum / float64(s.Total)
	}
	return s
}

// Count returns the number of results at level l.
func (s Summary) Count(l Level) int {
	switch l {
	case Good:
		return s.Good
	case Average:
		return s.Average
	case Poor:
		return s.Poor
	}
	return 0
}
