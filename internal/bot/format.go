package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Spok95/fitness-tracker/internal/fitness"
	"github.com/Spok95/fitness-tracker/internal/models"
	"github.com/Spok95/fitness-tracker/internal/students"
)

// parseAddArgs splits "Name; age; height; weight; running; sit-ups; push-ups"
// into form values. Commas are allowed as decimal separators, so ';' is the only delimiter.
func parseAddArgs(args string) (map[string]string, error) {
	if strings.TrimSpace(args) == "" {
		return nil, errors.New("nothing to add")
	}
	parts := strings.Split(args, ";")
	if len(parts) != len(students.Fields) {
		return nil, fmt.Errorf("expected %d values separated by ';', got %d", len(students.Fields), len(parts))
	}
	out := make(map[string]string, len(parts))
	for i, f := range students.Fields {
		out[f] = strings.TrimSpace(parts[i])
	}
	return out, nil
}

func formatStudent(s models.Student) string {
	return fmt.Sprintf("#%d %s, %d y.o.\nBMI %s (%scm, %skg) · run %s min · sit-ups %d · push-ups %d\nScore %s/100 · %s %s",
		s.ID, s.Name, s.Age,
		num(s.BMI()), num(s.Height), num(s.Weight), num(s.RunningTime), s.SitUps, s.PushUps,
		num(s.Score), levelIcon(s.Level), s.Level)
}

func formatStats(d students.Dashboard) string {
	st := d.Stats
	if st.Total == 0 {
		return "No students recorded yet."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Students evaluated: %d\n", st.Total)
	for _, l := range fitness.Levels {
		fmt.Fprintf(&sb, "%s %s (%s): %d\n", levelIcon(l), l, l.English(), st.Count(l))
	}
	fmt.Fprintf(&sb, "Average score: %s/100", num(st.AverageScore))
	return sb.String()
}

func formatValidation(ve *students.ValidationError) string {
	var sb strings.Builder
	sb.WriteString("❌ Please fix:")
	for _, f := range students.Fields {
		if msg, ok := ve.Fields[f]; ok {
			sb.WriteString("\n• " + msg)
		}
	}
	return sb.String()
}

func levelIcon(l fitness.Level) string {
	switch l {
	case fitness.Good:
		return "🟢"
	case fitness.Average:
		return "🟡"
	}
	return "🔴"
}

func num(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
