package students

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Spok95/fitness-tracker/internal/fitness"
)

const MaxNameLen = 255

// Fields in form order.
var Fields = []string{"name", "age", "height", "weight", "running_time", "sit_ups", "push_ups"}

// ValidationError maps a form field to a message shown next to it.
type ValidationError struct {
	Fields map[string]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) orNil() *ValidationError {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Input is a parsed but not yet validated submission.
type Input struct {
	Name        string              `json:"name"`
	Measurement fitness.Measurement `json:"measurement"`
}

var requiredMsg = map[string]string{
	"name":         "Student name is required.",
	"age":          "Age is required.",
	"height":       "Height is required.",
	"weight":       "Weight is required.",
	"running_time": "Running time is required.",
	"sit_ups":      "Number of sit-ups is required.",
	"push_ups":     "Number of push-ups is required.",
}

var label = map[string]string{
	"age":          "age",
	"height":       "height",
	"weight":       "weight",
	"running_time": "running time",
	"sit_ups":      "sit-ups",
	"push_ups":     "push-ups",
}

// ParseForm converts raw form values. Missing and malformed fields are reported,
// range checks are left to Validate.
func ParseForm(values map[string]string) (Input, *ValidationError) {
	ve := &ValidationError{}
	in := Input{Name: strings.TrimSpace(values["name"])}

	intField := func(field string, dst *int) {
		raw := strings.TrimSpace(values[field])
		if raw == "" {
			ve.add(field, requiredMsg[field])
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			ve.add(field, "The "+label[field]+" field must be an integer.")
			return
		}
		*dst = n
	}
	numField := func(field string, dst *float64) {
		raw := strings.TrimSpace(strings.ReplaceAll(values[field], ",", "."))
		if raw == "" {
			ve.add(field, requiredMsg[field])
			return
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			ve.add(field, "The "+label[field]+" field must be a number.")
			return
		}
		*dst = f
	}

	intField("age", &in.Measurement.Age)
	numField("height", &in.Measurement.Height)
	numField("weight", &in.Measurement.Weight)
	numField("running_time", &in.Measurement.RunningTime)
	intField("sit_ups", &in.Measurement.SitUps)
	intField("push_ups", &in.Measurement.PushUps)

	return in, ve.orNil()
}

// Validate checks the name rules and the measurement domain.
// Errors already present in prior are kept, they win over range messages.
func Validate(in Input, prior *ValidationError) *ValidationError {
	ve := prior
	if ve == nil {
		ve = &ValidationError{}
	}
	validateName(in.Name, ve)

	var ime *fitness.InvalidMeasurementError
	if err := in.Measurement.Validate(); errors.As(err, &ime) {
		for _, f := range ime.Fields {
			ve.add(f.Field, f.Message)
		}
	}
	return ve.orNil()
}

func validateName(name string, ve *ValidationError) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		ve.add("name", requiredMsg["name"])
	case utf8.RuneCountInString(name) > MaxNameLen:
		ve.add("name", "Student name must not exceed 255 characters.")
	}
}
