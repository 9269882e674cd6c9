package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/fitness-tracker/internal/fitness"
	"github.com/Spok95/fitness-tracker/internal/models"
)

const (
	StudentsSheet = "Students"
	createdLayout = "2006-01-02 15:04"
)

// StudentsHeader: порядок колонок выгрузки. ReadStudents ожидает тот же порядок.
var StudentsHeader = []string{"ID", "Name", "Age", "Height", "Weight", "Running", "Sit-ups", "Push-ups", "BMI", "Score", "Level", "Created"}

var ErrBadLayout = errors.New("unexpected workbook layout")

// StudentsWorkbook builds a one-sheet workbook. Created is written in loc.
func StudentsWorkbook(students []models.Student, loc *time.Location) (*excelize.File, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", StudentsSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(StudentsSheet, "A1", &StudentsHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("header: %w", err)
	}
	for i, s := range students {
		row := []interface{}{
			s.ID,
			s.Name,
			s.Age,
			s.Height,
			s.Weight,
			s.RunningTime,
			s.SitUps,
			s.PushUps,
			s.BMI(),
			s.Score,
			string(s.Level),
			s.CreatedAt.In(loc).Format(createdLayout),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(StudentsSheet, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	if err := ApplyDefaultExcelFormatting(f, StudentsSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("format: %w", err)
	}
	return f, nil
}

// WriteStudents streams the workbook to w.
func WriteStudents(w io.Writer, students []models.Student, loc *time.Location) error {
	f, err := StudentsWorkbook(students, loc)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	_, err = f.WriteTo(w)
	return err
}

// ReadStudents parses a workbook produced by StudentsWorkbook. ID and BMI are ignored,
// Created is read in loc. Rows with an empty name are skipped.
func ReadStudents(r io.Reader, loc *time.Location) ([]models.Student, error) {
	if loc == nil {
		loc = time.UTC
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(StudentsSheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrBadLayout, StudentsSheet, err)
	}
	if len(rows) == 0 || !headerMatches(rows[0]) {
		return nil, fmt.Errorf("%w: header must be %s", ErrBadLayout, strings.Join(StudentsHeader, ", "))
	}

	out := make([]models.Student, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		cell := func(c int) string {
			if c < len(row) {
				return strings.TrimSpace(row[c])
			}
			return ""
		}
		if cell(1) == "" {
			continue
		}
		st, err := parseRow(cell, loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		out = append(out, st)
	}
	return out, nil
}

func parseRow(cell func(int) string, loc *time.Location) (models.Student, error) {
	var (
		st  models.Student
		err error
	)
	st.Name = cell(1)

	ints := []struct {
		col int
		dst *int
	}{{2, &st.Age}, {6, &st.SitUps}, {7, &st.PushUps}}
	for _, c := range ints {
		if *c.dst, err = strconv.Atoi(cell(c.col)); err != nil {
			return st, fmt.Errorf("%s: %w", StudentsHeader[c.col], err)
		}
	}
	floats := []struct {
		col int
		dst *float64
	}{{3, &st.Height}, {4, &st.Weight}, {5, &st.RunningTime}, {9, &st.Score}}
	for _, c := range floats {
		if *c.dst, err = strconv.ParseFloat(cell(c.col), 64); err != nil {
			return st, fmt.Errorf("%s: %w", StudentsHeader[c.col], err)
		}
	}
	if st.Level, err = fitness.ParseLevel(cell(10)); err != nil {
		return st, err
	}
	if raw := cell(11); raw != "" {
		if st.CreatedAt, err = time.ParseInLocation(createdLayout, raw, loc); err != nil {
			return st, fmt.Errorf("Created: %w", err)
		}
	}
	return st, nil
}

func headerMatches(row []string) bool {
	if len(row) < len(StudentsHeader) {
		return false
	}
	for i, h := range StudentsHeader {
		if !strings.EqualFold(strings.TrimSpace(row[i]), h) {
			return false
		}
	}
	return true
}
