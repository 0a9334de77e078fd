// Package roster holds student records and loads them from YAML.
package roster

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/username/apprentice-calendar/internal/holiday"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

// ErrStudentNotFound is returned by Roster.Find for an unknown id
var ErrStudentNotFound = errors.New("student not found")

// Company is the employer a student is assigned to
type Company struct {
	ID       string           `json:"id" yaml:"id"`
	Name     string           `json:"name" yaml:"name"`
	Location holiday.Location `json:"location" yaml:"location"`
}

// Student is the record the generator builds a calendar for
type Student struct {
	ID            string           `json:"id" validate:"required"`
	Name          string           `json:"name" validate:"required"`
	CohortID      string           `json:"cohort_id" validate:"required"`
	TheoryWeekday time.Weekday     `json:"theory_weekday"`
	Site          holiday.Location `json:"site"`
	Company       *Company         `json:"company,omitempty"`
}

// HolidayLocation returns where the student's holidays are observed: the
// company's city when the student is assigned to one, the site otherwise.
func (s Student) HolidayLocation() holiday.Location {
	if s.Company != nil && !s.Company.Location.IsZero() {
		return s.Company.Location
	}
	return s.Site
}

type fileStudent struct {
	ID            string           `yaml:"id"`
	Name          string           `yaml:"name"`
	CohortID      string           `yaml:"cohort"`
	TheoryWeekday string           `yaml:"theory_weekday"`
	Site          holiday.Location `yaml:"site"`
	Company       *Company         `yaml:"company"`
}

type fileRoster struct {
	Students []fileStudent `yaml:"students"`
}

// Roster is an in-memory set of students keyed by id
type Roster struct {
	students map[string]Student
}

var validate = validator.New()

// Validate checks a student record's required fields
func (s Student) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("student %q: %w", s.ID, err)
	}
	return nil
}

// Load reads a roster YAML file. Invalid entries are logged and skipped.
func Load(path string, logger *zap.Logger) (*Roster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read students file: %w", err)
	}

	var doc fileRoster
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse students file: %w", err)
	}

	r := &Roster{students: make(map[string]Student, len(doc.Students))}
	for _, fs := range doc.Students {
		weekday, err := dateutil.ParseWeekday(fs.TheoryWeekday)
		if err != nil {
			logger.Warn("Skipping student with invalid theory weekday",
				zap.String("student", fs.ID),
				zap.Error(err))
			continue
		}

		s := Student{
			ID:            fs.ID,
			Name:          fs.Name,
			CohortID:      fs.CohortID,
			TheoryWeekday: weekday,
			Site:          fs.Site,
			Company:       fs.Company,
		}
		if err := s.Validate(); err != nil {
			logger.Warn("Skipping invalid student", zap.Error(err))
			continue
		}
		if _, dup := r.students[s.ID]; dup {
			logger.Warn("Duplicate student id, keeping first", zap.String("student", s.ID))
			continue
		}

		r.students[s.ID] = s
	}

	logger.Info("Students loaded",
		zap.String("file", path),
		zap.Int("students", len(r.students)))

	return r, nil
}

// Find returns the student with the given id
func (r *Roster) Find(id string) (Student, error) {
	s, ok := r.students[id]
	if !ok {
		return Student{}, fmt.Errorf("%w: %s", ErrStudentNotFound, id)
	}
	return s, nil
}

// All returns every student sorted by id
func (r *Roster) All() []Student {
	result := make([]Student, 0, len(r.students))
	for _, s := range r.students {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}
