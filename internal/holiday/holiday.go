package holiday

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Level is the jurisdiction scope of a holiday
type Level string

const (
	LevelNational  Level = "national"
	LevelState     Level = "state"
	LevelMunicipal Level = "municipal"
	LevelOptional  Level = "optional"
)

// Priority returns the override priority of the level; higher wins
func (l Level) Priority() int {
	switch l {
	case LevelNational:
		return 4
	case LevelState:
		return 3
	case LevelMunicipal:
		return 2
	case LevelOptional:
		return 1
	}
	return 0
}

// Label returns a display label for the level
func (l Level) Label() string {
	switch l {
	case LevelNational:
		return "National"
	case LevelState:
		return "State"
	case LevelMunicipal:
		return "Municipal"
	case LevelOptional:
		return "Optional"
	}
	return "Other"
}

// ParseLevel parses a level name; Portuguese names are accepted too
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "national", "nacional":
		return LevelNational, nil
	case "state", "estadual":
		return LevelState, nil
	case "municipal":
		return LevelMunicipal, nil
	case "optional", "facultativo":
		return LevelOptional, nil
	}
	return "", fmt.Errorf("unknown holiday level: %q", s)
}

// Holiday represents a single holiday record
type Holiday struct {
	ID    string    `json:"id,omitempty"`
	Date  time.Time `json:"date"`
	Name  string    `json:"name"`
	Level Level     `json:"level"`

	// Structured jurisdiction fields. StateCode is the two-letter UF,
	// IBGECode the municipality code.
	StateCode string `json:"state_code,omitempty"`
	IBGECode  string `json:"ibge_code,omitempty"`
	City      string `json:"city,omitempty"`
}

// Location identifies where a student or company is
type Location struct {
	City     string `json:"city" yaml:"city"`
	State    string `json:"state" yaml:"state"`
	IBGECode string `json:"ibge_code,omitempty" yaml:"ibge_code"`
}

// IsZero reports whether no city was set
func (l Location) IsZero() bool {
	return strings.TrimSpace(l.City) == "" && strings.TrimSpace(l.IBGECode) == ""
}

// String returns "City/UF"
func (l Location) String() string {
	return fmt.Sprintf("%s/%s", l.City, l.State)
}

// Provider supplies holiday records for a period and region
type Provider interface {
	// Holidays returns every record dated within [from, to]. Implementations
	// may narrow by region but are not required to; applicability is
	// decided by Applicable.
	Holidays(ctx context.Context, from, to time.Time, region Location) ([]Holiday, error)
}
