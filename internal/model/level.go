package model

import (
	"database/sql/driver"
	"fmt"
)

// Level is a JLPT proficiency level, N5 (easiest) through N1 (hardest).
type Level string

const (
	LevelN5 Level = "N5"
	LevelN4 Level = "N4"
	LevelN3 Level = "N3"
	LevelN2 Level = "N2"
	LevelN1 Level = "N1"
)

// AllLevels returns the five levels ordered easiest to hardest.
func AllLevels() []Level {
	return []Level{LevelN5, LevelN4, LevelN3, LevelN2, LevelN1}
}

func (l Level) String() string { return string(l) }

func (l Level) Valid() bool {
	switch l {
	case LevelN5, LevelN4, LevelN3, LevelN2, LevelN1:
		return true
	default:
		return false
	}
}

// ParseLevel validates a level string coming from a request path or body.
func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if !l.Valid() {
		return "", fmt.Errorf("unknown JLPT level %q", s)
	}
	return l, nil
}

func (l *Level) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*l = ""
		return nil
	case string:
		*l = Level(v)
	case []byte:
		*l = Level(string(v))
	default:
		return fmt.Errorf("unsupported type for Level: %T", value)
	}
	if !l.Valid() {
		return fmt.Errorf("invalid Level: %q", *l)
	}
	return nil
}

func (l Level) Value() (driver.Value, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid Level: %q", l)
	}
	return string(l), nil
}
