package model

import (
	"database/sql/driver"
	"fmt"
)

// SectionType identifies one of the three fixed exam sections. A complete
// test always has exactly these three; their identity is used as a key on
// answers, submissions and scores.
type SectionType string

const (
	SectionVocabulary     SectionType = "vocabulary"
	SectionGrammarReading SectionType = "grammar_reading"
	SectionListening      SectionType = "listening"
)

// AllSectionTypes returns the three sections in their canonical order.
func AllSectionTypes() []SectionType {
	return []SectionType{SectionVocabulary, SectionGrammarReading, SectionListening}
}

func (s SectionType) String() string { return string(s) }

func (s SectionType) Valid() bool {
	switch s {
	case SectionVocabulary, SectionGrammarReading, SectionListening:
		return true
	default:
		return false
	}
}

// ParseSectionType validates a section string from a request path.
func ParseSectionType(raw string) (SectionType, error) {
	s := SectionType(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown section %q", raw)
	}
	return s, nil
}

func (s *SectionType) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*s = ""
		return nil
	case string:
		*s = SectionType(v)
	case []byte:
		*s = SectionType(string(v))
	default:
		return fmt.Errorf("unsupported type for SectionType: %T", value)
	}
	if !s.Valid() {
		return fmt.Errorf("invalid SectionType: %q", *s)
	}
	return nil
}

func (s SectionType) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid SectionType: %q", s)
	}
	return string(s), nil
}
