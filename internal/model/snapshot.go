package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// QuestionSnapshot is the fixed question ordering assigned to an attempt.
// It is built once at start time and never changes afterwards, so a client
// that crashes mid-exam resumes into exactly the same order. Stored as a
// jsonb column on the attempt row; the attempt exclusively owns it.
type QuestionSnapshot struct {
	Level    Level                  `json:"level"`
	Seed     string                 `json:"seed"`
	Sections map[SectionType][]uint `json:"sections"`
}

// SectionFor returns the section a question belongs to in this snapshot,
// or false if the question is not part of the attempt at all.
func (s QuestionSnapshot) SectionFor(questionID uint) (SectionType, bool) {
	for section, ids := range s.Sections {
		for _, id := range ids {
			if id == questionID {
				return section, true
			}
		}
	}
	return "", false
}

// QuestionIDs returns every question id in the snapshot, section by section
// in canonical order.
func (s QuestionSnapshot) QuestionIDs() []uint {
	var out []uint
	for _, section := range AllSectionTypes() {
		out = append(out, s.Sections[section]...)
	}
	return out
}

func (s *QuestionSnapshot) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*s = QuestionSnapshot{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for QuestionSnapshot: %T", value)
	}
	return json.Unmarshal(raw, s)
}

func (s QuestionSnapshot) Value() (driver.Value, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal question snapshot: %w", err)
	}
	return string(raw), nil
}

// GormDataType keeps the column jsonb on postgres.
func (QuestionSnapshot) GormDataType() string { return "jsonb" }
