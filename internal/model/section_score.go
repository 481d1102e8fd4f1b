package model

import (
	"time"
)

// SectionScore is computed once, inside the completion transaction, and is
// immutable afterwards. NormalizedScore is on the common 0-60 scale;
// ReferenceGrade is the coarse A/B/C accuracy band, independent of
// pass/fail.
type SectionScore struct {
	ID              uint        `gorm:"primarykey" json:"id"`
	AttemptID       uint        `json:"attempt_id" gorm:"not null;uniqueIndex:idx_scores_attempt_section,priority:1"`
	Section         SectionType `json:"section" gorm:"type:varchar(24);not null;uniqueIndex:idx_scores_attempt_section,priority:2"`
	RawScore        int         `json:"raw_score" gorm:"not null"`
	RawMaxScore     int         `json:"raw_max_score" gorm:"not null"`
	NormalizedScore int         `json:"normalized_score" gorm:"not null"`
	ReferenceGrade  string      `json:"reference_grade" gorm:"type:varchar(1);not null"`
	Passed          bool        `json:"passed" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
