package model

import (
	"time"
)

// SectionSubmission marks a section as turned in. Its existence is the
// lock: once a row is present, answers in that section can no longer be
// changed. The unique index guarantees at most one submission per
// (attempt, section) even under racing requests.
type SectionSubmission struct {
	ID             uint        `gorm:"primarykey" json:"id"`
	AttemptID      uint        `json:"attempt_id" gorm:"not null;uniqueIndex:idx_submissions_attempt_section,priority:1"`
	Section        SectionType `json:"section" gorm:"type:varchar(24);not null;uniqueIndex:idx_submissions_attempt_section,priority:2"`
	SubmittedAt    time.Time   `json:"submitted_at" gorm:"not null"`
	ElapsedSeconds int         `json:"elapsed_seconds" gorm:"not null"` // client-reported, trusted

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
