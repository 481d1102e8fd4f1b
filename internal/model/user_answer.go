package model

import (
	"time"
)

// UserAnswer is one row per (attempt, question). Re-answering before the
// question's section is submitted upserts over the prior choice. IsCorrect
// stays nil until the attempt is completed and scored.
type UserAnswer struct {
	ID             uint        `gorm:"primarykey" json:"id"`
	AttemptID      uint        `json:"attempt_id" gorm:"not null;uniqueIndex:idx_answers_attempt_question,priority:1"`
	QuestionID     uint        `json:"question_id" gorm:"not null;uniqueIndex:idx_answers_attempt_question,priority:2"`
	Section        SectionType `json:"section" gorm:"type:varchar(24);not null;index"`
	SelectedChoice string      `json:"selected_choice" gorm:"type:varchar(1);not null"`
	AnsweredAt     time.Time   `json:"answered_at" gorm:"not null"`
	IsCorrect      *bool       `json:"is_correct,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
