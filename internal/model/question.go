package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question is one multiple-choice exam question in the content pool.
// Choices maps a choice letter ("A".."D") to its display text.
type Question struct {
	ID            uint              `gorm:"primarykey" json:"id"`
	Level         Level             `json:"level" gorm:"type:varchar(4);not null;index:idx_questions_pool,priority:1"`
	Section       SectionType       `json:"section" gorm:"type:varchar(24);not null;index:idx_questions_pool,priority:2"`
	Prompt        string            `json:"prompt" gorm:"type:text;not null"`
	Choices       datatypes.JSONMap `json:"choices" gorm:"not null"`
	CorrectChoice string            `json:"-" gorm:"type:varchar(1);not null"`
	AudioURL      *string           `json:"audio_url,omitempty"` // listening questions only
	Active        bool              `json:"active" gorm:"not null;default:true;index:idx_questions_pool,priority:3"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`
}

// ChoiceTexts returns the choices as a plain string map for DTOs.
func (q Question) ChoiceTexts() map[string]string {
	out := make(map[string]string, len(q.Choices))
	for letter, text := range q.Choices {
		if s, ok := text.(string); ok {
			out[letter] = s
		}
	}
	return out
}
