package dto

import (
	"time"

	"github.com/kotoba-lab/mogi/internal/model"
)

// QuestionCreateDTO is used by admins to author a single question.
type QuestionCreateDTO struct {
	Level         string            `json:"level" binding:"required,oneof=N5 N4 N3 N2 N1"`
	Section       string            `json:"section" binding:"required,oneof=vocabulary grammar_reading listening"`
	Prompt        string            `json:"prompt" binding:"required"`
	Choices       map[string]string `json:"choices" binding:"required,min=2"`
	CorrectChoice string            `json:"correct_choice" binding:"required,oneof=A B C D"`
	AudioURL      *string           `json:"audio_url"`
}

// QuestionBulkCreateDTO authors a batch of questions in one call.
type QuestionBulkCreateDTO struct {
	Questions []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// AdminQuestionDTO is the admin-facing view; unlike user-facing payloads
// it includes the correct choice.
type AdminQuestionDTO struct {
	ID            uint              `json:"id"`
	Level         model.Level       `json:"level"`
	Section       model.SectionType `json:"section"`
	Prompt        string            `json:"prompt"`
	Choices       map[string]string `json:"choices"`
	CorrectChoice string            `json:"correct_choice"`
	AudioURL      *string           `json:"audio_url,omitempty"`
	Active        bool              `json:"active"`
	CreatedAt     time.Time         `json:"created_at"`
}
