package dto

import (
	"time"

	"github.com/kotoba-lab/mogi/internal/model"
)

type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

type AckResponse struct {
	OK bool `json:"ok"`
}

// StartAttemptResponse carries everything a client needs to render the
// exam: the immutable snapshot plus the seed it was derived from.
// Resumed is true when an existing in-progress attempt was returned.
type StartAttemptResponse struct {
	AttemptID         uint                         `json:"attempt_id"`
	UserID            uint                         `json:"user_id"`
	Level             model.Level                  `json:"level"`
	ShuffleSeed       string                       `json:"shuffle_seed"`
	QuestionsSnapshot map[model.SectionType][]uint `json:"questions_snapshot"`
	StartedAt         time.Time                    `json:"started_at"`
	Resumed           bool                         `json:"resumed"`
}

type SectionScoreDTO struct {
	Section         model.SectionType `json:"section"`
	RawScore        int               `json:"raw_score"`
	RawMaxScore     int               `json:"raw_max_score"`
	NormalizedScore int               `json:"normalized_score"`
	ReferenceGrade  string            `json:"reference_grade"`
	Passed          bool              `json:"passed"`
}

type CompleteAttemptResponse struct {
	AttemptID      uint                       `json:"attempt_id"`
	Level          model.Level                `json:"level"`
	TotalScore     int                        `json:"total_score"`
	Passed         bool                       `json:"passed"`
	SectionsPassed map[model.SectionType]bool `json:"sections_passed"`
	SectionScores  []SectionScoreDTO          `json:"section_scores"`
	CompletedAt    time.Time                  `json:"completed_at"`
}

// AttemptSummaryDTO lists one sitting in a user's history.
type AttemptSummaryDTO struct {
	ID          uint        `json:"id"`
	UserID      uint        `json:"user_id"`
	Level       model.Level `json:"level"`
	Status      string      `json:"status"`
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	TotalScore  *int        `json:"total_score,omitempty"`
	Passed      *bool       `json:"passed,omitempty"`
}

type SectionTimingDTO struct {
	Section        model.SectionType `json:"section"`
	SubmittedAt    time.Time         `json:"submitted_at"`
	ElapsedSeconds int               `json:"elapsed_seconds"`
}

// QuestionReviewDTO shows one question with the candidate's choice against
// the correct one. SelectedChoice and IsCorrect are nil for questions the
// candidate never answered.
type QuestionReviewDTO struct {
	QuestionID     uint              `json:"question_id"`
	Prompt         string            `json:"prompt"`
	Choices        map[string]string `json:"choices"`
	AudioURL       *string           `json:"audio_url,omitempty"`
	SelectedChoice *string           `json:"selected_choice,omitempty"`
	CorrectChoice  string            `json:"correct_choice"`
	IsCorrect      *bool             `json:"is_correct,omitempty"`
}

type SectionReviewDTO struct {
	Section   model.SectionType   `json:"section"`
	Questions []QuestionReviewDTO `json:"questions"`
}

// AttemptResultsResponse is the full post-completion report.
type AttemptResultsResponse struct {
	Attempt        AttemptSummaryDTO  `json:"attempt"`
	SectionScores  []SectionScoreDTO  `json:"section_scores"`
	TimeTracking   []SectionTimingDTO `json:"time_tracking"`
	QuestionReview []SectionReviewDTO `json:"question_review"`
}
