package dto

// StartAttemptRequest opens (or resumes) a mock exam at a level.
// UserID is temporary plumbing until it comes from an auth token.
type StartAttemptRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// RecordAnswerRequest upserts the selected choice for one question.
type RecordAnswerRequest struct {
	UserID         uint   `json:"user_id" binding:"required"`
	QuestionID     uint   `json:"question_id" binding:"required"`
	SelectedChoice string `json:"selected_choice" binding:"required,oneof=A B C D"`
}

// SubmitSectionRequest turns a section in and locks it. ElapsedSeconds is
// reported by the client and trusted.
type SubmitSectionRequest struct {
	UserID         uint `json:"user_id" binding:"required"`
	ElapsedSeconds int  `json:"elapsed_seconds" binding:"min=0"`
}

// CompleteAttemptRequest finalises and scores an attempt.
type CompleteAttemptRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}
