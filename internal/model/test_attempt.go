package model

import (
	"time"

	"gorm.io/gorm"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
)

func (s AttemptStatus) String() string { return string(s) }

// TestAttempt is one candidate's sitting of a mock exam at a given level.
// The partial unique index keeps at most one in_progress attempt per
// (user, level), which is what makes Start safe under concurrent
// double-invocation: the loser of the race gets a duplicate-key error and
// resumes the winner's attempt instead.
type TestAttempt struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	UserID      uint             `json:"user_id" gorm:"not null;index:idx_attempts_active,unique,where:status = 'in_progress',priority:1"`
	Level       Level            `json:"level" gorm:"type:varchar(4);not null;index:idx_attempts_active,unique,where:status = 'in_progress',priority:2"`
	Status      AttemptStatus    `json:"status" gorm:"type:varchar(16);not null;default:'in_progress'"`
	ShuffleSeed string           `json:"shuffle_seed" gorm:"type:varchar(64);not null"`
	Snapshot    QuestionSnapshot `json:"questions_snapshot" gorm:"type:jsonb;not null"`
	StartedAt   time.Time        `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	TotalScore  *int             `json:"total_score,omitempty"`
	Passed      *bool            `json:"passed,omitempty"`

	Answers     []UserAnswer        `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Submissions []SectionSubmission `json:"submissions,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Scores      []SectionScore      `json:"scores,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *TestAttempt) IsCompleted() bool { return a.Status == AttemptCompleted }
