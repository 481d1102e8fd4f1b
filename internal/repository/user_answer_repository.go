package repository

import (
	"github.com/kotoba-lab/mogi/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserAnswerRepository interface {
	WithTx(tx *gorm.DB) UserAnswerRepository
	// Upsert writes the answer keyed by (attempt, question); re-answering
	// an unlocked question overwrites the earlier choice.
	Upsert(answer *model.UserAnswer) error
	FindByAttempt(attemptID uint) ([]model.UserAnswer, error)
	MarkCorrectness(attemptID, questionID uint, correct bool) error
}

type userAnswerRepository struct {
	db *gorm.DB
}

func NewUserAnswerRepository(db *gorm.DB) UserAnswerRepository {
	return &userAnswerRepository{db: db}
}

func (r *userAnswerRepository) WithTx(tx *gorm.DB) UserAnswerRepository {
	if tx == nil {
		return r
	}
	return &userAnswerRepository{db: tx}
}

func (r *userAnswerRepository) Upsert(answer *model.UserAnswer) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"selected_choice", "answered_at", "updated_at"}),
	}).Create(answer).Error
}

func (r *userAnswerRepository) FindByAttempt(attemptID uint) ([]model.UserAnswer, error) {
	var answers []model.UserAnswer
	err := r.db.Where("attempt_id = ?", attemptID).Find(&answers).Error
	return answers, err
}

func (r *userAnswerRepository) MarkCorrectness(attemptID, questionID uint, correct bool) error {
	return r.db.Model(&model.UserAnswer{}).
		Where("attempt_id = ? AND question_id = ?", attemptID, questionID).
		Update("is_correct", correct).Error
}
