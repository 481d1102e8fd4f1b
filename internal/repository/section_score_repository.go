package repository

import (
	"github.com/kotoba-lab/mogi/internal/model"
	"gorm.io/gorm"
)

type SectionScoreRepository interface {
	WithTx(tx *gorm.DB) SectionScoreRepository
	Create(score *model.SectionScore) error
	FindByAttempt(attemptID uint) ([]model.SectionScore, error)
}

type sectionScoreRepository struct {
	db *gorm.DB
}

func NewSectionScoreRepository(db *gorm.DB) SectionScoreRepository {
	return &sectionScoreRepository{db: db}
}

func (r *sectionScoreRepository) WithTx(tx *gorm.DB) SectionScoreRepository {
	if tx == nil {
		return r
	}
	return &sectionScoreRepository{db: tx}
}

func (r *sectionScoreRepository) Create(score *model.SectionScore) error {
	return r.db.Create(score).Error
}

func (r *sectionScoreRepository) FindByAttempt(attemptID uint) ([]model.SectionScore, error) {
	var scores []model.SectionScore
	err := r.db.Where("attempt_id = ?", attemptID).Find(&scores).Error
	return scores, err
}
