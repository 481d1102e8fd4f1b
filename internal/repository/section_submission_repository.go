package repository

import (
	"github.com/kotoba-lab/mogi/internal/model"
	"gorm.io/gorm"
)

type SectionSubmissionRepository interface {
	WithTx(tx *gorm.DB) SectionSubmissionRepository
	// Create relies on the unique (attempt_id, section) index: a racing
	// duplicate surfaces as gorm.ErrDuplicatedKey, never a second row.
	Create(submission *model.SectionSubmission) error
	FindByAttempt(attemptID uint) ([]model.SectionSubmission, error)
}

type sectionSubmissionRepository struct {
	db *gorm.DB
}

func NewSectionSubmissionRepository(db *gorm.DB) SectionSubmissionRepository {
	return &sectionSubmissionRepository{db: db}
}

func (r *sectionSubmissionRepository) WithTx(tx *gorm.DB) SectionSubmissionRepository {
	if tx == nil {
		return r
	}
	return &sectionSubmissionRepository{db: tx}
}

func (r *sectionSubmissionRepository) Create(submission *model.SectionSubmission) error {
	return r.db.Create(submission).Error
}

func (r *sectionSubmissionRepository) FindByAttempt(attemptID uint) ([]model.SectionSubmission, error) {
	var submissions []model.SectionSubmission
	err := r.db.Where("attempt_id = ?", attemptID).Order("submitted_at ASC").Find(&submissions).Error
	return submissions, err
}
