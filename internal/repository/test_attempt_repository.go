package repository

import (
	"errors"

	"github.com/kotoba-lab/mogi/internal/model"
	"gorm.io/gorm"
)

type TestAttemptRepository interface {
	// WithTx rebinds the repository to a transaction so the completion
	// step can land all of its rows atomically.
	WithTx(tx *gorm.DB) TestAttemptRepository
	Create(attempt *model.TestAttempt) error
	Update(attempt *model.TestAttempt) error
	FindByID(id uint) (*model.TestAttempt, error)
	FindByIDWithDetails(id uint) (*model.TestAttempt, error)
	// FindInProgress returns (nil, nil) when the user has no active
	// attempt at the level.
	FindInProgress(userID uint, level model.Level) (*model.TestAttempt, error)
	FindAllByUser(userID uint, level *model.Level) ([]model.TestAttempt, error)
}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

func (r *testAttemptRepository) WithTx(tx *gorm.DB) TestAttemptRepository {
	if tx == nil {
		return r
	}
	return &testAttemptRepository{db: tx}
}

func (r *testAttemptRepository) Create(attempt *model.TestAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *testAttemptRepository) Update(attempt *model.TestAttempt) error {
	return r.db.Save(attempt).Error
}

func (r *testAttemptRepository) FindByID(id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindByIDWithDetails(id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.
		Preload("Answers").
		Preload("Submissions").
		Preload("Scores").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindInProgress(userID uint, level model.Level) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.
		Where("user_id = ? AND level = ? AND status = ?", userID, level, model.AttemptInProgress).
		First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *testAttemptRepository) FindAllByUser(userID uint, level *model.Level) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	query := r.db.Where("user_id = ?", userID)
	if level != nil {
		query = query.Where("level = ?", *level)
	}
	err := query.Order("started_at DESC").Find(&attempts).Error
	return attempts, err
}
