package repository

import (
	"github.com/kotoba-lab/mogi/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	CreateBatch(questions []model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByIDs(ids []uint) ([]model.Question, error)
	FindByLevelAndSection(level model.Level, section model.SectionType, activeOnly bool) ([]model.Question, error)
	// ListActiveIDs returns the active pool for (level, section) in stable
	// id order, so snapshot building always starts from the same input.
	ListActiveIDs(level model.Level, section model.SectionType) ([]uint, error)
	CorrectAnswersByIDs(ids []uint) (map[uint]string, error)
	Deactivate(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) CreateBatch(questions []model.Question) error {
	return r.db.Create(&questions).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var questions []model.Question
	if len(ids) == 0 {
		return questions, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindByLevelAndSection(level model.Level, section model.SectionType, activeOnly bool) ([]model.Question, error) {
	var questions []model.Question
	query := r.db.Where("level = ? AND section = ?", level, section)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Order("id ASC").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) ListActiveIDs(level model.Level, section model.SectionType) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Question{}).
		Where("level = ? AND section = ? AND active = ?", level, section, true).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *questionRepository) CorrectAnswersByIDs(ids []uint) (map[uint]string, error) {
	key := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return key, nil
	}
	var rows []struct {
		ID            uint
		CorrectChoice string
	}
	err := r.db.Model(&model.Question{}).
		Select("id, correct_choice").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		key[row.ID] = row.CorrectChoice
	}
	return key, nil
}

func (r *questionRepository) Deactivate(id uint) error {
	return r.db.Model(&model.Question{}).Where("id = ?", id).Update("active", false).Error
}
