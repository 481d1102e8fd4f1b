package service

import (
	"fmt"

	"github.com/kotoba-lab/mogi/internal/model"
	"github.com/kotoba-lab/mogi/internal/repository"
)

// QuestionPoolService is the engine's view of the content store: active
// question ids per (level, section) for snapshot building, and answer keys
// plus full question rows for scoring and review.
type QuestionPoolService interface {
	ListActiveQuestionIDs(level model.Level, section model.SectionType) ([]uint, error)
	CorrectAnswerKey(questionIDs []uint) (map[uint]string, error)
	QuestionDetails(questionIDs []uint) (map[uint]model.Question, error)
}

type questionPoolService struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionPoolService(questionRepo repository.QuestionRepository) QuestionPoolService {
	return &questionPoolService{questionRepo: questionRepo}
}

func (s *questionPoolService) ListActiveQuestionIDs(level model.Level, section model.SectionType) ([]uint, error) {
	ids, err := s.questionRepo.ListActiveIDs(level, section)
	if err != nil {
		return nil, fmt.Errorf("listing active questions for %s/%s: %w", level, section, err)
	}
	return ids, nil
}

func (s *questionPoolService) CorrectAnswerKey(questionIDs []uint) (map[uint]string, error) {
	key, err := s.questionRepo.CorrectAnswersByIDs(questionIDs)
	if err != nil {
		return nil, fmt.Errorf("loading answer key: %w", err)
	}
	return key, nil
}

func (s *questionPoolService) QuestionDetails(questionIDs []uint) (map[uint]model.Question, error) {
	questions, err := s.questionRepo.FindByIDs(questionIDs)
	if err != nil {
		return nil, fmt.Errorf("loading question details: %w", err)
	}
	byID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return byID, nil
}
