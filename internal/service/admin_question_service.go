package service

import (
	"fmt"

	"github.com/kotoba-lab/mogi/internal/apperr"
	"github.com/kotoba-lab/mogi/internal/dto"
	"github.com/kotoba-lab/mogi/internal/model"
	"github.com/kotoba-lab/mogi/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// AdminQuestionService is the thin authoring surface for the question
// pool. It exists so the exam engine's content collaborator can be
// exercised end to end; bulk import tooling proper stays out of scope.
type AdminQuestionService interface {
	CreateQuestion(req dto.QuestionCreateDTO) (*dto.AdminQuestionDTO, error)
	CreateQuestions(req dto.QuestionBulkCreateDTO) ([]dto.AdminQuestionDTO, error)
	ListQuestions(level model.Level, section model.SectionType) ([]dto.AdminQuestionDTO, error)
	DeactivateQuestion(id uint) error
}

type adminQuestionService struct {
	questionRepo repository.QuestionRepository
}

func NewAdminQuestionService(questionRepo repository.QuestionRepository) AdminQuestionService {
	return &adminQuestionService{questionRepo: questionRepo}
}

func (s *adminQuestionService) CreateQuestion(req dto.QuestionCreateDTO) (*dto.AdminQuestionDTO, error) {
	question, err := questionFromCreateDTO(req)
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.Create(question); err != nil {
		log.Error().Err(err).Str("level", req.Level).Str("section", req.Section).Msg("Failed to create question")
		return nil, fmt.Errorf("database error creating question: %w", err)
	}
	out := adminQuestionDTO(*question)
	return &out, nil
}

func (s *adminQuestionService) CreateQuestions(req dto.QuestionBulkCreateDTO) ([]dto.AdminQuestionDTO, error) {
	questions := make([]model.Question, 0, len(req.Questions))
	for i, qReq := range req.Questions {
		question, err := questionFromCreateDTO(qReq)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, *question)
	}
	if err := s.questionRepo.CreateBatch(questions); err != nil {
		log.Error().Err(err).Int("count", len(questions)).Msg("Failed to create question batch")
		return nil, fmt.Errorf("database error creating questions: %w", err)
	}
	out := make([]dto.AdminQuestionDTO, len(questions))
	for i, q := range questions {
		out[i] = adminQuestionDTO(q)
	}
	return out, nil
}

func (s *adminQuestionService) ListQuestions(level model.Level, section model.SectionType) ([]dto.AdminQuestionDTO, error) {
	questions, err := s.questionRepo.FindByLevelAndSection(level, section, false)
	if err != nil {
		log.Error().Err(err).Str("level", level.String()).Str("section", section.String()).Msg("Failed to list questions")
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	out := make([]dto.AdminQuestionDTO, len(questions))
	for i, q := range questions {
		out[i] = adminQuestionDTO(q)
	}
	return out, nil
}

func (s *adminQuestionService) DeactivateQuestion(id uint) error {
	if _, err := s.questionRepo.FindByID(id); err != nil {
		return apperr.NotFound("question", id)
	}
	return s.questionRepo.Deactivate(id)
}

func questionFromCreateDTO(req dto.QuestionCreateDTO) (*model.Question, error) {
	if _, ok := req.Choices[req.CorrectChoice]; !ok {
		return nil, fmt.Errorf("correct choice %q is not among the provided choices", req.CorrectChoice)
	}
	if req.Section == model.SectionListening.String() && (req.AudioURL == nil || *req.AudioURL == "") {
		return nil, fmt.Errorf("listening questions require an audio_url")
	}
	choices := make(datatypes.JSONMap, len(req.Choices))
	for letter, text := range req.Choices {
		choices[letter] = text
	}
	return &model.Question{
		Level:         model.Level(req.Level),
		Section:       model.SectionType(req.Section),
		Prompt:        req.Prompt,
		Choices:       choices,
		CorrectChoice: req.CorrectChoice,
		AudioURL:      req.AudioURL,
		Active:        true,
	}, nil
}

func adminQuestionDTO(q model.Question) dto.AdminQuestionDTO {
	return dto.AdminQuestionDTO{
		ID:            q.ID,
		Level:         q.Level,
		Section:       q.Section,
		Prompt:        q.Prompt,
		Choices:       q.ChoiceTexts(),
		CorrectChoice: q.CorrectChoice,
		AudioURL:      q.AudioURL,
		Active:        q.Active,
		CreatedAt:     q.CreatedAt,
	}
}
