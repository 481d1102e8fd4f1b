package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/kotoba-lab/mogi/internal/apperr"
	"github.com/kotoba-lab/mogi/internal/dto"
	"github.com/kotoba-lab/mogi/internal/model"
	"github.com/kotoba-lab/mogi/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ExamAttemptService is the attempt lifecycle state machine:
// in_progress -> completed, with a forward-only per-section submission
// protocol in between. All mutating operations verify ownership first.
type ExamAttemptService interface {
	Start(userID uint, level model.Level) (*dto.StartAttemptResponse, error)
	RecordAnswer(attemptID, userID, questionID uint, selectedChoice string) error
	SubmitSection(attemptID, userID uint, section model.SectionType, elapsedSeconds int) error
	Complete(attemptID, userID uint) (*dto.CompleteAttemptResponse, error)
	GetResults(attemptID, userID uint) (*dto.AttemptResultsResponse, error)
	ListAttempts(userID uint, level *model.Level) ([]dto.AttemptSummaryDTO, error)
}

type examAttemptService struct {
	pool            QuestionPoolService
	snapshotBuilder SnapshotBuilder
	scoring         ScoringEngine
	attemptRepo     repository.TestAttemptRepository
	answerRepo      repository.UserAnswerRepository
	submissionRepo  repository.SectionSubmissionRepository
	scoreRepo       repository.SectionScoreRepository
	db              repository.TxRunner
}

func NewExamAttemptService(
	pool QuestionPoolService,
	snapshotBuilder SnapshotBuilder,
	scoring ScoringEngine,
	attemptRepo repository.TestAttemptRepository,
	answerRepo repository.UserAnswerRepository,
	submissionRepo repository.SectionSubmissionRepository,
	scoreRepo repository.SectionScoreRepository,
	db repository.TxRunner,
) ExamAttemptService {
	return &examAttemptService{
		pool:            pool,
		snapshotBuilder: snapshotBuilder,
		scoring:         scoring,
		attemptRepo:     attemptRepo,
		answerRepo:      answerRepo,
		submissionRepo:  submissionRepo,
		scoreRepo:       scoreRepo,
		db:              db,
	}
}

// Start opens a new attempt at the level, or resumes the user's existing
// in_progress one unchanged (same id, seed and snapshot), so a crashed
// client reconnects into the identical question order. Losing the
// unique-index race against a concurrent Start also resolves to a resume.
func (s *examAttemptService) Start(userID uint, level model.Level) (*dto.StartAttemptResponse, error) {
	if !level.Valid() {
		return nil, apperr.InvalidLevel(level.String())
	}

	existing, err := s.attemptRepo.FindInProgress(userID, level)
	if err != nil {
		return nil, fmt.Errorf("looking up in-progress attempt: %w", err)
	}
	if existing != nil {
		log.Info().Uint("attemptID", existing.ID).Uint("userID", userID).Str("level", level.String()).Msg("Resuming in-progress attempt")
		return startResponse(existing, true), nil
	}

	pools := make(map[model.SectionType][]uint, len(model.AllSectionTypes()))
	for _, section := range model.AllSectionTypes() {
		required, err := RequiredQuestionCount(level, section)
		if err != nil {
			return nil, err
		}
		ids, err := s.pool.ListActiveQuestionIDs(level, section)
		if err != nil {
			return nil, err
		}
		if len(ids) < required {
			log.Warn().Str("level", level.String()).Str("section", section.String()).
				Int("required", required).Int("available", len(ids)).
				Msg("Insufficient question pool for start")
			return nil, apperr.InsufficientPool(section, required, len(ids))
		}
		// The builder only orders what it is given; trimming to the
		// level's required count happens here.
		pools[section] = ids[:required]
	}

	seed := GenerateSeed()
	snapshot, err := s.snapshotBuilder.Build(level, seed, pools)
	if err != nil {
		return nil, fmt.Errorf("building question snapshot: %w", err)
	}

	attempt := &model.TestAttempt{
		UserID:      userID,
		Level:       level,
		Status:      model.AttemptInProgress,
		ShuffleSeed: seed,
		Snapshot:    snapshot,
		StartedAt:   time.Now(),
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent Start won the partial unique index; return the
			// winner's attempt as a resume.
			winner, findErr := s.attemptRepo.FindInProgress(userID, level)
			if findErr != nil || winner == nil {
				return nil, fmt.Errorf("resolving concurrent start for user %d level %s: %w", userID, level, err)
			}
			log.Info().Uint("attemptID", winner.ID).Uint("userID", userID).Msg("Concurrent start resolved to resume")
			return startResponse(winner, true), nil
		}
		log.Error().Err(err).Uint("userID", userID).Str("level", level.String()).Msg("Failed to create attempt")
		return nil, fmt.Errorf("creating attempt: %w", err)
	}

	log.Info().Uint("attemptID", attempt.ID).Uint("userID", userID).Str("level", level.String()).Msg("Started new attempt")
	return startResponse(attempt, false), nil
}

// RecordAnswer upserts the candidate's choice for a question, provided the
// attempt is still in progress and the question's section has not been
// turned in.
func (s *examAttemptService) RecordAnswer(attemptID, userID, questionID uint, selectedChoice string) error {
	attempt, err := s.loadOwnedAttempt(attemptID, userID)
	if err != nil {
		return err
	}
	if attempt.IsCompleted() {
		return apperr.AlreadyCompleted(attemptID)
	}

	section, ok := attempt.Snapshot.SectionFor(questionID)
	if !ok {
		return apperr.NotFound("question", questionID)
	}

	submitted, err := s.submittedSections(attemptID)
	if err != nil {
		return err
	}
	if submitted[section] {
		return apperr.SectionLocked(section)
	}

	answer := &model.UserAnswer{
		AttemptID:      attemptID,
		QuestionID:     questionID,
		Section:        section,
		SelectedChoice: selectedChoice,
		AnsweredAt:     time.Now(),
	}
	if err := s.answerRepo.Upsert(answer); err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Uint("questionID", questionID).Msg("Failed to upsert answer")
		return fmt.Errorf("recording answer: %w", err)
	}
	return nil
}

// SubmitSection turns a section in, time-stamped and locked. A second
// submission for the same section is rejected, never overwritten; the
// unique index keeps that true under racing requests too.
func (s *examAttemptService) SubmitSection(attemptID, userID uint, section model.SectionType, elapsedSeconds int) error {
	if !section.Valid() {
		return apperr.InvalidSection(section.String())
	}
	attempt, err := s.loadOwnedAttempt(attemptID, userID)
	if err != nil {
		return err
	}
	if attempt.IsCompleted() {
		return apperr.AlreadyCompleted(attemptID)
	}

	submitted, err := s.submittedSections(attemptID)
	if err != nil {
		return err
	}
	if submitted[section] {
		return apperr.AlreadySubmitted(section)
	}

	submission := &model.SectionSubmission{
		AttemptID:      attemptID,
		Section:        section,
		SubmittedAt:    time.Now(),
		ElapsedSeconds: elapsedSeconds,
	}
	if err := s.submissionRepo.Create(submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.AlreadySubmitted(section)
		}
		log.Error().Err(err).Uint("attemptID", attemptID).Str("section", section.String()).Msg("Failed to create section submission")
		return fmt.Errorf("submitting section: %w", err)
	}

	log.Info().Uint("attemptID", attemptID).Str("section", section.String()).Int("elapsedSeconds", elapsedSeconds).Msg("Section submitted")
	return nil
}

// Complete scores the attempt once all three sections are submitted. The
// section scores, answer correctness flags and the attempt update land in
// one transaction: a crash mid-scoring leaves the attempt in_progress with
// no score rows rather than half-completed.
func (s *examAttemptService) Complete(attemptID, userID uint) (*dto.CompleteAttemptResponse, error) {
	attempt, err := s.loadOwnedAttempt(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if attempt.IsCompleted() {
		return nil, apperr.AlreadyCompleted(attemptID)
	}

	submitted, err := s.submittedSections(attemptID)
	if err != nil {
		return nil, err
	}
	var missing []model.SectionType
	for _, section := range model.AllSectionTypes() {
		if !submitted[section] {
			missing = append(missing, section)
		}
	}
	if len(missing) > 0 {
		return nil, apperr.MissingSections(missing)
	}

	answers, err := s.answerRepo.FindByAttempt(attemptID)
	if err != nil {
		return nil, fmt.Errorf("loading answers: %w", err)
	}
	answersBySection := make(map[model.SectionType][]model.UserAnswer)
	for _, answer := range answers {
		section, ok := attempt.Snapshot.SectionFor(answer.QuestionID)
		if !ok {
			continue
		}
		answersBySection[section] = append(answersBySection[section], answer)
	}

	key, err := s.pool.CorrectAnswerKey(attempt.Snapshot.QuestionIDs())
	if err != nil {
		return nil, err
	}

	results := make([]SectionScoreResult, 0, len(model.AllSectionTypes()))
	for _, section := range model.AllSectionTypes() {
		result, err := s.scoring.ScoreSection(attempt.Level, section, answersBySection[section], key)
		if err != nil {
			return nil, fmt.Errorf("scoring section %s: %w", section, err)
		}
		results = append(results, result)
	}
	totalScore := s.scoring.ScoreTotal(results)
	verdict, err := s.scoring.EvaluatePassFail(attempt.Level, results, totalScore)
	if err != nil {
		return nil, err
	}

	completedAt := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		scoreRepo := s.scoreRepo.WithTx(tx)
		answerRepo := s.answerRepo.WithTx(tx)
		attemptRepo := s.attemptRepo.WithTx(tx)

		for _, result := range results {
			score := &model.SectionScore{
				AttemptID:       attemptID,
				Section:         result.Section,
				RawScore:        result.RawScore,
				RawMaxScore:     result.RawMaxScore,
				NormalizedScore: result.NormalizedScore,
				ReferenceGrade:  result.ReferenceGrade,
				Passed:          result.Passed,
			}
			if err := scoreRepo.Create(score); err != nil {
				return fmt.Errorf("persisting score for section %s: %w", result.Section, err)
			}
		}

		for _, answer := range answers {
			correct, ok := key[answer.QuestionID]
			if !ok {
				continue
			}
			if err := answerRepo.MarkCorrectness(attemptID, answer.QuestionID, answer.SelectedChoice == correct); err != nil {
				return fmt.Errorf("marking correctness for question %d: %w", answer.QuestionID, err)
			}
		}

		attempt.Status = model.AttemptCompleted
		attempt.CompletedAt = &completedAt
		attempt.TotalScore = &totalScore
		attempt.Passed = &verdict.Passed
		if err := attemptRepo.Update(attempt); err != nil {
			return fmt.Errorf("completing attempt: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("Completion transaction failed")
		return nil, err
	}

	log.Info().Uint("attemptID", attemptID).Int("totalScore", totalScore).Bool("passed", verdict.Passed).Msg("Attempt completed")

	resp := &dto.CompleteAttemptResponse{
		AttemptID:      attemptID,
		Level:          attempt.Level,
		TotalScore:     totalScore,
		Passed:         verdict.Passed,
		SectionsPassed: verdict.SectionsPassed,
		SectionScores:  make([]dto.SectionScoreDTO, 0, len(results)),
		CompletedAt:    completedAt,
	}
	for _, result := range results {
		resp.SectionScores = append(resp.SectionScores, sectionScoreDTOFromResult(result))
	}
	return resp, nil
}

// GetResults returns the full post-completion report: attempt metadata,
// section scores, submission timings, and a per-question review grouped by
// section in snapshot order.
func (s *examAttemptService) GetResults(attemptID, userID uint) (*dto.AttemptResultsResponse, error) {
	attempt, err := s.loadOwnedAttempt(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if !attempt.IsCompleted() {
		return nil, apperr.AttemptNotCompleted(attemptID)
	}

	scores, err := s.scoreRepo.FindByAttempt(attemptID)
	if err != nil {
		return nil, fmt.Errorf("loading section scores: %w", err)
	}
	submissions, err := s.submissionRepo.FindByAttempt(attemptID)
	if err != nil {
		return nil, fmt.Errorf("loading submissions: %w", err)
	}
	answers, err := s.answerRepo.FindByAttempt(attemptID)
	if err != nil {
		return nil, fmt.Errorf("loading answers: %w", err)
	}
	questions, err := s.pool.QuestionDetails(attempt.Snapshot.QuestionIDs())
	if err != nil {
		return nil, err
	}

	answersByQuestion := make(map[uint]model.UserAnswer, len(answers))
	for _, answer := range answers {
		answersByQuestion[answer.QuestionID] = answer
	}

	resp := &dto.AttemptResultsResponse{
		Attempt:       attemptSummaryDTO(attempt),
		SectionScores: make([]dto.SectionScoreDTO, 0, len(scores)),
	}

	scoresBySection := make(map[model.SectionType]model.SectionScore, len(scores))
	for _, score := range scores {
		scoresBySection[score.Section] = score
	}
	submissionsBySection := make(map[model.SectionType]model.SectionSubmission, len(submissions))
	for _, submission := range submissions {
		submissionsBySection[submission.Section] = submission
	}

	for _, section := range model.AllSectionTypes() {
		if score, ok := scoresBySection[section]; ok {
			var scoreDTO dto.SectionScoreDTO
			if err := copier.Copy(&scoreDTO, &score); err != nil {
				return nil, fmt.Errorf("preparing score response: %w", err)
			}
			resp.SectionScores = append(resp.SectionScores, scoreDTO)
		}
		if submission, ok := submissionsBySection[section]; ok {
			resp.TimeTracking = append(resp.TimeTracking, dto.SectionTimingDTO{
				Section:        submission.Section,
				SubmittedAt:    submission.SubmittedAt,
				ElapsedSeconds: submission.ElapsedSeconds,
			})
		}

		review := dto.SectionReviewDTO{Section: section}
		for _, questionID := range attempt.Snapshot.Sections[section] {
			question, ok := questions[questionID]
			if !ok {
				log.Warn().Uint("questionID", questionID).Uint("attemptID", attemptID).Msg("Snapshot question missing from content store")
				continue
			}
			item := dto.QuestionReviewDTO{
				QuestionID:    questionID,
				Prompt:        question.Prompt,
				Choices:       question.ChoiceTexts(),
				AudioURL:      question.AudioURL,
				CorrectChoice: question.CorrectChoice,
			}
			if answer, answered := answersByQuestion[questionID]; answered {
				selected := answer.SelectedChoice
				item.SelectedChoice = &selected
				item.IsCorrect = answer.IsCorrect
			}
			review.Questions = append(review.Questions, item)
		}
		resp.QuestionReview = append(resp.QuestionReview, review)
	}

	return resp, nil
}

// ListAttempts returns the user's attempt history, optionally filtered to
// one level, newest first.
func (s *examAttemptService) ListAttempts(userID uint, level *model.Level) ([]dto.AttemptSummaryDTO, error) {
	if level != nil && !level.Valid() {
		return nil, apperr.InvalidLevel(level.String())
	}
	attempts, err := s.attemptRepo.FindAllByUser(userID, level)
	if err != nil {
		return nil, fmt.Errorf("fetching attempts for user %d: %w", userID, err)
	}
	summaries := make([]dto.AttemptSummaryDTO, len(attempts))
	for i := range attempts {
		summaries[i] = attemptSummaryDTO(&attempts[i])
	}
	return summaries, nil
}

// loadOwnedAttempt fetches the attempt and enforces ownership. A non-owner
// gets the same answer as a missing attempt so existence does not leak.
func (s *examAttemptService) loadOwnedAttempt(attemptID, userID uint) (*model.TestAttempt, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("attempt", attemptID)
		}
		return nil, fmt.Errorf("loading attempt %d: %w", attemptID, err)
	}
	if attempt.UserID != userID {
		log.Warn().Uint("attemptID", attemptID).Uint("userID", userID).Uint("ownerID", attempt.UserID).Msg("Attempt access by non-owner")
		return nil, apperr.NotOwner(attemptID)
	}
	return attempt, nil
}

func (s *examAttemptService) submittedSections(attemptID uint) (map[model.SectionType]bool, error) {
	submissions, err := s.submissionRepo.FindByAttempt(attemptID)
	if err != nil {
		return nil, fmt.Errorf("loading submissions: %w", err)
	}
	submitted := make(map[model.SectionType]bool, len(submissions))
	for _, submission := range submissions {
		submitted[submission.Section] = true
	}
	return submitted, nil
}

func startResponse(attempt *model.TestAttempt, resumed bool) *dto.StartAttemptResponse {
	return &dto.StartAttemptResponse{
		AttemptID:         attempt.ID,
		UserID:            attempt.UserID,
		Level:             attempt.Level,
		ShuffleSeed:       attempt.ShuffleSeed,
		QuestionsSnapshot: attempt.Snapshot.Sections,
		StartedAt:         attempt.StartedAt,
		Resumed:           resumed,
	}
}

func attemptSummaryDTO(attempt *model.TestAttempt) dto.AttemptSummaryDTO {
	var summary dto.AttemptSummaryDTO
	if err := copier.Copy(&summary, attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to copy attempt to summary DTO")
	}
	summary.Status = attempt.Status.String()
	return summary
}

func sectionScoreDTOFromResult(result SectionScoreResult) dto.SectionScoreDTO {
	return dto.SectionScoreDTO{
		Section:         result.Section,
		RawScore:        result.RawScore,
		RawMaxScore:     result.RawMaxScore,
		NormalizedScore: result.NormalizedScore,
		ReferenceGrade:  result.ReferenceGrade,
		Passed:          result.Passed,
	}
}
