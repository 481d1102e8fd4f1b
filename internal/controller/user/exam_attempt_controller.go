package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kotoba-lab/mogi/internal/apperr"
	"github.com/kotoba-lab/mogi/internal/dto"
	"github.com/kotoba-lab/mogi/internal/model"
	"github.com/kotoba-lab/mogi/internal/service"
	"github.com/rs/zerolog/log"
)

type ExamAttemptController struct {
	attemptService service.ExamAttemptService
}

func NewExamAttemptController(attemptService service.ExamAttemptService) *ExamAttemptController {
	return &ExamAttemptController{attemptService: attemptService}
}

// StartAttempt godoc
// @Summary Start or resume a mock exam at a level
// @Description Opens a new attempt for the user at the given JLPT level, or returns the existing in-progress attempt unchanged (same id, seed and question snapshot).
// @Tags Mock Exam
// @Accept json
// @Produce json
// @Param level path string true "JLPT level" Enums(N5, N4, N3, N2, N1)
// @Param start_data body dto.StartAttemptRequest true "User starting the attempt"
// @Success 200 {object} dto.StartAttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown level"
// @Failure 422 {object} dto.ErrorResponse "Insufficient question pool"
// @Router /levels/{level}/attempts [post]
func (c *ExamAttemptController) StartAttempt(ctx *gin.Context) {
	level, err := model.ParseLevel(ctx.Param("level"))
	if err != nil {
		respondError(ctx, apperr.InvalidLevel(ctx.Param("level")))
		return
	}

	var req dto.StartAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("StartAttempt: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := c.attemptService.Start(req.UserID, level)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RecordAnswer godoc
// @Summary Record an answer for a question
// @Description Upserts the selected choice for one question of an in-progress attempt. Re-answering before the section is submitted overwrites the earlier choice; answers to a submitted section are rejected.
// @Tags Mock Exam
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param answer_data body dto.RecordAnswerRequest true "Question and selected choice"
// @Success 200 {object} dto.AckResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt or question not found"
// @Failure 409 {object} dto.ErrorResponse "Section locked or attempt completed"
// @Router /attempts/{attempt_id}/answers [post]
func (c *ExamAttemptController) RecordAnswer(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}

	var req dto.RecordAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("RecordAnswer: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body: " + err.Error()})
		return
	}

	if err := c.attemptService.RecordAnswer(attemptID, req.UserID, req.QuestionID, req.SelectedChoice); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.AckResponse{OK: true})
}

// SubmitSection godoc
// @Summary Submit a section
// @Description Turns in one section of an in-progress attempt. The section locks permanently; submitting it a second time is rejected.
// @Tags Mock Exam
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param section path string true "Section" Enums(vocabulary, grammar_reading, listening)
// @Param submit_data body dto.SubmitSectionRequest true "Elapsed seconds for the section"
// @Success 200 {object} dto.AckResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Already submitted or attempt completed"
// @Router /attempts/{attempt_id}/sections/{section}/submit [post]
func (c *ExamAttemptController) SubmitSection(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	section, err := model.ParseSectionType(ctx.Param("section"))
	if err != nil {
		respondError(ctx, apperr.InvalidSection(ctx.Param("section")))
		return
	}

	var req dto.SubmitSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitSection: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body: " + err.Error()})
		return
	}

	if err := c.attemptService.SubmitSection(attemptID, req.UserID, section, req.ElapsedSeconds); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.AckResponse{OK: true})
}

// CompleteAttempt godoc
// @Summary Complete and score an attempt
// @Description Scores all three sections, evaluates the level's pass rules and marks the attempt completed. Requires every section to have been submitted first.
// @Tags Mock Exam
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param complete_data body dto.CompleteAttemptRequest true "User completing the attempt"
// @Success 200 {object} dto.CompleteAttemptResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Sections outstanding or already completed"
// @Router /attempts/{attempt_id}/complete [post]
func (c *ExamAttemptController) CompleteAttempt(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}

	var req dto.CompleteAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CompleteAttempt: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := c.attemptService.Complete(attemptID, req.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetResults godoc
// @Summary Get full results for a completed attempt
// @Description Returns attempt metadata, section scores, submission timings and a per-question review grouped by section. Only the attempt's owner can read it.
// @Tags Mock Exam
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param user_id query int true "Requesting user ID (temporary, until auth token)"
// @Success 200 {object} dto.AttemptResultsResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt not yet completed"
// @Router /attempts/{attempt_id}/results [get]
func (c *ExamAttemptController) GetResults(ctx *gin.Context) {
	attemptID, ok := parseIDParam(ctx, "attempt_id")
	if !ok {
		return
	}
	userID, ok := parseUserIDQuery(ctx)
	if !ok {
		return
	}

	resp, err := c.attemptService.GetResults(attemptID, userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListAttempts godoc
// @Summary List a user's attempts
// @Description Returns the user's attempt history, newest first, optionally filtered by level.
// @Tags Mock Exam
// @Produce json
// @Param user_id query int true "User ID (temporary, until auth token)"
// @Param level query string false "JLPT level filter" Enums(N5, N4, N3, N2, N1)
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID or level"
// @Router /attempts [get]
func (c *ExamAttemptController) ListAttempts(ctx *gin.Context) {
	userID, ok := parseUserIDQuery(ctx)
	if !ok {
		return
	}

	var level *model.Level
	if raw := ctx.Query("level"); raw != "" {
		parsed, err := model.ParseLevel(raw)
		if err != nil {
			respondError(ctx, apperr.InvalidLevel(raw))
			return
		}
		level = &parsed
	}

	attempts, err := c.attemptService.ListAttempts(userID, level)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

func parseUserIDQuery(ctx *gin.Context) (uint, bool) {
	raw := ctx.Query("user_id")
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user_id in query"})
		return 0, false
	}
	return uint(val), true
}

// respondError maps the engine's business-rule codes onto HTTP statuses.
// not_owner deliberately renders as the generic 404 body so attempt
// existence never leaks to non-owners. Anything without a code is an
// infrastructure failure and comes back 500 (retryable).
func respondError(ctx *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unhandled service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
		return
	}

	switch appErr.Code {
	case apperr.CodeInvalidLevel, apperr.CodeInvalidSection:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: string(appErr.Code), Message: appErr.Message})
	case apperr.CodeNotFound:
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Code: string(apperr.CodeNotFound), Message: appErr.Message})
	case apperr.CodeNotOwner:
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Code: string(apperr.CodeNotFound), Message: appErr.Message})
	case apperr.CodeInsufficientPool:
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Code: string(appErr.Code), Message: appErr.Message})
	case apperr.CodeSectionLocked, apperr.CodeAlreadySubmitted, apperr.CodeMissingSection,
		apperr.CodeAlreadyCompleted, apperr.CodeAttemptNotCompleted:
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Code: string(appErr.Code), Message: appErr.Message})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: string(appErr.Code), Message: appErr.Message})
	}
}
