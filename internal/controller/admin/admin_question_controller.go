package admin

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

type AdminQuestionController struct {
	questionService service.AdminQuestionService
}

func NewAdminQuestionController(questionService service.AdminQuestionService) *AdminQuestionController {
	return &AdminQuestionController{questionService: questionService}
}

// CreateQuestion godoc
// @Summary (Admin) Create a question
// @Description Adds one multiple-choice question to the pool for a level and section.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param question_data body dto.QuestionCreateDTO true "Question data"
// @Success 201 {object} dto.AdminQuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /admin/questions [post]
func (c *AdminQuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateQuestion: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body: " + err.Error()})
		return
	}

	question, err := c.questionService.CreateQuestion(req)
	if err != nil {
		log.Error().Err(err).Str("level", req.Level).Str("section", req.Section).Msg("Admin CreateQuestion: Service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// CreateQuestions godoc
// @Summary (Admin) Create questions in bulk
// @Description Adds a batch of questions to the pool in one call.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param questions_data body dto.QuestionBulkCreateDTO true "Questions to create"
// @Success 201 {array} dto.AdminQuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /admin/questions/bulk [post]
func (c *AdminQuestionController) CreateQuestions(ctx *gin.Context) {
	var req dto.QuestionBulkCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateQuestions: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body: " + err.Error()})
		return
	}

	questions, err := c.questionService.CreateQuestions(req)
	if err != nil {
		log.Error().Err(err).Int("count", len(req.Questions)).Msg("Admin CreateQuestions: Service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, questions)
}

// ListQuestions godoc
// @Summary (Admin) List questions for a level and section
// @Description Lists the pool (active and inactive) for one level and section, including correct answers.
// @Tags Admin - Questions
// @Produce json
// @Param level query string true "JLPT level" Enums(N5, N4, N3, N2, N1)
// @Param section query string true "Section" Enums(vocabulary, grammar_reading, listening)
// @Success 200 {array} dto.AdminQuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid level or section"
// @Router /admin/questions [get]
func (c *AdminQuestionController) ListQuestions(ctx *gin.Context) {
	level, err := model.ParseLevel(ctx.Query("level"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	section, err := model.ParseSectionType(ctx.Query("section"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	questions, err := c.questionService.ListQuestions(level, section)
	if err != nil {
		log.Error().Err(err).Msg("Admin ListQuestions: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list questions"})
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// DeactivateQuestion godoc
// @Summary (Admin) Deactivate a question
// @Description Removes a question from the active pool; existing snapshots keep referencing it.
// @Tags Admin - Questions
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.AckResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{question_id} [delete]
func (c *AdminQuestionController) DeactivateQuestion(ctx *gin.Context) {
	raw := ctx.Param("question_id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question_id format"})
		return
	}

	if err := c.questionService.DeactivateQuestion(uint(id)); err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Code == apperr.CodeNotFound {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Code: string(appErr.Code), Message: appErr.Message})
			return
		}
		log.Error().Err(err).Uint64("questionID", id).Msg("Admin DeactivateQuestion: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to deactivate question"})
		return
	}
	ctx.JSON(http.StatusOK, dto.AckResponse{OK: true})
}
