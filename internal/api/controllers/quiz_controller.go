package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vigor/internal/models/request_models"
	"vigor/internal/services"
	"vigor/pkg/utils"
)

type QuizController struct {
	quizService services.QuizServiceInterface
}

func NewQuizController(quizService services.QuizServiceInterface) *QuizController {
	return &QuizController{quizService: quizService}
}

// StartQuiz godoc
// @Summary Start or resume a quiz session
// @Description Opens a new traversal, or resumes a saved one when session_id is sent
// @Tags Quiz
// @Accept json
// @Produce json
// @Param request body request_models.QuizStartRequest false "Optional resume payload"
// @Success 200 {object} utils.APIResponse
// @Router /quiz/start [post]
func (q *QuizController) StartQuiz(c *gin.Context) {
	var req request_models.QuizStartRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
			return
		}
	}

	resp, err := q.quizService.Start(c.Request.Context(), req.SessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Quiz session ready")
}

// SaveAnswer godoc
// @Summary Save one answer
// @Description Upserts the answer for a question without moving the traversal
// @Tags Quiz
// @Accept json
// @Produce json
// @Param request body request_models.QuizAnswerRequest true "Answer payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /quiz/answer [post]
func (q *QuizController) SaveAnswer(c *gin.Context) {
	var req request_models.QuizAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := q.quizService.Answer(c.Request.Context(), req.SessionID, req.QuestionID, req.Value)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Answer saved")
}

// Next godoc
// @Summary Advance one step
// @Description Moves forward; on the last step scores the quiz and returns the result
// @Tags Quiz
// @Accept json
// @Produce json
// @Param request body request_models.QuizStepRequest true "Step payload"
// @Success 200 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /quiz/next [post]
func (q *QuizController) Next(c *gin.Context) {
	var req request_models.QuizStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	meta := services.SubmissionMeta{
		Source:    "quiz-funnel",
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	}
	resp, err := q.quizService.Next(c.Request.Context(), req.SessionID, meta)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}

// Back godoc
// @Summary Step one item back
// @Tags Quiz
// @Accept json
// @Produce json
// @Param request body request_models.QuizStepRequest true "Step payload"
// @Success 200 {object} utils.APIResponse
// @Router /quiz/back [post]
func (q *QuizController) Back(c *gin.Context) {
	var req request_models.QuizStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := q.quizService.Back(c.Request.Context(), req.SessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}

// State godoc
// @Summary Get the current traversal state
// @Tags Quiz
// @Produce json
// @Param session_id query string true "Session id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /quiz/state [get]
func (q *QuizController) State(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "session_id is required")
		return
	}

	resp, err := q.quizService.State(c.Request.Context(), sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}
