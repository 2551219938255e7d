package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"vigor/internal/models/request_models"
	"vigor/internal/models/response_models"
	"vigor/internal/services"
	"vigor/pkg/utils"
)

type CoachController struct {
	coachService services.CoachServiceInterface
}

func NewCoachController(coachService services.CoachServiceInterface) *CoachController {
	return &CoachController{coachService: coachService}
}

// identityEmail prefers the token identity over whatever the body claims; the
// rate limiter keys on this value.
func identityEmail(c *gin.Context, req *request_models.ChatRequest) {
	if v, ok := c.Get("user_email"); ok {
		if email, ok := v.(string); ok && email != "" {
			req.Email = email
		}
	}
}

func respondRateLimited(c *gin.Context, rl *services.RateLimitError) {
	seconds := int(rl.Decision.ResetIn.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	c.Header("Retry-After", fmt.Sprintf("%d", seconds))
	c.JSON(http.StatusTooManyRequests, utils.APIResponse{
		Status:  "error",
		Code:    http.StatusTooManyRequests,
		Message: "Zu viele Nachrichten. Bitte warte kurz, bevor du weiterschreibst.",
		Data: response_models.RateLimitResponse{
			Remaining:      rl.Decision.Remaining,
			ResetInSeconds: seconds,
		},
	})
}

// Chat godoc
// @Summary Chat with the coach
// @Description Sends the conversation to the model chain and returns one reply
// @Tags Coach
// @Accept json
// @Produce json
// @Param request body request_models.ChatRequest true "Conversation payload"
// @Success 200 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /coach/chat [post]
func (ctrl *CoachController) Chat(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	identityEmail(c, &req)

	resp, err := ctrl.coachService.Chat(c.Request.Context(), req)
	if err != nil {
		var rl *services.RateLimitError
		if errors.As(err, &rl) {
			respondRateLimited(c, rl)
			return
		}
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}

// ChatStream godoc
// @Summary Chat with the coach, streamed
// @Description Same as /coach/chat but replies as server-sent events
// @Tags Coach
// @Accept json
// @Produce text/event-stream
// @Param request body request_models.ChatRequest true "Conversation payload"
// @Success 200 {string} string "SSE stream of delta events"
// @Failure 429 {object} utils.APIResponse
// @Router /coach/chat/stream [post]
func (ctrl *CoachController) ChatStream(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	identityEmail(c, &req)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	flusher, _ := c.Writer.(http.Flusher)

	started := false
	model, err := ctrl.coachService.ChatStream(c.Request.Context(), req, func(delta string) {
		started = true
		c.SSEvent("delta", delta)
		if flusher != nil {
			flusher.Flush()
		}
	})
	if err != nil {
		// Headers are only committed once the first delta flushed, so
		// pre-stream failures still get a proper JSON status.
		if !started {
			var rl *services.RateLimitError
			if errors.As(err, &rl) {
				respondRateLimited(c, rl)
				return
			}
			utils.HandleServiceError(c, err)
			return
		}
		c.SSEvent("error", err.Error())
		if flusher != nil {
			flusher.Flush()
		}
		return
	}

	c.SSEvent("done", model)
	if flusher != nil {
		flusher.Flush()
	}
}
