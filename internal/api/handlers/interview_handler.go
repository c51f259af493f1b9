package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prepwise/prepwise-backend/internal/services"
	"github.com/prepwise/prepwise-backend/internal/utils"
)

type InterviewHandler struct {
	interviews services.InterviewService
	feedback   services.FeedbackService
}

func NewInterviewHandler(interviews services.InterviewService, feedback services.FeedbackService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews, feedback: feedback}
}

type NextQuestionRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

type QuestionResponse struct {
	Question           string `json:"question"`
	MainQuestionNumber int    `json:"main_question_number"`
}

type InterviewCompletedResponse struct {
	Message            string `json:"message"`
	TotalMainQuestions int    `json:"total_main_questions"`
}

func (h *InterviewHandler) NextQuestion(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req NextQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.NextQuestion", "invalid request body", err))
		return
	}

	res, err := h.interviews.NextQuestion(c.Request.Context(), userID, req.SessionID)
	if err != nil {
		writeError(c, err)
		return
	}

	if res.Completed {
		c.JSON(http.StatusOK, InterviewCompletedResponse{
			Message:            "Interview completed",
			TotalMainQuestions: services.MaxMainQuestions,
		})
		return
	}

	c.JSON(http.StatusOK, QuestionResponse{
		Question:           res.Question,
		MainQuestionNumber: res.MainQuestionNumber,
	})
}

type SubmitAnswerRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Answer    string `json:"answer" binding:"required"`
}

type FollowUpResponse struct {
	FollowUpQuestion string `json:"follow_up_question"`
}

func (h *InterviewHandler) SubmitAnswer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.SubmitAnswer", "invalid request body", err))
		return
	}

	res, err := h.interviews.SubmitAnswer(c.Request.Context(), userID, req.SessionID, req.Answer)
	if err != nil {
		writeError(c, err)
		return
	}

	if res.FollowUpAlreadyAsked {
		c.JSON(http.StatusOK, gin.H{"message": "Follow-up already asked"})
		return
	}

	c.JSON(http.StatusOK, FollowUpResponse{FollowUpQuestion: res.FollowUpQuestion})
}

type FeedbackRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

func (h *InterviewHandler) Feedback(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "InterviewHandler.Feedback", "invalid request body", err))
		return
	}

	report, err := h.feedback.Generate(c.Request.Context(), userID, req.SessionID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
