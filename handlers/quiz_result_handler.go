package handlers

import (
	"net/http"

	"corpquiz/services"

	"github.com/gin-gonic/gin"
)

type QuizResultHandler struct {
	voteService      *services.VoteService
	analyticsService *services.AnalyticsService
}

func NewQuizResultHandler(voteService *services.VoteService, analyticsService *services.AnalyticsService) *QuizResultHandler {
	return &QuizResultHandler{voteService: voteService, analyticsService: analyticsService}
}

func (h *QuizResultHandler) Vote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "company_id")
	if !ok {
		return
	}
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		return
	}

	var req services.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.voteService.Vote(c.Request.Context(), userID, companyID, quizID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *QuizResultHandler) ExportCSV(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "company_id")
	if !ok {
		return
	}
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		return
	}

	data, err := h.voteService.ExportCSV(c.Request.Context(), userID, companyID, quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="quiz_results.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *QuizResultHandler) ExportJSON(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "company_id")
	if !ok {
		return
	}
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		return
	}

	votes, err := h.voteService.ExportJSON(c.Request.Context(), userID, companyID, quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, votes)
}

// MyAverageScore is the caller's overall rating across all attempts.
func (h *QuizResultHandler) MyAverageScore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	avg, err := h.analyticsService.UserOverallRating(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"average_score": avg})
}

// MemberAverageScore is a member's average within a company. Admin-only.
func (h *QuizResultHandler) MemberAverageScore(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "company_id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	from, to, ok := rangeParams(c)
	if !ok {
		return
	}

	avg, err := h.analyticsService.MemberAverageScore(c.Request.Context(), adminID, companyID, userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID, "average_score": avg})
}
