package handlers

import (
	"net/http"

	"corpquiz/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) MyQuizScores(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	scores, err := h.analyticsService.UserQuizScores(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}

func (h *AnalyticsHandler) MyLastAttempts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	attempts, err := h.analyticsService.UserLastAttempts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}

func (h *AnalyticsHandler) CompanyMemberAverages(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	from, to, ok := rangeParams(c)
	if !ok {
		return
	}

	averages, err := h.analyticsService.CompanyMemberAverages(c.Request.Context(), adminID, companyID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, averages)
}

func (h *AnalyticsHandler) MemberQuizTrend(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		return
	}
	from, to, ok := rangeParams(c)
	if !ok {
		return
	}

	trend, err := h.analyticsService.MemberQuizTrend(c.Request.Context(), adminID, companyID, userID, quizID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

func (h *AnalyticsHandler) CompanyLastAttempts(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	attempts, err := h.analyticsService.CompanyLastAttempts(c.Request.Context(), adminID, companyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}
