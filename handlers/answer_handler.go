package handlers

import (
	"net/http"

	"corpquiz/services"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	questionService *services.QuestionService
}

func NewAnswerHandler(questionService *services.QuestionService) *AnswerHandler {
	return &AnswerHandler{questionService: questionService}
}

func (h *AnswerHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	answerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.questionService.UpdateAnswer(c.Request.Context(), userID, answerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

func (h *AnswerHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	answerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.questionService.DeleteAnswer(c.Request.Context(), userID, answerID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
