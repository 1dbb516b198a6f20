package handlers

import (
	"net/http"

	"corpquiz/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService     *services.QuizService
	questionService *services.QuestionService
	importService   *services.ImportService
}

func NewQuizHandler(quizService *services.QuizService, questionService *services.QuestionService, importService *services.ImportService) *QuizHandler {
	return &QuizHandler{
		quizService:     quizService,
		questionService: questionService,
		importService:   importService,
	}
}

type createQuizBody struct {
	CompanyID uint `json:"company_id" binding:"required"`
	services.CreateQuizRequest
}

func (h *QuizHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var body createQuizBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.Create(c.Request.Context(), userID, body.CompanyID, &body.CreateQuizRequest)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (h *QuizHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.GetByID(c.Request.Context(), userID, quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.Update(c.Request.Context(), userID, quizID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), userID, quizID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *QuizHandler) Questions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "id")
	if !ok {
		return
	}

	questions, err := h.questionService.ListByQuiz(c.Request.Context(), userID, quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *QuizHandler) AddQuestion(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.AddQuestion(c.Request.Context(), userID, quizID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// Import bulk-loads quizzes into a company from a tabular payload.
func (h *QuizHandler) Import(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "company_id")
	if !ok {
		return
	}

	var req services.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.importService.Import(c.Request.Context(), userID, companyID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
