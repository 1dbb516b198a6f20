package services

import (
	"context"
	"fmt"
	"time"

	"corpquiz/apperrors"
	"corpquiz/models"
	"corpquiz/repository"
)

type QuizService struct {
	store repository.Store
	perms *PermissionService
}

func NewQuizService(store repository.Store, perms *PermissionService) *QuizService {
	return &QuizService{store: store, perms: perms}
}

type CreateQuizRequest struct {
	Title           string                  `json:"title" binding:"required"`
	Description     string                  `json:"description"`
	FrequencyInDays int                     `json:"frequency_in_days" binding:"required,min=1"`
	Questions       []CreateQuestionRequest `json:"questions" binding:"required,min=2,dive"`
}

type CreateQuestionRequest struct {
	QuestionText string                `json:"question_text" binding:"required"`
	Answers      []CreateAnswerRequest `json:"answers" binding:"required,min=2,dive"`
}

type CreateAnswerRequest struct {
	AnswerText string `json:"answer_text" binding:"required"`
	IsCorrect  bool   `json:"is_correct"`
}

type UpdateQuizRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	FrequencyInDays int    `json:"frequency_in_days"`
}

func validateQuizStructure(questions []CreateQuestionRequest) error {
	if len(questions) < 2 {
		return fmt.Errorf("%w: a quiz must have at least 2 questions", apperrors.ErrBadRequest)
	}
	for _, q := range questions {
		if len(q.Answers) < 2 {
			return fmt.Errorf("%w: a question must have at least 2 answers", apperrors.ErrBadRequest)
		}
		correct := 0
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct++
			}
		}
		if correct == 0 {
			return fmt.Errorf("%w: a question must have at least one correct answer", apperrors.ErrBadRequest)
		}
	}
	return nil
}

// Create writes the quiz with all questions and answers in one transaction
// and notifies every company member about the new quiz. Admin-only.
func (s *QuizService) Create(ctx context.Context, userID, companyID uint, req *CreateQuizRequest) (*models.Quiz, error) {
	if err := validateQuizStructure(req.Questions); err != nil {
		return nil, err
	}

	var quiz *models.Quiz
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if _, err := s.perms.IsAdmin(ctx, uow, companyID, userID); err != nil {
			return err
		}

		created, err := uow.Quizzes().AddOne(ctx, &models.Quiz{
			Title:           req.Title,
			Description:     req.Description,
			FrequencyInDays: req.FrequencyInDays,
			CompanyID:       companyID,
			UserID:          userID,
		})
		if err != nil {
			return err
		}

		for _, qReq := range req.Questions {
			question, err := uow.Questions().AddOne(ctx, &models.Question{
				QuizID:       created.ID,
				QuestionText: qReq.QuestionText,
			})
			if err != nil {
				return err
			}
			for _, aReq := range qReq.Answers {
				if _, err := uow.Answers().AddOne(ctx, &models.Answer{
					QuestionID: question.ID,
					AnswerText: aReq.AnswerText,
					IsCorrect:  aReq.IsCorrect,
				}); err != nil {
					return err
				}
			}
		}

		if err := s.announceQuiz(ctx, uow, created); err != nil {
			return err
		}

		quiz, err = uow.Quizzes().FindWithQuestions(ctx, created.ID)
		return err
	})
	return quiz, err
}

func (s *QuizService) announceQuiz(ctx context.Context, uow repository.UnitOfWork, quiz *models.Quiz) error {
	members, _, err := uow.Members().ListByCompany(ctx, quiz.CompanyID, 0, 0)
	if err != nil {
		return err
	}
	quizID := quiz.ID
	for _, member := range members {
		if _, err := uow.Notifications().AddOne(ctx, &models.Notification{
			UserID:    member.UserID,
			QuizID:    &quizID,
			Message:   fmt.Sprintf("A new quiz '%s' is available in your company!", quiz.Title),
			Status:    models.NotificationUnread,
			Timestamp: time.Now().UTC(),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *QuizService) GetByID(ctx context.Context, userID, quizID uint) (*models.Quiz, error) {
	var quiz *models.Quiz
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		found, err := uow.Quizzes().FindWithQuestions(ctx, quizID)
		if err != nil {
			return err
		}
		if _, err := s.perms.IsMember(ctx, uow, found.CompanyID, userID); err != nil {
			return err
		}
		quiz = found
		return nil
	})
	return quiz, err
}

func (s *QuizService) ListByCompany(ctx context.Context, userID, companyID uint, skip, limit int) ([]models.Quiz, int64, error) {
	var (
		quizzes []models.Quiz
		total   int64
	)
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if _, err := s.perms.IsMember(ctx, uow, companyID, userID); err != nil {
			return err
		}
		var err error
		quizzes, total, err = uow.Quizzes().ListByCompany(ctx, companyID, skip, limit)
		return err
	})
	return quizzes, total, err
}

// Update edits title, description and cadence only. Admin-only.
func (s *QuizService) Update(ctx context.Context, userID, quizID uint, req *UpdateQuizRequest) (*models.Quiz, error) {
	updates := map[string]any{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.FrequencyInDays > 0 {
		updates["frequency_in_days"] = req.FrequencyInDays
	}

	var quiz *models.Quiz
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		found, err := uow.Quizzes().FindByID(ctx, quizID)
		if err != nil {
			return err
		}
		if _, err := s.perms.IsAdmin(ctx, uow, found.CompanyID, userID); err != nil {
			return err
		}
		quiz, err = uow.Quizzes().EditOne(ctx, quizID, updates)
		return err
	})
	return quiz, err
}

// Delete cascades to questions and answers through the schema. Admin-only.
func (s *QuizService) Delete(ctx context.Context, userID, quizID uint) error {
	return s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		quiz, err := uow.Quizzes().FindByID(ctx, quizID)
		if err != nil {
			return err
		}
		if _, err := s.perms.IsAdmin(ctx, uow, quiz.CompanyID, userID); err != nil {
			return err
		}
		return uow.Quizzes().DeleteOne(ctx, quizID)
	})
}
