package services

import (
	"context"
	"fmt"

	"corpquiz/apperrors"
	"corpquiz/models"
	"corpquiz/repository"
)

// QuestionService covers question and answer CRUD. The structural minimums
// (2 questions per quiz, 2 answers per question, 1 correct answer) are
// enforced at delete time by counting before removing the last permissible
// row.
type QuestionService struct {
	store repository.Store
	perms *PermissionService
}

func NewQuestionService(store repository.Store, perms *PermissionService) *QuestionService {
	return &QuestionService{store: store, perms: perms}
}

type AddQuestionRequest struct {
	QuestionText string                `json:"question_text" binding:"required"`
	Answers      []CreateAnswerRequest `json:"answers" binding:"required,min=2,dive"`
}

type UpdateQuestionRequest struct {
	QuestionText string `json:"question_text" binding:"required"`
}

type AddAnswerRequest struct {
	AnswerText string `json:"answer_text" binding:"required"`
	IsCorrect  bool   `json:"is_correct"`
}

type UpdateAnswerRequest struct {
	AnswerText string `json:"answer_text"`
	IsCorrect  *bool  `json:"is_correct"`
}

func (s *QuestionService) ListByQuiz(ctx context.Context, userID, quizID uint) ([]models.Question, error) {
	var questions []models.Question
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		quiz, err := uow.Quizzes().FindByID(ctx, quizID)
		if err != nil {
			return err
		}
		if _, err := s.perms.IsMember(ctx, uow, quiz.CompanyID, userID); err != nil {
			return err
		}
		questions, err = uow.Questions().ListByQuiz(ctx, quizID)
		return err
	})
	return questions, err
}

// AddQuestion appends a question with its answers. Admin-only; the new
// question must itself satisfy the answer minimums.
func (s *QuestionService) AddQuestion(ctx context.Context, userID, quizID uint, req *AddQuestionRequest) (*models.Question, error) {
	if len(req.Answers) < 2 {
		return nil, fmt.Errorf("%w: a question must have at least 2 answers", apperrors.ErrBadRequest)
	}
	correct := 0
	for _, a := range req.Answers {
		if a.IsCorrect {
			correct++
		}
	}
	if correct == 0 {
		return nil, fmt.Errorf("%w: a question must have at least one correct answer", apperrors.ErrBadRequest)
	}

	var question *models.Question
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		quiz, err := uow.Quizzes().FindByID(ctx, quizID)
		if err != nil {
			return err
		}
		if _, err := s.perms.IsAdmin(ctx, uow, quiz.CompanyID, userID); err != nil {
			return err
		}

		question, err = uow.Questions().AddOne(ctx, &models.Question{
			QuizID:       quizID,
			QuestionText: req.QuestionText,
		})
		if err != nil {
			return err
		}
		for _, aReq := range req.Answers {
			if _, err := uow.Answers().AddOne(ctx, &models.Answer{
				QuestionID: question.ID,
				AnswerText: aReq.AnswerText,
				IsCorrect:  aReq.IsCorrect,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	return question, err
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, userID, questionID uint, req *UpdateQuestionRequest) (*models.Question, error) {
	var question *models.Question
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if err := s.authorizeQuestionAdmin(ctx, uow, userID, questionID); err != nil {
			return err
		}
		var err error
		question, err = uow.Questions().EditOne(ctx, questionID, map[string]any{"question_text": req.QuestionText})
		return err
	})
	return question, err
}

// DeleteQuestion refuses to shrink a quiz below 2 questions.
func (s *QuestionService) DeleteQuestion(ctx context.Context, userID, questionID uint) error {
	return s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		question, err := uow.Questions().FindByID(ctx, questionID)
		if err != nil {
			return err
		}
		quiz, err := uow.Quizzes().FindByID(ctx, question.QuizID)
		if err != nil {
			return err
		}
		if _, err := s.perms.IsAdmin(ctx, uow, quiz.CompanyID, userID); err != nil {
			return err
		}

		count, err := uow.Questions().CountByQuiz(ctx, question.QuizID)
		if err != nil {
			return err
		}
		if count <= 2 {
			return fmt.Errorf("%w: a quiz must have at least 2 questions", apperrors.ErrPermissionDenied)
		}
		return uow.Questions().DeleteOne(ctx, questionID)
	})
}

func (s *QuestionService) ListAnswers(ctx context.Context, userID, questionID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		question, err := uow.Questions().FindByID(ctx, questionID)
		if err != nil {
			return err
		}
		quiz, err := uow.Quizzes().FindByID(ctx, question.QuizID)
		if err != nil {
			return err
		}
		if _, err := s.perms.IsMember(ctx, uow, quiz.CompanyID, userID); err != nil {
			return err
		}
		answers, err = uow.Answers().ListByQuestion(ctx, questionID)
		return err
	})
	return answers, err
}

func (s *QuestionService) AddAnswer(ctx context.Context, userID, questionID uint, req *AddAnswerRequest) (*models.Answer, error) {
	var answer *models.Answer
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if err := s.authorizeQuestionAdmin(ctx, uow, userID, questionID); err != nil {
			return err
		}
		var err error
		answer, err = uow.Answers().AddOne(ctx, &models.Answer{
			QuestionID: questionID,
			AnswerText: req.AnswerText,
			IsCorrect:  req.IsCorrect,
		})
		return err
	})
	return answer, err
}

// UpdateAnswer refuses to flip the last correct answer of a question to
// incorrect.
func (s *QuestionService) UpdateAnswer(ctx context.Context, userID, answerID uint, req *UpdateAnswerRequest) (*models.Answer, error) {
	var answer *models.Answer
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		existing, err := uow.Answers().FindByID(ctx, answerID)
		if err != nil {
			return err
		}
		if err := s.authorizeQuestionAdmin(ctx, uow, userID, existing.QuestionID); err != nil {
			return err
		}

		updates := map[string]any{}
		if req.AnswerText != "" {
			updates["answer_text"] = req.AnswerText
		}
		if req.IsCorrect != nil {
			if existing.IsCorrect && !*req.IsCorrect {
				correct, err := uow.Answers().CountCorrectByQuestion(ctx, existing.QuestionID)
				if err != nil {
					return err
				}
				if correct <= 1 {
					return fmt.Errorf("%w: a question must have at least one correct answer", apperrors.ErrPermissionDenied)
				}
			}
			updates["is_correct"] = *req.IsCorrect
		}

		answer, err = uow.Answers().EditOne(ctx, answerID, updates)
		return err
	})
	return answer, err
}

// DeleteAnswer refuses to shrink a question below 2 answers or to remove
// its last correct answer.
func (s *QuestionService) DeleteAnswer(ctx context.Context, userID, answerID uint) error {
	return s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		answer, err := uow.Answers().FindByID(ctx, answerID)
		if err != nil {
			return err
		}
		if err := s.authorizeQuestionAdmin(ctx, uow, userID, answer.QuestionID); err != nil {
			return err
		}

		count, err := uow.Answers().CountByQuestion(ctx, answer.QuestionID)
		if err != nil {
			return err
		}
		if count <= 2 {
			return fmt.Errorf("%w: a question must have at least 2 answers", apperrors.ErrPermissionDenied)
		}
		if answer.IsCorrect {
			correct, err := uow.Answers().CountCorrectByQuestion(ctx, answer.QuestionID)
			if err != nil {
				return err
			}
			if correct <= 1 {
				return fmt.Errorf("%w: a question must have at least one correct answer", apperrors.ErrPermissionDenied)
			}
		}
		return uow.Answers().DeleteOne(ctx, answerID)
	})
}

func (s *QuestionService) authorizeQuestionAdmin(ctx context.Context, uow repository.UnitOfWork, userID, questionID uint) error {
	question, err := uow.Questions().FindByID(ctx, questionID)
	if err != nil {
		return err
	}
	quiz, err := uow.Quizzes().FindByID(ctx, question.QuizID)
	if err != nil {
		return err
	}
	_, err = s.perms.IsAdmin(ctx, uow, quiz.CompanyID, userID)
	return err
}
