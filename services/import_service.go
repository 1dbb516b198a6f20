package services

import (
	"context"
	"fmt"

	"corpquiz/models"
	"corpquiz/repository"
)

// ImportService bulk-loads quizzes from a tabular payload, one row per
// answer. Rows are grouped by quiz title, then question text, in input
// order. A quiz whose title already exists in the company is updated in
// place, which makes re-importing the same payload idempotent.
type ImportService struct {
	store repository.Store
	perms *PermissionService
}

func NewImportService(store repository.Store, perms *PermissionService) *ImportService {
	return &ImportService{store: store, perms: perms}
}

type ImportRow struct {
	QuizTitle       string `json:"quiz_title" binding:"required"`
	QuizDescription string `json:"quiz_description"`
	FrequencyInDays int    `json:"frequency_in_days" binding:"required,min=1"`
	QuestionText    string `json:"question_text" binding:"required"`
	AnswerText      string `json:"answer_text" binding:"required"`
	IsCorrect       bool   `json:"is_correct"`
}

type ImportRequest struct {
	Rows []ImportRow `json:"rows" binding:"required,min=1,dive"`
}

type ImportSummary struct {
	Created []string `json:"created"`
	Updated []string `json:"updated"`
}

type assembledQuiz struct {
	title       string
	description string
	frequency   int
	order       []string
	questions   map[string][]CreateAnswerRequest
}

func groupRows(rows []ImportRow) []*assembledQuiz {
	var quizzes []*assembledQuiz
	byTitle := map[string]*assembledQuiz{}

	for _, row := range rows {
		quiz, ok := byTitle[row.QuizTitle]
		if !ok {
			quiz = &assembledQuiz{
				title:       row.QuizTitle,
				description: row.QuizDescription,
				frequency:   row.FrequencyInDays,
				questions:   map[string][]CreateAnswerRequest{},
			}
			byTitle[row.QuizTitle] = quiz
			quizzes = append(quizzes, quiz)
		}
		if _, seen := quiz.questions[row.QuestionText]; !seen {
			quiz.order = append(quiz.order, row.QuestionText)
		}
		quiz.questions[row.QuestionText] = append(quiz.questions[row.QuestionText], CreateAnswerRequest{
			AnswerText: row.AnswerText,
			IsCorrect:  row.IsCorrect,
		})
	}
	return quizzes
}

func (q *assembledQuiz) toQuestions() []CreateQuestionRequest {
	questions := make([]CreateQuestionRequest, 0, len(q.order))
	for _, text := range q.order {
		questions = append(questions, CreateQuestionRequest{
			QuestionText: text,
			Answers:      q.questions[text],
		})
	}
	return questions
}

// Import runs the whole payload in one transaction. Admin-only.
func (s *ImportService) Import(ctx context.Context, userID, companyID uint, req *ImportRequest) (*ImportSummary, error) {
	quizzes := groupRows(req.Rows)
	for _, quiz := range quizzes {
		if err := validateQuizStructure(quiz.toQuestions()); err != nil {
			return nil, fmt.Errorf("quiz %q: %w", quiz.title, err)
		}
	}

	summary := &ImportSummary{Created: []string{}, Updated: []string{}}
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if _, err := s.perms.IsAdmin(ctx, uow, companyID, userID); err != nil {
			return err
		}

		for _, quiz := range quizzes {
			existing, err := uow.Quizzes().FindByTitleOrNone(ctx, companyID, quiz.title)
			if err != nil {
				return err
			}
			if existing == nil {
				if err := s.createQuiz(ctx, uow, userID, companyID, quiz); err != nil {
					return err
				}
				summary.Created = append(summary.Created, quiz.title)
			} else {
				if err := s.updateQuiz(ctx, uow, existing, quiz); err != nil {
					return err
				}
				summary.Updated = append(summary.Updated, quiz.title)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *ImportService) createQuiz(ctx context.Context, uow repository.UnitOfWork, userID, companyID uint, quiz *assembledQuiz) error {
	created, err := uow.Quizzes().AddOne(ctx, &models.Quiz{
		Title:           quiz.title,
		Description:     quiz.description,
		FrequencyInDays: quiz.frequency,
		CompanyID:       companyID,
		UserID:          userID,
	})
	if err != nil {
		return err
	}
	for _, text := range quiz.order {
		question, err := uow.Questions().AddOne(ctx, &models.Question{
			QuizID:       created.ID,
			QuestionText: text,
		})
		if err != nil {
			return err
		}
		for _, answer := range quiz.questions[text] {
			if _, err := uow.Answers().AddOne(ctx, &models.Answer{
				QuestionID: question.ID,
				AnswerText: answer.AnswerText,
				IsCorrect:  answer.IsCorrect,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// updateQuiz refreshes quiz fields and merges questions and answers by
// text: missing ones are created, existing ones updated.
func (s *ImportService) updateQuiz(ctx context.Context, uow repository.UnitOfWork, existing *models.Quiz, quiz *assembledQuiz) error {
	if _, err := uow.Quizzes().EditOne(ctx, existing.ID, map[string]any{
		"description":       quiz.description,
		"frequency_in_days": quiz.frequency,
	}); err != nil {
		return err
	}

	for _, text := range quiz.order {
		question, err := uow.Questions().FindByTextOrNone(ctx, existing.ID, text)
		if err != nil {
			return err
		}
		if question == nil {
			question, err = uow.Questions().AddOne(ctx, &models.Question{
				QuizID:       existing.ID,
				QuestionText: text,
			})
			if err != nil {
				return err
			}
		}
		for _, answer := range quiz.questions[text] {
			existingAnswer, err := uow.Answers().FindByTextOrNone(ctx, question.ID, answer.AnswerText)
			if err != nil {
				return err
			}
			if existingAnswer == nil {
				if _, err := uow.Answers().AddOne(ctx, &models.Answer{
					QuestionID: question.ID,
					AnswerText: answer.AnswerText,
					IsCorrect:  answer.IsCorrect,
				}); err != nil {
					return err
				}
			} else if existingAnswer.IsCorrect != answer.IsCorrect {
				if _, err := uow.Answers().EditOne(ctx, existingAnswer.ID, map[string]any{"is_correct": answer.IsCorrect}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
