package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"
	"time"

	"corpquiz/apperrors"
	"corpquiz/models"
	"corpquiz/repository"
)

const voteTTL = 48 * time.Hour

// VoteService grades attempts, persists the aggregate QuizResult and
// mirrors every per-question vote into the KV store for later export.
type VoteService struct {
	store repository.Store
	kv    VoteStore
	perms *PermissionService
}

func NewVoteService(store repository.Store, kv VoteStore, perms *PermissionService) *VoteService {
	return &VoteService{store: store, kv: kv, perms: perms}
}

type VoteRequest struct {
	// Answers maps question id to the chosen answer id.
	Answers map[uint]uint `json:"answers" binding:"required"`
}

// Vote grades the attempt inside one transaction. The KV side-writes are
// best-effort: a failing mirror never fails the attempt, and every write is
// attempted even if an earlier one failed.
func (s *VoteService) Vote(ctx context.Context, userID, companyID, quizID uint, req *VoteRequest) (*models.QuizResult, error) {
	if len(req.Answers) == 0 {
		return nil, fmt.Errorf("%w: no answers submitted", apperrors.ErrBadRequest)
	}

	var result *models.QuizResult
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if _, err := s.perms.IsMember(ctx, uow, companyID, userID); err != nil {
			return err
		}
		quiz, err := uow.Quizzes().FindByID(ctx, quizID)
		if err != nil {
			return err
		}
		if quiz.CompanyID != companyID {
			return apperrors.ErrQuizNotFound
		}

		totalQuestions := 0
		totalAnswers := 0
		now := time.Now().UTC()

		for questionID, answerID := range req.Answers {
			question, err := uow.Questions().FindByID(ctx, questionID)
			if err != nil {
				return err
			}
			if question.QuizID != quizID {
				return apperrors.ErrQuestionNotFound
			}
			answer, err := uow.Answers().FindByID(ctx, answerID)
			if err != nil {
				return err
			}
			if answer.QuestionID != questionID {
				return apperrors.ErrAnswerNotFound
			}

			if answer.IsCorrect {
				totalAnswers++
			}
			totalQuestions++

			vote := models.UserQuizVote{
				UserID:       userID,
				CompanyID:    companyID,
				QuizID:       quizID,
				QuestionID:   questionID,
				QuestionText: question.QuestionText,
				AnswerText:   answer.AnswerText,
				IsCorrect:    answer.IsCorrect,
				Timestamp:    now.Unix(),
			}
			key := models.VoteKey(userID, companyID, quizID, questionID)
			if err := s.kv.Set(ctx, key, vote, voteTTL); err != nil {
				log.Printf("Failed to store vote %s in Redis: %v", key, err)
			}
		}

		score := roundScore(float64(totalAnswers) / float64(totalQuestions) * 100)
		result, err = uow.Results().AddOne(ctx, &models.QuizResult{
			UserID:         userID,
			QuizID:         quizID,
			CompanyID:      companyID,
			TotalQuestions: totalQuestions,
			TotalAnswers:   totalAnswers,
			Score:          score,
		})
		if err != nil {
			return err
		}

		_, err = uow.Notifications().AddOne(ctx, &models.Notification{
			UserID:    userID,
			QuizID:    &quizID,
			Message:   fmt.Sprintf("You completed the quiz '%s' with a score of %.2f!", quiz.Title, score),
			Status:    models.NotificationUnread,
			Timestamp: now,
		})
		return err
	})
	return result, err
}

// roundScore keeps two decimals.
func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}

// CollectVotes fetches and decodes every KV vote of a quiz. Admin-only.
// An empty userID (0) collects for all users.
func (s *VoteService) CollectVotes(ctx context.Context, adminID, companyID, quizID, userID uint) ([]models.UserQuizVote, error) {
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		_, err := s.perms.IsAdmin(ctx, uow, companyID, adminID)
		return err
	})
	if err != nil {
		return nil, err
	}

	pattern := models.VoteKeyPattern(companyID, quizID)
	if userID != 0 {
		pattern = models.UserVoteKeyPattern(userID, companyID, quizID)
	}
	keys, err := s.kv.ScanKeys(ctx, pattern)
	if err != nil {
		return nil, err
	}

	votes := make([]models.UserQuizVote, 0, len(keys))
	for _, key := range keys {
		raw, err := s.kv.Get(ctx, key)
		if err != nil {
			// Expired between scan and fetch.
			continue
		}
		var vote models.UserQuizVote
		if err := json.Unmarshal([]byte(raw), &vote); err != nil {
			log.Printf("Skipping malformed vote record %s: %v", key, err)
			continue
		}
		votes = append(votes, vote)
	}

	sort.Slice(votes, func(i, j int) bool {
		if votes[i].UserID != votes[j].UserID {
			return votes[i].UserID < votes[j].UserID
		}
		return votes[i].QuestionID < votes[j].QuestionID
	})
	return votes, nil
}

var csvHeader = []string{"User ID", "Company ID", "Quiz ID", "Question ID", "Question Text", "Answer Text", "Is Correct", "Timestamp"}

// ExportCSV renders collected votes as CSV, one row per vote.
func (s *VoteService) ExportCSV(ctx context.Context, adminID, companyID, quizID uint) ([]byte, error) {
	votes, err := s.CollectVotes(ctx, adminID, companyID, quizID, 0)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, v := range votes {
		record := []string{
			strconv.FormatUint(uint64(v.UserID), 10),
			strconv.FormatUint(uint64(v.CompanyID), 10),
			strconv.FormatUint(uint64(v.QuizID), 10),
			strconv.FormatUint(uint64(v.QuestionID), 10),
			v.QuestionText,
			v.AnswerText,
			strconv.FormatBool(v.IsCorrect),
			strconv.FormatInt(v.Timestamp, 10),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON returns collected votes as a slice ready for JSON rendering.
func (s *VoteService) ExportJSON(ctx context.Context, adminID, companyID, quizID uint) ([]models.UserQuizVote, error) {
	return s.CollectVotes(ctx, adminID, companyID, quizID, 0)
}
