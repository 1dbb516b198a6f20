package services

import (
	"context"
	"sort"
	"time"

	"corpquiz/models"
	"corpquiz/repository"
)

// AnalyticsService serves the derived read-only queries. Company-scoped
// queries are admin-gated; user-scoped ones are self-scoped by the handlers
// passing the current user.
type AnalyticsService struct {
	store repository.Store
	perms *PermissionService
}

func NewAnalyticsService(store repository.Store, perms *PermissionService) *AnalyticsService {
	return &AnalyticsService{store: store, perms: perms}
}

type ScorePoint struct {
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type QuizScores struct {
	QuizID uint         `json:"quiz_id"`
	Scores []ScorePoint `json:"scores"`
}

type LastAttempt struct {
	QuizID    uint      `json:"quiz_id"`
	CreatedAt time.Time `json:"created_at"`
}

type MemberAverage struct {
	UserID       uint    `json:"user_id"`
	AverageScore float64 `json:"average_score"`
}

type MemberLastAttempt struct {
	UserID    uint       `json:"user_id"`
	CreatedAt *time.Time `json:"created_at"` // null when the member never attempted
}

// UserOverallRating averages every attempt of a user.
func (s *AnalyticsService) UserOverallRating(ctx context.Context, userID uint) (float64, error) {
	var avg float64
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		var err error
		avg, err = uow.Results().AverageScoreByUser(ctx, userID)
		return err
	})
	return avg, err
}

// UserQuizScores groups a user's attempts by quiz, each as an ordered
// score/timestamp sequence.
func (s *AnalyticsService) UserQuizScores(ctx context.Context, userID uint) ([]QuizScores, error) {
	var results []models.QuizResult
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		var err error
		results, err = uow.Results().ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	byQuiz := map[uint][]ScorePoint{}
	var order []uint
	for _, r := range results {
		if _, seen := byQuiz[r.QuizID]; !seen {
			order = append(order, r.QuizID)
		}
		byQuiz[r.QuizID] = append(byQuiz[r.QuizID], ScorePoint{Score: r.Score, CreatedAt: r.CreatedAt})
	}

	grouped := make([]QuizScores, 0, len(order))
	for _, quizID := range order {
		grouped = append(grouped, QuizScores{QuizID: quizID, Scores: byQuiz[quizID]})
	}
	return grouped, nil
}

// UserLastAttempts returns the newest attempt timestamp per quiz for a user.
func (s *AnalyticsService) UserLastAttempts(ctx context.Context, userID uint) ([]LastAttempt, error) {
	var results []models.QuizResult
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		var err error
		results, err = uow.Results().ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	latest := map[uint]time.Time{}
	for _, r := range results {
		if r.CreatedAt.After(latest[r.QuizID]) {
			latest[r.QuizID] = r.CreatedAt
		}
	}

	attempts := make([]LastAttempt, 0, len(latest))
	for quizID, at := range latest {
		attempts = append(attempts, LastAttempt{QuizID: quizID, CreatedAt: at})
	}
	sort.Slice(attempts, func(i, j int) bool { return attempts[i].QuizID < attempts[j].QuizID })
	return attempts, nil
}

// CompanyMemberAverages returns each member's average score within the
// company, in an optional date range. Admin-only.
func (s *AnalyticsService) CompanyMemberAverages(ctx context.Context, adminID, companyID uint, from, to *time.Time) ([]MemberAverage, error) {
	var averages []MemberAverage
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if _, err := s.perms.IsAdmin(ctx, uow, companyID, adminID); err != nil {
			return err
		}
		members, _, err := uow.Members().ListByCompany(ctx, companyID, 0, 0)
		if err != nil {
			return err
		}
		for _, member := range members {
			avg, err := uow.Results().AverageScoreByUserInCompany(ctx, member.UserID, companyID, from, to)
			if err != nil {
				return err
			}
			averages = append(averages, MemberAverage{UserID: member.UserID, AverageScore: avg})
		}
		return nil
	})
	return averages, err
}

// MemberAverageScore returns one member's average in the company. Admin-only.
func (s *AnalyticsService) MemberAverageScore(ctx context.Context, adminID, companyID, userID uint, from, to *time.Time) (float64, error) {
	var avg float64
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if _, err := s.perms.IsAdmin(ctx, uow, companyID, adminID); err != nil {
			return err
		}
		var err error
		avg, err = uow.Results().AverageScoreByUserInCompany(ctx, userID, companyID, from, to)
		return err
	})
	return avg, err
}

// MemberQuizTrend returns one member's scores on one quiz over a date
// range, oldest first. Admin-only.
func (s *AnalyticsService) MemberQuizTrend(ctx context.Context, adminID, companyID, userID, quizID uint, from, to *time.Time) ([]ScorePoint, error) {
	var points []ScorePoint
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if _, err := s.perms.IsAdmin(ctx, uow, companyID, adminID); err != nil {
			return err
		}
		results, err := uow.Results().ListByUserAndQuiz(ctx, userID, quizID, from, to)
		if err != nil {
			return err
		}
		points = make([]ScorePoint, 0, len(results))
		for _, r := range results {
			points = append(points, ScorePoint{Score: r.Score, CreatedAt: r.CreatedAt})
		}
		return nil
	})
	return points, err
}

// CompanyLastAttempts returns, for every member, the newest attempt
// timestamp in the company, or null for members who never attempted.
// Admin-only.
func (s *AnalyticsService) CompanyLastAttempts(ctx context.Context, adminID, companyID uint) ([]MemberLastAttempt, error) {
	var attempts []MemberLastAttempt
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if _, err := s.perms.IsAdmin(ctx, uow, companyID, adminID); err != nil {
			return err
		}
		members, _, err := uow.Members().ListByCompany(ctx, companyID, 0, 0)
		if err != nil {
			return err
		}
		for _, member := range members {
			last, err := uow.Results().LastAttemptByUserInCompany(ctx, member.UserID, companyID)
			if err != nil {
				return err
			}
			attempt := MemberLastAttempt{UserID: member.UserID}
			if last != nil {
				at := last.CreatedAt
				attempt.CreatedAt = &at
			}
			attempts = append(attempts, attempt)
		}
		return nil
	})
	return attempts, err
}
