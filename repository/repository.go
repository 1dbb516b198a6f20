// Package repository holds the per-entity repositories and the Unit of Work
// that scopes them to a single transactional session. Repositories never
// commit; the scope that opened the session does.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"corpquiz/apperrors"
	"corpquiz/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	AddOne(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context, skip, limit int) ([]models.User, int64, error)
	EditOne(ctx context.Context, id uint, updates map[string]any) (*models.User, error)
	DeleteOne(ctx context.Context, id uint) error
}

type CompanyRepository interface {
	AddOne(ctx context.Context, company *models.Company) (*models.Company, error)
	FindByID(ctx context.Context, id uint) (*models.Company, error)
	// FindVisibleTo returns companies that are either visible or owned by
	// the given user, newest first.
	FindVisibleTo(ctx context.Context, userID uint, skip, limit int) ([]models.Company, int64, error)
	EditOne(ctx context.Context, id uint, updates map[string]any) (*models.Company, error)
	DeleteOne(ctx context.Context, id uint) error
}

type MemberRepository interface {
	AddOne(ctx context.Context, member *models.CompanyMember) (*models.CompanyMember, error)
	// FindByCompanyAndUser fails with ErrMemberNotFound when no row exists.
	FindByCompanyAndUser(ctx context.Context, companyID, userID uint) (*models.CompanyMember, error)
	ListByCompany(ctx context.Context, companyID uint, skip, limit int) ([]models.CompanyMember, int64, error)
	ListAdmins(ctx context.Context, companyID uint, skip, limit int) ([]models.CompanyMember, int64, error)
	// ListAll returns every membership row. Used by the reminder scheduler.
	ListAll(ctx context.Context) ([]models.CompanyMember, error)
	EditOne(ctx context.Context, id uint, updates map[string]any) (*models.CompanyMember, error)
	DeleteOne(ctx context.Context, id uint) error
}

type InvitationRepository interface {
	AddOne(ctx context.Context, inv *models.CompanyInvitation) (*models.CompanyInvitation, error)
	FindByID(ctx context.Context, id uint) (*models.CompanyInvitation, error)
	HasPending(ctx context.Context, companyID, userID uint) (bool, error)
	ListForUser(ctx context.Context, userID uint, skip, limit int) ([]models.CompanyInvitation, int64, error)
	// ListForOwner returns invitations for every company owned by ownerID.
	ListForOwner(ctx context.Context, ownerID uint, skip, limit int) ([]models.CompanyInvitation, int64, error)
	EditOne(ctx context.Context, id uint, updates map[string]any) (*models.CompanyInvitation, error)
	DeleteOne(ctx context.Context, id uint) error
}

type RequestRepository interface {
	AddOne(ctx context.Context, req *models.CompanyRequest) (*models.CompanyRequest, error)
	FindByID(ctx context.Context, id uint) (*models.CompanyRequest, error)
	HasPending(ctx context.Context, companyID, userID uint) (bool, error)
	ListForUser(ctx context.Context, userID uint, skip, limit int) ([]models.CompanyRequest, int64, error)
	ListForOwner(ctx context.Context, ownerID uint, skip, limit int) ([]models.CompanyRequest, int64, error)
	EditOne(ctx context.Context, id uint, updates map[string]any) (*models.CompanyRequest, error)
	DeleteOne(ctx context.Context, id uint) error
}

type QuizRepository interface {
	AddOne(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error)
	FindByID(ctx context.Context, id uint) (*models.Quiz, error)
	// FindWithQuestions preloads questions and their answers.
	FindWithQuestions(ctx context.Context, id uint) (*models.Quiz, error)
	ListByCompany(ctx context.Context, companyID uint, skip, limit int) ([]models.Quiz, int64, error)
	// FindByTitleOrNone returns (nil, nil) when no quiz with that title
	// exists in the company.
	FindByTitleOrNone(ctx context.Context, companyID uint, title string) (*models.Quiz, error)
	EditOne(ctx context.Context, id uint, updates map[string]any) (*models.Quiz, error)
	DeleteOne(ctx context.Context, id uint) error
}

type QuestionRepository interface {
	AddOne(ctx context.Context, question *models.Question) (*models.Question, error)
	FindByID(ctx context.Context, id uint) (*models.Question, error)
	ListByQuiz(ctx context.Context, quizID uint) ([]models.Question, error)
	CountByQuiz(ctx context.Context, quizID uint) (int64, error)
	FindByTextOrNone(ctx context.Context, quizID uint, text string) (*models.Question, error)
	EditOne(ctx context.Context, id uint, updates map[string]any) (*models.Question, error)
	DeleteOne(ctx context.Context, id uint) error
}

type AnswerRepository interface {
	AddOne(ctx context.Context, answer *models.Answer) (*models.Answer, error)
	FindByID(ctx context.Context, id uint) (*models.Answer, error)
	ListByQuestion(ctx context.Context, questionID uint) ([]models.Answer, error)
	CountByQuestion(ctx context.Context, questionID uint) (int64, error)
	CountCorrectByQuestion(ctx context.Context, questionID uint) (int64, error)
	FindByTextOrNone(ctx context.Context, questionID uint, text string) (*models.Answer, error)
	EditOne(ctx context.Context, id uint, updates map[string]any) (*models.Answer, error)
	DeleteOne(ctx context.Context, id uint) error
}

type ResultRepository interface {
	AddOne(ctx context.Context, result *models.QuizResult) (*models.QuizResult, error)
	// LastAttemptByUser returns (nil, nil) when the user has never voted.
	LastAttemptByUser(ctx context.Context, userID uint) (*models.QuizResult, error)
	LastAttemptByUserInCompany(ctx context.Context, userID, companyID uint) (*models.QuizResult, error)
	ListByUser(ctx context.Context, userID uint) ([]models.QuizResult, error)
	ListByUserAndQuiz(ctx context.Context, userID, quizID uint, from, to *time.Time) ([]models.QuizResult, error)
	AverageScoreByUser(ctx context.Context, userID uint) (float64, error)
	AverageScoreByUserInCompany(ctx context.Context, userID, companyID uint, from, to *time.Time) (float64, error)
}

type NotificationRepository interface {
	AddOne(ctx context.Context, n *models.Notification) (*models.Notification, error)
	FindByID(ctx context.Context, id uint) (*models.Notification, error)
	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID uint, skip, limit int) ([]models.Notification, int64, error)
	EditOne(ctx context.Context, id uint, updates map[string]any) (*models.Notification, error)
}

// UnitOfWork groups one repository per entity over a single transactional
// session. Commit and Rollback may be called explicitly mid-scope; the scope
// that created the unit commits or rolls back on exit either way.
type UnitOfWork interface {
	Users() UserRepository
	Companies() CompanyRepository
	Members() MemberRepository
	Invitations() InvitationRepository
	Requests() RequestRepository
	Quizzes() QuizRepository
	Questions() QuestionRepository
	Answers() AnswerRepository
	Results() ResultRepository
	Notifications() NotificationRepository
	Commit() error
	Rollback() error
}

// Store opens Unit of Work scopes.
type Store interface {
	WithUnitOfWork(ctx context.Context, fn func(uow UnitOfWork) error) error
}

// gormRepo provides the operations shared by every relational repository.
type gormRepo[T any] struct {
	tx       *gorm.DB
	notFound error
}

func (r *gormRepo[T]) AddOne(ctx context.Context, record *T) (*T, error) {
	if err := r.tx.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrAddRecord, err)
	}
	return record, nil
}

func (r *gormRepo[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var record T
	if err := r.tx.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *gormRepo[T]) EditOne(ctx context.Context, id uint, updates map[string]any) (*T, error) {
	record, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.tx.WithContext(ctx).Model(record).Updates(updates).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *gormRepo[T]) DeleteOne(ctx context.Context, id uint) error {
	record, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return r.tx.WithContext(ctx).Delete(record).Error
}

func (r *gormRepo[T]) countAll(ctx context.Context, query string, args ...any) (int64, error) {
	var count int64
	err := r.tx.WithContext(ctx).Model(new(T)).Where(query, args...).Count(&count).Error
	return count, err
}

// firstOrNone runs the given query and maps "no rows" to (nil, nil).
func firstOrNone[T any](db *gorm.DB) (*T, error) {
	var record T
	if err := db.First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// paginate applies skip/limit and returns the pre-pagination total.
func paginate[T any](db *gorm.DB, skip, limit int) ([]T, int64, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []T
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Offset(skip).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
