package repository

import (
	"context"

	"gorm.io/gorm"
)

// GormStore opens Unit of Work scopes backed by gorm transactions.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// WithUnitOfWork begins a transaction, hands a UnitOfWork over it to fn,
// commits when fn returns nil and rolls back otherwise. A panic inside fn
// also rolls back before re-panicking.
func (s *GormStore) WithUnitOfWork(ctx context.Context, fn func(uow UnitOfWork) error) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow := newGormUnitOfWork(tx)
	defer func() {
		if r := recover(); r != nil {
			uow.Rollback()
			panic(r)
		}
	}()

	if err := fn(uow); err != nil {
		uow.Rollback()
		return err
	}
	return uow.Commit()
}

type gormUnitOfWork struct {
	tx   *gorm.DB
	done bool

	users         *userRepo
	companies     *companyRepo
	members       *memberRepo
	invitations   *invitationRepo
	requests      *requestRepo
	quizzes       *quizRepo
	questions     *questionRepo
	answers       *answerRepo
	results       *resultRepo
	notifications *notificationRepo
}

func newGormUnitOfWork(tx *gorm.DB) *gormUnitOfWork {
	return &gormUnitOfWork{
		tx:            tx,
		users:         newUserRepo(tx),
		companies:     newCompanyRepo(tx),
		members:       newMemberRepo(tx),
		invitations:   newInvitationRepo(tx),
		requests:      newRequestRepo(tx),
		quizzes:       newQuizRepo(tx),
		questions:     newQuestionRepo(tx),
		answers:       newAnswerRepo(tx),
		results:       newResultRepo(tx),
		notifications: newNotificationRepo(tx),
	}
}

func (u *gormUnitOfWork) Users() UserRepository                 { return u.users }
func (u *gormUnitOfWork) Companies() CompanyRepository          { return u.companies }
func (u *gormUnitOfWork) Members() MemberRepository             { return u.members }
func (u *gormUnitOfWork) Invitations() InvitationRepository     { return u.invitations }
func (u *gormUnitOfWork) Requests() RequestRepository           { return u.requests }
func (u *gormUnitOfWork) Quizzes() QuizRepository               { return u.quizzes }
func (u *gormUnitOfWork) Questions() QuestionRepository         { return u.questions }
func (u *gormUnitOfWork) Answers() AnswerRepository             { return u.answers }
func (u *gormUnitOfWork) Results() ResultRepository             { return u.results }
func (u *gormUnitOfWork) Notifications() NotificationRepository { return u.notifications }

func (u *gormUnitOfWork) Commit() error {
	if u.done {
		return nil
	}
	u.done = true
	return u.tx.Commit().Error
}

func (u *gormUnitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	return u.tx.Rollback().Error
}
