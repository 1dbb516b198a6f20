package repository

import (
	"context"
	"time"

	"corpquiz/apperrors"
	"corpquiz/models"

	"gorm.io/gorm"
)

type userRepo struct {
	gormRepo[models.User]
}

func newUserRepo(tx *gorm.DB) *userRepo {
	return &userRepo{gormRepo[models.User]{tx: tx, notFound: apperrors.ErrUserNotFound}}
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.tx.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindAll(ctx context.Context, skip, limit int) ([]models.User, int64, error) {
	return paginate[models.User](r.tx.WithContext(ctx).Model(&models.User{}).Order("id"), skip, limit)
}

type companyRepo struct {
	gormRepo[models.Company]
}

func newCompanyRepo(tx *gorm.DB) *companyRepo {
	return &companyRepo{gormRepo[models.Company]{tx: tx, notFound: apperrors.ErrCompanyNotFound}}
}

func (r *companyRepo) FindVisibleTo(ctx context.Context, userID uint, skip, limit int) ([]models.Company, int64, error) {
	db := r.tx.WithContext(ctx).Model(&models.Company{}).
		Where("visible = ? OR owner_id = ?", true, userID).
		Order("created_at DESC")
	return paginate[models.Company](db, skip, limit)
}

type memberRepo struct {
	gormRepo[models.CompanyMember]
}

func newMemberRepo(tx *gorm.DB) *memberRepo {
	return &memberRepo{gormRepo[models.CompanyMember]{tx: tx, notFound: apperrors.ErrMemberNotFound}}
}

func (r *memberRepo) FindByCompanyAndUser(ctx context.Context, companyID, userID uint) (*models.CompanyMember, error) {
	var member models.CompanyMember
	err := r.tx.WithContext(ctx).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *memberRepo) ListByCompany(ctx context.Context, companyID uint, skip, limit int) ([]models.CompanyMember, int64, error) {
	db := r.tx.WithContext(ctx).Model(&models.CompanyMember{}).
		Where("company_id = ?", companyID).
		Preload("User").
		Order("created_at")
	return paginate[models.CompanyMember](db, skip, limit)
}

func (r *memberRepo) ListAdmins(ctx context.Context, companyID uint, skip, limit int) ([]models.CompanyMember, int64, error) {
	db := r.tx.WithContext(ctx).Model(&models.CompanyMember{}).
		Where("company_id = ? AND is_admin = ?", companyID, true).
		Preload("User").
		Order("created_at")
	return paginate[models.CompanyMember](db, skip, limit)
}

func (r *memberRepo) ListAll(ctx context.Context) ([]models.CompanyMember, error) {
	var members []models.CompanyMember
	err := r.tx.WithContext(ctx).Order("id").Find(&members).Error
	return members, err
}

type invitationRepo struct {
	gormRepo[models.CompanyInvitation]
}

func newInvitationRepo(tx *gorm.DB) *invitationRepo {
	return &invitationRepo{gormRepo[models.CompanyInvitation]{tx: tx, notFound: apperrors.ErrInvitationNotFound}}
}

func (r *invitationRepo) HasPending(ctx context.Context, companyID, userID uint) (bool, error) {
	count, err := r.countAll(ctx, "company_id = ? AND invited_user_id = ? AND status = ?",
		companyID, userID, models.InvitePending)
	return count > 0, err
}

func (r *invitationRepo) ListForUser(ctx context.Context, userID uint, skip, limit int) ([]models.CompanyInvitation, int64, error) {
	db := r.tx.WithContext(ctx).Model(&models.CompanyInvitation{}).
		Where("invited_user_id = ?", userID).
		Preload("Company").
		Order("created_at DESC")
	return paginate[models.CompanyInvitation](db, skip, limit)
}

func (r *invitationRepo) ListForOwner(ctx context.Context, ownerID uint, skip, limit int) ([]models.CompanyInvitation, int64, error) {
	db := r.tx.WithContext(ctx).Model(&models.CompanyInvitation{}).
		Joins("JOIN companies ON companies.id = company_invitations.company_id").
		Where("companies.owner_id = ?", ownerID).
		Preload("InvitedUser").
		Order("company_invitations.created_at DESC")
	return paginate[models.CompanyInvitation](db, skip, limit)
}

type requestRepo struct {
	gormRepo[models.CompanyRequest]
}

func newRequestRepo(tx *gorm.DB) *requestRepo {
	return &requestRepo{gormRepo[models.CompanyRequest]{tx: tx, notFound: apperrors.ErrRequestNotFound}}
}

func (r *requestRepo) HasPending(ctx context.Context, companyID, userID uint) (bool, error) {
	count, err := r.countAll(ctx, "company_id = ? AND requested_user_id = ? AND status = ?",
		companyID, userID, models.InvitePending)
	return count > 0, err
}

func (r *requestRepo) ListForUser(ctx context.Context, userID uint, skip, limit int) ([]models.CompanyRequest, int64, error) {
	db := r.tx.WithContext(ctx).Model(&models.CompanyRequest{}).
		Where("requested_user_id = ?", userID).
		Preload("Company").
		Order("created_at DESC")
	return paginate[models.CompanyRequest](db, skip, limit)
}

func (r *requestRepo) ListForOwner(ctx context.Context, ownerID uint, skip, limit int) ([]models.CompanyRequest, int64, error) {
	db := r.tx.WithContext(ctx).Model(&models.CompanyRequest{}).
		Joins("JOIN companies ON companies.id = company_requests.company_id").
		Where("companies.owner_id = ?", ownerID).
		Preload("RequestedUser").
		Order("company_requests.created_at DESC")
	return paginate[models.CompanyRequest](db, skip, limit)
}

type quizRepo struct {
	gormRepo[models.Quiz]
}

func newQuizRepo(tx *gorm.DB) *quizRepo {
	return &quizRepo{gormRepo[models.Quiz]{tx: tx, notFound: apperrors.ErrQuizNotFound}}
}

func (r *quizRepo) FindWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.tx.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.id")
		}).
		First(&quiz, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrQuizNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) ListByCompany(ctx context.Context, companyID uint, skip, limit int) ([]models.Quiz, int64, error) {
	db := r.tx.WithContext(ctx).Model(&models.Quiz{}).
		Where("company_id = ?", companyID).
		Order("created_at DESC")
	return paginate[models.Quiz](db, skip, limit)
}

func (r *quizRepo) FindByTitleOrNone(ctx context.Context, companyID uint, title string) (*models.Quiz, error) {
	return firstOrNone[models.Quiz](r.tx.WithContext(ctx).
		Where("company_id = ? AND title = ?", companyID, title))
}

type questionRepo struct {
	gormRepo[models.Question]
}

func newQuestionRepo(tx *gorm.DB) *questionRepo {
	return &questionRepo{gormRepo[models.Question]{tx: tx, notFound: apperrors.ErrQuestionNotFound}}
}

func (r *questionRepo) ListByQuiz(ctx context.Context, quizID uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.tx.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Preload("Answers").
		Order("id").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepo) CountByQuiz(ctx context.Context, quizID uint) (int64, error) {
	return r.countAll(ctx, "quiz_id = ?", quizID)
}

func (r *questionRepo) FindByTextOrNone(ctx context.Context, quizID uint, text string) (*models.Question, error) {
	return firstOrNone[models.Question](r.tx.WithContext(ctx).
		Where("quiz_id = ? AND question_text = ?", quizID, text))
}

type answerRepo struct {
	gormRepo[models.Answer]
}

func newAnswerRepo(tx *gorm.DB) *answerRepo {
	return &answerRepo{gormRepo[models.Answer]{tx: tx, notFound: apperrors.ErrAnswerNotFound}}
}

func (r *answerRepo) ListByQuestion(ctx context.Context, questionID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.tx.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("id").
		Find(&answers).Error
	return answers, err
}

func (r *answerRepo) CountByQuestion(ctx context.Context, questionID uint) (int64, error) {
	return r.countAll(ctx, "question_id = ?", questionID)
}

func (r *answerRepo) CountCorrectByQuestion(ctx context.Context, questionID uint) (int64, error) {
	return r.countAll(ctx, "question_id = ? AND is_correct = ?", questionID, true)
}

func (r *answerRepo) FindByTextOrNone(ctx context.Context, questionID uint, text string) (*models.Answer, error) {
	return firstOrNone[models.Answer](r.tx.WithContext(ctx).
		Where("question_id = ? AND answer_text = ?", questionID, text))
}

type resultRepo struct {
	gormRepo[models.QuizResult]
}

func newResultRepo(tx *gorm.DB) *resultRepo {
	return &resultRepo{gormRepo[models.QuizResult]{tx: tx, notFound: apperrors.ErrRecordNotFound}}
}

func (r *resultRepo) LastAttemptByUser(ctx context.Context, userID uint) (*models.QuizResult, error) {
	return firstOrNone[models.QuizResult](r.tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC"))
}

func (r *resultRepo) LastAttemptByUserInCompany(ctx context.Context, userID, companyID uint) (*models.QuizResult, error) {
	return firstOrNone[models.QuizResult](r.tx.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Order("created_at DESC"))
}

func (r *resultRepo) ListByUser(ctx context.Context, userID uint) ([]models.QuizResult, error) {
	var results []models.QuizResult
	err := r.tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&results).Error
	return results, err
}

func (r *resultRepo) ListByUserAndQuiz(ctx context.Context, userID, quizID uint, from, to *time.Time) ([]models.QuizResult, error) {
	db := r.tx.WithContext(ctx).Where("user_id = ? AND quiz_id = ?", userID, quizID)
	db = applyRange(db, from, to)
	var results []models.QuizResult
	err := db.Order("created_at").Find(&results).Error
	return results, err
}

func (r *resultRepo) AverageScoreByUser(ctx context.Context, userID uint) (float64, error) {
	return r.averageScore(r.tx.WithContext(ctx).Model(&models.QuizResult{}).
		Where("user_id = ?", userID))
}

func (r *resultRepo) AverageScoreByUserInCompany(ctx context.Context, userID, companyID uint, from, to *time.Time) (float64, error) {
	db := r.tx.WithContext(ctx).Model(&models.QuizResult{}).
		Where("user_id = ? AND company_id = ?", userID, companyID)
	return r.averageScore(applyRange(db, from, to))
}

func (r *resultRepo) averageScore(db *gorm.DB) (float64, error) {
	var avg *float64
	if err := db.Select("AVG(score)").Scan(&avg).Error; err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func applyRange(db *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		db = db.Where("created_at >= ?", *from)
	}
	if to != nil {
		db = db.Where("created_at <= ?", *to)
	}
	return db
}

type notificationRepo struct {
	gormRepo[models.Notification]
}

func newNotificationRepo(tx *gorm.DB) *notificationRepo {
	return &notificationRepo{gormRepo[models.Notification]{tx: tx, notFound: apperrors.ErrRecordNotFound}}
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID uint, skip, limit int) ([]models.Notification, int64, error) {
	db := r.tx.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Order("timestamp DESC")
	return paginate[models.Notification](db, skip, limit)
}
