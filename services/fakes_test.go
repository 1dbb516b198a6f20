package services

import (
	"context"
	"time"

	"corpquiz/apperrors"
	"corpquiz/models"
	"corpquiz/repository"
)

// fakeStore backs service tests with in-memory repositories so the state
// machines and permission checks can be exercised without a database.
type fakeStore struct {
	data *fakeData
}

type fakeData struct {
	nextID        uint
	users         []*models.User
	companies     []*models.Company
	members       []*models.CompanyMember
	invitations   []*models.CompanyInvitation
	requests      []*models.CompanyRequest
	quizzes       []*models.Quiz
	questions     []*models.Question
	answers       []*models.Answer
	results       []*models.QuizResult
	notifications []*models.Notification
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: &fakeData{}}
}

func (d *fakeData) id() uint {
	d.nextID++
	return d.nextID
}

func (s *fakeStore) WithUnitOfWork(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(&fakeUOW{data: s.data})
}

type fakeUOW struct {
	data *fakeData
}

func (u *fakeUOW) Users() repository.UserRepository        { return &fakeUserRepo{u.data} }
func (u *fakeUOW) Companies() repository.CompanyRepository { return &fakeCompanyRepo{u.data} }
func (u *fakeUOW) Members() repository.MemberRepository    { return &fakeMemberRepo{u.data} }

func (u *fakeUOW) Invitations() repository.InvitationRepository {
	return &fakeInvitationRepo{u.data}
}

func (u *fakeUOW) Requests() repository.RequestRepository   { return &fakeRequestRepo{u.data} }
func (u *fakeUOW) Quizzes() repository.QuizRepository       { return &fakeQuizRepo{u.data} }
func (u *fakeUOW) Questions() repository.QuestionRepository { return &fakeQuestionRepo{u.data} }
func (u *fakeUOW) Answers() repository.AnswerRepository     { return &fakeAnswerRepo{u.data} }
func (u *fakeUOW) Results() repository.ResultRepository     { return &fakeResultRepo{u.data} }

func (u *fakeUOW) Notifications() repository.NotificationRepository {
	return &fakeNotificationRepo{u.data}
}

func (u *fakeUOW) Commit() error   { return nil }
func (u *fakeUOW) Rollback() error { return nil }

func pageSlice[T any](rows []T, skip, limit int) ([]T, int64) {
	total := int64(len(rows))
	if skip >= len(rows) {
		return nil, total
	}
	rows = rows[skip:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, total
}

// --- users ---

type fakeUserRepo struct{ data *fakeData }

func (r *fakeUserRepo) AddOne(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = r.data.id()
	user.CreatedAt = time.Now().UTC()
	r.data.users = append(r.data.users, user)
	return user, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	for _, u := range r.data.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.data.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(ctx context.Context, skip, limit int) ([]models.User, int64, error) {
	all := make([]models.User, 0, len(r.data.users))
	for _, u := range r.data.users {
		all = append(all, *u)
	}
	rows, total := pageSlice(all, skip, limit)
	return rows, total, nil
}

func (r *fakeUserRepo) EditOne(ctx context.Context, id uint, updates map[string]any) (*models.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := updates["is_active"].(bool); ok {
		user.IsActive = v
	}
	if v, ok := updates["firstname"].(string); ok {
		user.Firstname = v
	}
	if v, ok := updates["lastname"].(string); ok {
		user.Lastname = v
	}
	if v, ok := updates["city"].(string); ok {
		user.City = v
	}
	if v, ok := updates["phone"].(string); ok {
		user.Phone = v
	}
	if v, ok := updates["avatar"].(string); ok {
		user.Avatar = v
	}
	return user, nil
}

func (r *fakeUserRepo) DeleteOne(ctx context.Context, id uint) error {
	for i, u := range r.data.users {
		if u.ID == id {
			r.data.users = append(r.data.users[:i], r.data.users[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

// --- companies ---

type fakeCompanyRepo struct{ data *fakeData }

func (r *fakeCompanyRepo) AddOne(ctx context.Context, company *models.Company) (*models.Company, error) {
	company.ID = r.data.id()
	company.CreatedAt = time.Now().UTC()
	r.data.companies = append(r.data.companies, company)
	return company, nil
}

func (r *fakeCompanyRepo) FindByID(ctx context.Context, id uint) (*models.Company, error) {
	for _, c := range r.data.companies {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperrors.ErrCompanyNotFound
}

func (r *fakeCompanyRepo) FindVisibleTo(ctx context.Context, userID uint, skip, limit int) ([]models.Company, int64, error) {
	var visible []models.Company
	for _, c := range r.data.companies {
		if c.Visible || c.OwnerID == userID {
			visible = append(visible, *c)
		}
	}
	rows, total := pageSlice(visible, skip, limit)
	return rows, total, nil
}

func (r *fakeCompanyRepo) EditOne(ctx context.Context, id uint, updates map[string]any) (*models.Company, error) {
	company, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := updates["name"].(string); ok {
		company.Name = v
	}
	if v, ok := updates["description"].(string); ok {
		company.Description = v
	}
	if v, ok := updates["visible"].(bool); ok {
		company.Visible = v
	}
	return company, nil
}

func (r *fakeCompanyRepo) DeleteOne(ctx context.Context, id uint) error {
	for i, c := range r.data.companies {
		if c.ID == id {
			r.data.companies = append(r.data.companies[:i], r.data.companies[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrCompanyNotFound
}

// --- members ---

type fakeMemberRepo struct{ data *fakeData }

func (r *fakeMemberRepo) AddOne(ctx context.Context, member *models.CompanyMember) (*models.CompanyMember, error) {
	member.ID = r.data.id()
	member.CreatedAt = time.Now().UTC()
	r.data.members = append(r.data.members, member)
	return member, nil
}

func (r *fakeMemberRepo) FindByCompanyAndUser(ctx context.Context, companyID, userID uint) (*models.CompanyMember, error) {
	for _, m := range r.data.members {
		if m.CompanyID == companyID && m.UserID == userID {
			return m, nil
		}
	}
	return nil, apperrors.ErrMemberNotFound
}

func (r *fakeMemberRepo) ListByCompany(ctx context.Context, companyID uint, skip, limit int) ([]models.CompanyMember, int64, error) {
	var members []models.CompanyMember
	for _, m := range r.data.members {
		if m.CompanyID == companyID {
			members = append(members, *m)
		}
	}
	rows, total := pageSlice(members, skip, limit)
	return rows, total, nil
}

func (r *fakeMemberRepo) ListAdmins(ctx context.Context, companyID uint, skip, limit int) ([]models.CompanyMember, int64, error) {
	var admins []models.CompanyMember
	for _, m := range r.data.members {
		if m.CompanyID == companyID && m.IsAdmin {
			admins = append(admins, *m)
		}
	}
	rows, total := pageSlice(admins, skip, limit)
	return rows, total, nil
}

func (r *fakeMemberRepo) ListAll(ctx context.Context) ([]models.CompanyMember, error) {
	all := make([]models.CompanyMember, 0, len(r.data.members))
	for _, m := range r.data.members {
		all = append(all, *m)
	}
	return all, nil
}

func (r *fakeMemberRepo) EditOne(ctx context.Context, id uint, updates map[string]any) (*models.CompanyMember, error) {
	for _, m := range r.data.members {
		if m.ID == id {
			if v, ok := updates["is_admin"].(bool); ok {
				m.IsAdmin = v
			}
			return m, nil
		}
	}
	return nil, apperrors.ErrMemberNotFound
}

func (r *fakeMemberRepo) DeleteOne(ctx context.Context, id uint) error {
	for i, m := range r.data.members {
		if m.ID == id {
			r.data.members = append(r.data.members[:i], r.data.members[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrMemberNotFound
}

// --- invitations ---

type fakeInvitationRepo struct{ data *fakeData }

func (r *fakeInvitationRepo) AddOne(ctx context.Context, inv *models.CompanyInvitation) (*models.CompanyInvitation, error) {
	inv.ID = r.data.id()
	inv.CreatedAt = time.Now().UTC()
	r.data.invitations = append(r.data.invitations, inv)
	return inv, nil
}

func (r *fakeInvitationRepo) FindByID(ctx context.Context, id uint) (*models.CompanyInvitation, error) {
	for _, inv := range r.data.invitations {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, apperrors.ErrInvitationNotFound
}

func (r *fakeInvitationRepo) HasPending(ctx context.Context, companyID, userID uint) (bool, error) {
	for _, inv := range r.data.invitations {
		if inv.CompanyID == companyID && inv.InvitedUserID == userID && inv.Status == models.InvitePending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeInvitationRepo) ListForUser(ctx context.Context, userID uint, skip, limit int) ([]models.CompanyInvitation, int64, error) {
	var invitations []models.CompanyInvitation
	for _, inv := range r.data.invitations {
		if inv.InvitedUserID == userID {
			invitations = append(invitations, *inv)
		}
	}
	rows, total := pageSlice(invitations, skip, limit)
	return rows, total, nil
}

func (r *fakeInvitationRepo) ListForOwner(ctx context.Context, ownerID uint, skip, limit int) ([]models.CompanyInvitation, int64, error) {
	owned := map[uint]bool{}
	for _, c := range r.data.companies {
		if c.OwnerID == ownerID {
			owned[c.ID] = true
		}
	}
	var invitations []models.CompanyInvitation
	for _, inv := range r.data.invitations {
		if owned[inv.CompanyID] {
			invitations = append(invitations, *inv)
		}
	}
	rows, total := pageSlice(invitations, skip, limit)
	return rows, total, nil
}

func (r *fakeInvitationRepo) EditOne(ctx context.Context, id uint, updates map[string]any) (*models.CompanyInvitation, error) {
	inv, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := updates["status"].(models.InviteStatus); ok {
		inv.Status = v
	}
	return inv, nil
}

func (r *fakeInvitationRepo) DeleteOne(ctx context.Context, id uint) error {
	for i, inv := range r.data.invitations {
		if inv.ID == id {
			r.data.invitations = append(r.data.invitations[:i], r.data.invitations[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrInvitationNotFound
}

// --- requests ---

type fakeRequestRepo struct{ data *fakeData }

func (r *fakeRequestRepo) AddOne(ctx context.Context, req *models.CompanyRequest) (*models.CompanyRequest, error) {
	req.ID = r.data.id()
	req.CreatedAt = time.Now().UTC()
	r.data.requests = append(r.data.requests, req)
	return req, nil
}

func (r *fakeRequestRepo) FindByID(ctx context.Context, id uint) (*models.CompanyRequest, error) {
	for _, req := range r.data.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return nil, apperrors.ErrRequestNotFound
}

func (r *fakeRequestRepo) HasPending(ctx context.Context, companyID, userID uint) (bool, error) {
	for _, req := range r.data.requests {
		if req.CompanyID == companyID && req.RequestedUserID == userID && req.Status == models.InvitePending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRequestRepo) ListForUser(ctx context.Context, userID uint, skip, limit int) ([]models.CompanyRequest, int64, error) {
	var requests []models.CompanyRequest
	for _, req := range r.data.requests {
		if req.RequestedUserID == userID {
			requests = append(requests, *req)
		}
	}
	rows, total := pageSlice(requests, skip, limit)
	return rows, total, nil
}

func (r *fakeRequestRepo) ListForOwner(ctx context.Context, ownerID uint, skip, limit int) ([]models.CompanyRequest, int64, error) {
	owned := map[uint]bool{}
	for _, c := range r.data.companies {
		if c.OwnerID == ownerID {
			owned[c.ID] = true
		}
	}
	var requests []models.CompanyRequest
	for _, req := range r.data.requests {
		if owned[req.CompanyID] {
			requests = append(requests, *req)
		}
	}
	rows, total := pageSlice(requests, skip, limit)
	return rows, total, nil
}

func (r *fakeRequestRepo) EditOne(ctx context.Context, id uint, updates map[string]any) (*models.CompanyRequest, error) {
	req, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := updates["status"].(models.InviteStatus); ok {
		req.Status = v
	}
	return req, nil
}

func (r *fakeRequestRepo) DeleteOne(ctx context.Context, id uint) error {
	for i, req := range r.data.requests {
		if req.ID == id {
			r.data.requests = append(r.data.requests[:i], r.data.requests[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrRequestNotFound
}

// --- quizzes ---

type fakeQuizRepo struct{ data *fakeData }

func (r *fakeQuizRepo) AddOne(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	quiz.ID = r.data.id()
	quiz.CreatedAt = time.Now().UTC()
	r.data.quizzes = append(r.data.quizzes, quiz)
	return quiz, nil
}

func (r *fakeQuizRepo) FindByID(ctx context.Context, id uint) (*models.Quiz, error) {
	for _, q := range r.data.quizzes {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, apperrors.ErrQuizNotFound
}

func (r *fakeQuizRepo) FindWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	loaded := *quiz
	loaded.Questions = nil
	for _, q := range r.data.questions {
		if q.QuizID != id {
			continue
		}
		question := *q
		question.Answers = nil
		for _, a := range r.data.answers {
			if a.QuestionID == q.ID {
				question.Answers = append(question.Answers, *a)
			}
		}
		loaded.Questions = append(loaded.Questions, question)
	}
	return &loaded, nil
}

func (r *fakeQuizRepo) ListByCompany(ctx context.Context, companyID uint, skip, limit int) ([]models.Quiz, int64, error) {
	var quizzes []models.Quiz
	for _, q := range r.data.quizzes {
		if q.CompanyID == companyID {
			quizzes = append(quizzes, *q)
		}
	}
	rows, total := pageSlice(quizzes, skip, limit)
	return rows, total, nil
}

func (r *fakeQuizRepo) FindByTitleOrNone(ctx context.Context, companyID uint, title string) (*models.Quiz, error) {
	for _, q := range r.data.quizzes {
		if q.CompanyID == companyID && q.Title == title {
			return q, nil
		}
	}
	return nil, nil
}

func (r *fakeQuizRepo) EditOne(ctx context.Context, id uint, updates map[string]any) (*models.Quiz, error) {
	quiz, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := updates["title"].(string); ok {
		quiz.Title = v
	}
	if v, ok := updates["description"].(string); ok {
		quiz.Description = v
	}
	if v, ok := updates["frequency_in_days"].(int); ok {
		quiz.FrequencyInDays = v
	}
	return quiz, nil
}

func (r *fakeQuizRepo) DeleteOne(ctx context.Context, id uint) error {
	for i, q := range r.data.quizzes {
		if q.ID == id {
			r.data.quizzes = append(r.data.quizzes[:i], r.data.quizzes[i+1:]...)
			// Mirror the schema's cascade.
			var questions []*models.Question
			for _, question := range r.data.questions {
				if question.QuizID == id {
					var answers []*models.Answer
					for _, a := range r.data.answers {
						if a.QuestionID != question.ID {
							answers = append(answers, a)
						}
					}
					r.data.answers = answers
					continue
				}
				questions = append(questions, question)
			}
			r.data.questions = questions
			return nil
		}
	}
	return apperrors.ErrQuizNotFound
}

// --- questions ---

type fakeQuestionRepo struct{ data *fakeData }

func (r *fakeQuestionRepo) AddOne(ctx context.Context, question *models.Question) (*models.Question, error) {
	question.ID = r.data.id()
	question.CreatedAt = time.Now().UTC()
	r.data.questions = append(r.data.questions, question)
	return question, nil
}

func (r *fakeQuestionRepo) FindByID(ctx context.Context, id uint) (*models.Question, error) {
	for _, q := range r.data.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, apperrors.ErrQuestionNotFound
}

func (r *fakeQuestionRepo) ListByQuiz(ctx context.Context, quizID uint) ([]models.Question, error) {
	var questions []models.Question
	for _, q := range r.data.questions {
		if q.QuizID == quizID {
			questions = append(questions, *q)
		}
	}
	return questions, nil
}

func (r *fakeQuestionRepo) CountByQuiz(ctx context.Context, quizID uint) (int64, error) {
	var count int64
	for _, q := range r.data.questions {
		if q.QuizID == quizID {
			count++
		}
	}
	return count, nil
}

func (r *fakeQuestionRepo) FindByTextOrNone(ctx context.Context, quizID uint, text string) (*models.Question, error) {
	for _, q := range r.data.questions {
		if q.QuizID == quizID && q.QuestionText == text {
			return q, nil
		}
	}
	return nil, nil
}

func (r *fakeQuestionRepo) EditOne(ctx context.Context, id uint, updates map[string]any) (*models.Question, error) {
	question, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := updates["question_text"].(string); ok {
		question.QuestionText = v
	}
	return question, nil
}

func (r *fakeQuestionRepo) DeleteOne(ctx context.Context, id uint) error {
	for i, q := range r.data.questions {
		if q.ID == id {
			r.data.questions = append(r.data.questions[:i], r.data.questions[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrQuestionNotFound
}

// --- answers ---

type fakeAnswerRepo struct{ data *fakeData }

func (r *fakeAnswerRepo) AddOne(ctx context.Context, answer *models.Answer) (*models.Answer, error) {
	answer.ID = r.data.id()
	answer.CreatedAt = time.Now().UTC()
	r.data.answers = append(r.data.answers, answer)
	return answer, nil
}

func (r *fakeAnswerRepo) FindByID(ctx context.Context, id uint) (*models.Answer, error) {
	for _, a := range r.data.answers {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.ErrAnswerNotFound
}

func (r *fakeAnswerRepo) ListByQuestion(ctx context.Context, questionID uint) ([]models.Answer, error) {
	var answers []models.Answer
	for _, a := range r.data.answers {
		if a.QuestionID == questionID {
			answers = append(answers, *a)
		}
	}
	return answers, nil
}

func (r *fakeAnswerRepo) CountByQuestion(ctx context.Context, questionID uint) (int64, error) {
	var count int64
	for _, a := range r.data.answers {
		if a.QuestionID == questionID {
			count++
		}
	}
	return count, nil
}

func (r *fakeAnswerRepo) CountCorrectByQuestion(ctx context.Context, questionID uint) (int64, error) {
	var count int64
	for _, a := range r.data.answers {
		if a.QuestionID == questionID && a.IsCorrect {
			count++
		}
	}
	return count, nil
}

func (r *fakeAnswerRepo) FindByTextOrNone(ctx context.Context, questionID uint, text string) (*models.Answer, error) {
	for _, a := range r.data.answers {
		if a.QuestionID == questionID && a.AnswerText == text {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAnswerRepo) EditOne(ctx context.Context, id uint, updates map[string]any) (*models.Answer, error) {
	answer, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := updates["answer_text"].(string); ok {
		answer.AnswerText = v
	}
	if v, ok := updates["is_correct"].(bool); ok {
		answer.IsCorrect = v
	}
	return answer, nil
}

func (r *fakeAnswerRepo) DeleteOne(ctx context.Context, id uint) error {
	for i, a := range r.data.answers {
		if a.ID == id {
			r.data.answers = append(r.data.answers[:i], r.data.answers[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrAnswerNotFound
}

// --- results ---

type fakeResultRepo struct{ data *fakeData }

func (r *fakeResultRepo) AddOne(ctx context.Context, result *models.QuizResult) (*models.QuizResult, error) {
	result.ID = r.data.id()
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}
	r.data.results = append(r.data.results, result)
	return result, nil
}

func (r *fakeResultRepo) LastAttemptByUser(ctx context.Context, userID uint) (*models.QuizResult, error) {
	var last *models.QuizResult
	for _, res := range r.data.results {
		if res.UserID != userID {
			continue
		}
		if last == nil || res.CreatedAt.After(last.CreatedAt) {
			last = res
		}
	}
	return last, nil
}

func (r *fakeResultRepo) LastAttemptByUserInCompany(ctx context.Context, userID, companyID uint) (*models.QuizResult, error) {
	var last *models.QuizResult
	for _, res := range r.data.results {
		if res.UserID != userID || res.CompanyID != companyID {
			continue
		}
		if last == nil || res.CreatedAt.After(last.CreatedAt) {
			last = res
		}
	}
	return last, nil
}

func (r *fakeResultRepo) ListByUser(ctx context.Context, userID uint) ([]models.QuizResult, error) {
	var results []models.QuizResult
	for _, res := range r.data.results {
		if res.UserID == userID {
			results = append(results, *res)
		}
	}
	return results, nil
}

func (r *fakeResultRepo) ListByUserAndQuiz(ctx context.Context, userID, quizID uint, from, to *time.Time) ([]models.QuizResult, error) {
	var results []models.QuizResult
	for _, res := range r.data.results {
		if res.UserID != userID || res.QuizID != quizID {
			continue
		}
		if from != nil && res.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && res.CreatedAt.After(*to) {
			continue
		}
		results = append(results, *res)
	}
	return results, nil
}

func (r *fakeResultRepo) AverageScoreByUser(ctx context.Context, userID uint) (float64, error) {
	var sum float64
	var count int
	for _, res := range r.data.results {
		if res.UserID == userID {
			sum += res.Score
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}

func (r *fakeResultRepo) AverageScoreByUserInCompany(ctx context.Context, userID, companyID uint, from, to *time.Time) (float64, error) {
	var sum float64
	var count int
	for _, res := range r.data.results {
		if res.UserID != userID || res.CompanyID != companyID {
			continue
		}
		if from != nil && res.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && res.CreatedAt.After(*to) {
			continue
		}
		sum += res.Score
		count++
	}
	if count == 0 {
		return 0, nil
	}
	return sum / float64(count), nil
}

// --- notifications ---

type fakeNotificationRepo struct{ data *fakeData }

func (r *fakeNotificationRepo) AddOne(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	n.ID = r.data.id()
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}
	r.data.notifications = append(r.data.notifications, n)
	return n, nil
}

func (r *fakeNotificationRepo) FindByID(ctx context.Context, id uint) (*models.Notification, error) {
	for _, n := range r.data.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, apperrors.ErrRecordNotFound
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID uint, skip, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	for _, n := range r.data.notifications {
		if n.UserID == userID {
			notifications = append(notifications, *n)
		}
	}
	rows, total := pageSlice(notifications, skip, limit)
	return rows, total, nil
}

func (r *fakeNotificationRepo) EditOne(ctx context.Context, id uint, updates map[string]any) (*models.Notification, error) {
	n, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v, ok := updates["status"].(models.NotificationStatus); ok {
		n.Status = v
	}
	return n, nil
}

// --- seeding helpers ---

func seedUser(s *fakeStore, email string) *models.User {
	user, _ := (&fakeUserRepo{s.data}).AddOne(context.Background(), &models.User{Email: email, IsActive: true})
	return user
}

func seedCompany(s *fakeStore, ownerID uint, name string) *models.Company {
	company, _ := (&fakeCompanyRepo{s.data}).AddOne(context.Background(), &models.Company{
		Name:    name,
		Visible: true,
		OwnerID: ownerID,
	})
	return company
}

func seedMember(s *fakeStore, companyID, userID uint, isAdmin bool) *models.CompanyMember {
	member, _ := (&fakeMemberRepo{s.data}).AddOne(context.Background(), &models.CompanyMember{
		CompanyID: companyID,
		UserID:    userID,
		IsAdmin:   isAdmin,
	})
	return member
}

// seedQuiz creates a quiz with two questions of two answers each; the
// first answer of each question is the correct one.
func seedQuiz(s *fakeStore, companyID, authorID uint, title string) *models.Quiz {
	quizzes := &fakeQuizRepo{s.data}
	questions := &fakeQuestionRepo{s.data}
	answers := &fakeAnswerRepo{s.data}
	ctx := context.Background()

	quiz, _ := quizzes.AddOne(ctx, &models.Quiz{
		Title:           title,
		FrequencyInDays: 7,
		CompanyID:       companyID,
		UserID:          authorID,
	})
	for i := 0; i < 2; i++ {
		question, _ := questions.AddOne(ctx, &models.Question{
			QuizID:       quiz.ID,
			QuestionText: title + " question",
		})
		answers.AddOne(ctx, &models.Answer{QuestionID: question.ID, AnswerText: "right", IsCorrect: true})
		answers.AddOne(ctx, &models.Answer{QuestionID: question.ID, AnswerText: "wrong"})
	}
	return quiz
}
