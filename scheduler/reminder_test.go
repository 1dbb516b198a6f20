package scheduler

import (
	"context"
	"testing"
	"time"

	"corpquiz/models"
	"corpquiz/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *repository.GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.CompanyMember{},
		&models.Quiz{},
		&models.QuizResult{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.NewGormStore(db)
}

type reminderSeed struct {
	store   *repository.GormStore
	user    *models.User
	company *models.Company
	quiz    *models.Quiz
}

func seedMembership(t *testing.T, store *repository.GormStore, email string, frequencyDays int) *reminderSeed {
	t.Helper()
	ctx := context.Background()
	seed := &reminderSeed{store: store}

	err := store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		var err error
		seed.user, err = uow.Users().AddOne(ctx, &models.User{Email: email, IsActive: true})
		if err != nil {
			return err
		}
		seed.company, err = uow.Companies().AddOne(ctx, &models.Company{
			Name:    "Acme " + email,
			Visible: true,
			OwnerID: seed.user.ID,
		})
		if err != nil {
			return err
		}
		if _, err := uow.Members().AddOne(ctx, &models.CompanyMember{
			CompanyID: seed.company.ID,
			UserID:    seed.user.ID,
		}); err != nil {
			return err
		}
		seed.quiz, err = uow.Quizzes().AddOne(ctx, &models.Quiz{
			Title:           "Checkup",
			FrequencyInDays: frequencyDays,
			CompanyID:       seed.company.ID,
			UserID:          seed.user.ID,
		})
		return err
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return seed
}

func seedAttempt(t *testing.T, seed *reminderSeed, at time.Time) {
	t.Helper()
	ctx := context.Background()
	err := seed.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		_, err := uow.Results().AddOne(ctx, &models.QuizResult{
			UserID:         seed.user.ID,
			QuizID:         seed.quiz.ID,
			CompanyID:      seed.company.ID,
			TotalQuestions: 2,
			TotalAnswers:   2,
			Score:          100,
			CreatedAt:      at,
		})
		return err
	})
	if err != nil {
		t.Fatalf("seed attempt: %v", err)
	}
}

func listNotifications(t *testing.T, store *repository.GormStore, userID uint) []models.Notification {
	t.Helper()
	ctx := context.Background()
	var notifications []models.Notification
	err := store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		var err error
		notifications, _, err = uow.Notifications().ListByUser(ctx, userID, 0, 0)
		return err
	})
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	return notifications
}

func TestRunOnceRemindsOverdueMember(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	seed := seedMembership(t, store, "late@example.com", 7)
	seedAttempt(t, seed, now.Add(-10*24*time.Hour))

	r := NewReminder(store)
	r.now = func() time.Time { return now }

	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	notifications := listNotifications(t, store, seed.user.ID)
	if len(notifications) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifications))
	}
	n := notifications[0]
	if n.Message != "You should complete the quiz 'Checkup' again!" {
		t.Errorf("message = %q", n.Message)
	}
	if n.Status != models.NotificationUnread {
		t.Errorf("status = %s, want unread", n.Status)
	}
	if n.QuizID == nil || *n.QuizID != seed.quiz.ID {
		t.Errorf("quiz id = %v, want %d", n.QuizID, seed.quiz.ID)
	}
}

func TestRunOnceSkipsRecentAttempt(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	seed := seedMembership(t, store, "fresh@example.com", 7)
	seedAttempt(t, seed, now.Add(-24*time.Hour))

	r := NewReminder(store)
	r.now = func() time.Time { return now }

	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if notifications := listNotifications(t, store, seed.user.ID); len(notifications) != 0 {
		t.Errorf("notifications = %+v, want none", notifications)
	}
}

func TestRunOnceSkipsNeverAttempted(t *testing.T) {
	store := newTestStore(t)
	seed := seedMembership(t, store, "idle@example.com", 7)

	r := NewReminder(store)
	r.now = func() time.Time { return time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC) }

	if err := r.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if notifications := listNotifications(t, store, seed.user.ID); len(notifications) != 0 {
		t.Errorf("notifications = %+v, want none for a member without attempts", notifications)
	}
}

func TestRunOnceRemindsOncePerUser(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	seed := seedMembership(t, store, "busy@example.com", 7)
	seedAttempt(t, seed, now.Add(-10*24*time.Hour))

	// Second membership for the same user in another company.
	err := store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		company, err := uow.Companies().AddOne(ctx, &models.Company{
			Name:    "Second",
			Visible: true,
			OwnerID: seed.user.ID,
		})
		if err != nil {
			return err
		}
		_, err = uow.Members().AddOne(ctx, &models.CompanyMember{
			CompanyID: company.ID,
			UserID:    seed.user.ID,
		})
		return err
	})
	if err != nil {
		t.Fatalf("seed second membership: %v", err)
	}

	r := NewReminder(store)
	r.now = func() time.Time { return now }

	if err := r.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if notifications := listNotifications(t, store, seed.user.ID); len(notifications) != 1 {
		t.Errorf("notifications = %d, want a single reminder across memberships", len(notifications))
	}
}

func TestRunOnceSkipsDeletedQuiz(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	seed := seedMembership(t, store, "orphan@example.com", 7)
	seedAttempt(t, seed, now.Add(-10*24*time.Hour))

	err := store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		return uow.Quizzes().DeleteOne(ctx, seed.quiz.ID)
	})
	if err != nil {
		t.Fatalf("delete quiz: %v", err)
	}

	r := NewReminder(store)
	r.now = func() time.Time { return now }

	if err := r.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if notifications := listNotifications(t, store, seed.user.ID); len(notifications) != 0 {
		t.Errorf("notifications = %+v, want none for a deleted quiz", notifications)
	}
}

func TestNextMidnightUTC(t *testing.T) {
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		{
			time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC),
			time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		if got := nextMidnightUTC(tc.now); !got.Equal(tc.want) {
			t.Errorf("nextMidnightUTC(%v) = %v, want %v", tc.now, got, tc.want)
		}
	}
}

func TestStartStop(t *testing.T) {
	store := newTestStore(t)
	r := NewReminder(store)
	r.Start()
	r.Stop()
	// Stop twice is a no-op.
	r.Stop()
}
