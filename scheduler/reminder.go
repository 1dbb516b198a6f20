// Package scheduler runs the daily reminder job that nudges members who
// have fallen behind a quiz's cadence.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"corpquiz/models"
	"corpquiz/repository"
)

// Reminder fires at 00:00 UTC every day. It runs in its own task context
// and never shares a Unit of Work with request handlers.
type Reminder struct {
	store  repository.Store
	cancel context.CancelFunc
	now    func() time.Time
}

func NewReminder(store repository.Store) *Reminder {
	return &Reminder{store: store, now: func() time.Time { return time.Now().UTC() }}
}

func (r *Reminder) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	go func() {
		for {
			timer := time.NewTimer(time.Until(nextMidnightUTC(r.now())))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				if err := r.RunOnce(ctx); err != nil {
					log.Printf("Reminder run failed: %v", err)
				}
			}
		}
	}()
}

func (r *Reminder) Stop() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// RunOnce scans every membership and produces one reminder per overdue
// user, based on the user's most recent attempt across all quizzes. Users
// who never attempted any quiz are skipped. All writes share one Unit of
// Work.
func (r *Reminder) RunOnce(ctx context.Context) error {
	now := r.now()
	return r.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		members, err := uow.Members().ListAll(ctx)
		if err != nil {
			return err
		}

		// A user holding memberships in several companies still gets a
		// single reminder per run.
		seen := map[uint]bool{}
		reminded := 0

		for _, member := range members {
			if seen[member.UserID] {
				continue
			}
			seen[member.UserID] = true

			last, err := uow.Results().LastAttemptByUser(ctx, member.UserID)
			if err != nil {
				return err
			}
			if last == nil {
				continue
			}

			quiz, err := uow.Quizzes().FindByID(ctx, last.QuizID)
			if err != nil {
				// The quiz may have been deleted since the attempt.
				continue
			}

			due := last.CreatedAt.Add(time.Duration(quiz.FrequencyInDays) * 24 * time.Hour)
			if now.Before(due) {
				continue
			}

			quizID := quiz.ID
			if _, err := uow.Notifications().AddOne(ctx, &models.Notification{
				UserID:    member.UserID,
				QuizID:    &quizID,
				Message:   fmt.Sprintf("You should complete the quiz '%s' again!", quiz.Title),
				Status:    models.NotificationUnread,
				Timestamp: now,
			}); err != nil {
				return err
			}
			reminded++
		}

		log.Printf("Reminder run complete: %d member(s) scanned, %d reminded", len(members), reminded)
		return nil
	})
}

func nextMidnightUTC(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}
