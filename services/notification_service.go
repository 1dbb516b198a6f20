package services

import (
	"context"

	"corpquiz/apperrors"
	"corpquiz/models"
	"corpquiz/repository"
)

type NotificationService struct {
	store repository.Store
}

func NewNotificationService(store repository.Store) *NotificationService {
	return &NotificationService{store: store}
}

// List returns the caller's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, skip, limit int) ([]models.Notification, int64, error) {
	var (
		notifications []models.Notification
		total         int64
	)
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		var err error
		notifications, total, err = uow.Notifications().ListByUser(ctx, userID, skip, limit)
		return err
	})
	return notifications, total, err
}

// MarkAsRead flips the status iff the notification belongs to the caller.
func (s *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID uint) (*models.Notification, error) {
	var notification *models.Notification
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		found, err := uow.Notifications().FindByID(ctx, notificationID)
		if err != nil {
			return err
		}
		if found.UserID != userID {
			return apperrors.ErrPermissionDenied
		}
		notification, err = uow.Notifications().EditOne(ctx, notificationID, map[string]any{"status": models.NotificationRead})
		return err
	})
	return notification, err
}
