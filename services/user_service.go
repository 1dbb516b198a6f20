package services

import (
	"context"

	"corpquiz/models"
	"corpquiz/repository"
)

type UserService struct {
	store repository.Store
	perms *PermissionService
}

func NewUserService(store repository.Store, perms *PermissionService) *UserService {
	return &UserService{store: store, perms: perms}
}

type UpdateUserRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
	Avatar    string `json:"avatar"`
}

func (s *UserService) GetByID(ctx context.Context, userID uint) (*models.User, error) {
	var user *models.User
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		var err error
		user, err = uow.Users().FindByID(ctx, userID)
		return err
	})
	return user, err
}

func (s *UserService) List(ctx context.Context, skip, limit int) ([]models.User, int64, error) {
	var (
		users []models.User
		total int64
	)
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		var err error
		users, total, err = uow.Users().FindAll(ctx, skip, limit)
		return err
	})
	return users, total, err
}

// Update edits profile fields. Users may only edit themselves.
func (s *UserService) Update(ctx context.Context, targetID, currentID uint, req *UpdateUserRequest) (*models.User, error) {
	if err := s.perms.SelfOnly(targetID, currentID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Firstname != "" {
		updates["firstname"] = req.Firstname
	}
	if req.Lastname != "" {
		updates["lastname"] = req.Lastname
	}
	if req.City != "" {
		updates["city"] = req.City
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}

	var user *models.User
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		var err error
		user, err = uow.Users().EditOne(ctx, targetID, updates)
		return err
	})
	return user, err
}

// Delete soft-deletes by flipping is_active. Users may only delete themselves.
func (s *UserService) Delete(ctx context.Context, targetID, currentID uint) error {
	if err := s.perms.SelfOnly(targetID, currentID); err != nil {
		return err
	}
	return s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		_, err := uow.Users().EditOne(ctx, targetID, map[string]any{"is_active": false})
		return err
	})
}
