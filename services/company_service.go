package services

import (
	"context"

	"corpquiz/models"
	"corpquiz/repository"
)

type CompanyService struct {
	store repository.Store
	perms *PermissionService
}

func NewCompanyService(store repository.Store, perms *PermissionService) *CompanyService {
	return &CompanyService{store: store, perms: perms}
}

type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Visible     *bool  `json:"visible"`
}

type UpdateCompanyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Visible     *bool  `json:"visible"`
}

func (s *CompanyService) Create(ctx context.Context, userID uint, req *CreateCompanyRequest) (*models.Company, error) {
	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	var company *models.Company
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		var err error
		company, err = uow.Companies().AddOne(ctx, &models.Company{
			Name:        req.Name,
			Description: req.Description,
			Visible:     visible,
			OwnerID:     userID,
		})
		return err
	})
	return company, err
}

func (s *CompanyService) GetByID(ctx context.Context, userID, companyID uint) (*models.Company, error) {
	var company *models.Company
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		found, err := uow.Companies().FindByID(ctx, companyID)
		if err != nil {
			return err
		}
		if err := s.perms.CanViewCompany(ctx, uow, found, userID); err != nil {
			return err
		}
		company = found
		return nil
	})
	return company, err
}

// List returns companies that are visible or owned by the caller.
func (s *CompanyService) List(ctx context.Context, userID uint, skip, limit int) ([]models.Company, int64, error) {
	var (
		companies []models.Company
		total     int64
	)
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		var err error
		companies, total, err = uow.Companies().FindVisibleTo(ctx, userID, skip, limit)
		return err
	})
	return companies, total, err
}

// Update is owner-only. The owner itself is immutable.
func (s *CompanyService) Update(ctx context.Context, userID, companyID uint, req *UpdateCompanyRequest) (*models.Company, error) {
	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Visible != nil {
		updates["visible"] = *req.Visible
	}

	var company *models.Company
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if _, err := s.perms.IsOwner(ctx, uow, companyID, userID); err != nil {
			return err
		}
		var err error
		company, err = uow.Companies().EditOne(ctx, companyID, updates)
		return err
	})
	return company, err
}

func (s *CompanyService) Delete(ctx context.Context, userID, companyID uint) error {
	return s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if _, err := s.perms.IsOwner(ctx, uow, companyID, userID); err != nil {
			return err
		}
		return uow.Companies().DeleteOne(ctx, companyID)
	})
}
