package services

import (
	"context"

	"corpquiz/apperrors"
	"corpquiz/models"
	"corpquiz/repository"
)

// PermissionService encapsulates the company-ownership, admin-role and
// membership checks. Every predicate runs on the repositories of the Unit
// of Work the calling service already holds, so the checks observe the same
// transaction as the mutation they guard.
type PermissionService struct{}

func NewPermissionService() *PermissionService {
	return &PermissionService{}
}

// IsOwner returns the company when the user owns it, ErrCompanyPermission
// otherwise.
func (p *PermissionService) IsOwner(ctx context.Context, uow repository.UnitOfWork, companyID, userID uint) (*models.Company, error) {
	company, err := uow.Companies().FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID != userID {
		return nil, apperrors.ErrCompanyPermission
	}
	return company, nil
}

// IsAdmin passes for the owner or any member with the admin flag.
func (p *PermissionService) IsAdmin(ctx context.Context, uow repository.UnitOfWork, companyID, userID uint) (*models.Company, error) {
	company, err := uow.Companies().FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID == userID {
		return company, nil
	}
	member, err := uow.Members().FindByCompanyAndUser(ctx, companyID, userID)
	if err != nil || !member.IsAdmin {
		return nil, apperrors.ErrCompanyPermission
	}
	return company, nil
}

// IsMember passes for the owner or any member.
func (p *PermissionService) IsMember(ctx context.Context, uow repository.UnitOfWork, companyID, userID uint) (*models.Company, error) {
	company, err := uow.Companies().FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID == userID {
		return company, nil
	}
	if _, err := uow.Members().FindByCompanyAndUser(ctx, companyID, userID); err != nil {
		return nil, apperrors.ErrCompanyPermission
	}
	return company, nil
}

// CanViewCompany passes for the owner, any member, or anyone when the
// company is visible.
func (p *PermissionService) CanViewCompany(ctx context.Context, uow repository.UnitOfWork, company *models.Company, userID uint) error {
	if company.Visible || company.OwnerID == userID {
		return nil
	}
	if _, err := uow.Members().FindByCompanyAndUser(ctx, company.ID, userID); err != nil {
		return apperrors.ErrCompanyPermission
	}
	return nil
}

// SelfOnly rejects any caller other than the target user.
func (p *PermissionService) SelfOnly(targetUserID, currentUserID uint) error {
	if targetUserID != currentUserID {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
