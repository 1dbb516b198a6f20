package services

import (
	"context"
	"fmt"

	"corpquiz/apperrors"
	"corpquiz/models"
	"corpquiz/repository"
)

type MemberService struct {
	store repository.Store
	perms *PermissionService
}

func NewMemberService(store repository.Store, perms *PermissionService) *MemberService {
	return &MemberService{store: store, perms: perms}
}

// Leave removes the caller's own membership. The owner cannot leave their
// company; they have to delete it instead.
func (s *MemberService) Leave(ctx context.Context, userID, companyID uint) error {
	return s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		company, err := uow.Companies().FindByID(ctx, companyID)
		if err != nil {
			return err
		}
		if company.OwnerID == userID {
			return fmt.Errorf("%w: the owner cannot leave their own company", apperrors.ErrPermissionDenied)
		}
		member, err := uow.Members().FindByCompanyAndUser(ctx, companyID, userID)
		if err != nil {
			return err
		}
		return uow.Members().DeleteOne(ctx, member.ID)
	})
}

// RemoveMember is owner-only.
func (s *MemberService) RemoveMember(ctx context.Context, ownerID, companyID, memberUserID uint) error {
	return s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if _, err := s.perms.IsOwner(ctx, uow, companyID, ownerID); err != nil {
			return err
		}
		member, err := uow.Members().FindByCompanyAndUser(ctx, companyID, memberUserID)
		if err != nil {
			return err
		}
		return uow.Members().DeleteOne(ctx, member.ID)
	})
}

// AppointAdmin is owner-only.
func (s *MemberService) AppointAdmin(ctx context.Context, ownerID, companyID, userID uint) error {
	return s.setAdmin(ctx, ownerID, companyID, userID, true)
}

// RemoveAdmin is owner-only.
func (s *MemberService) RemoveAdmin(ctx context.Context, ownerID, companyID, userID uint) error {
	return s.setAdmin(ctx, ownerID, companyID, userID, false)
}

func (s *MemberService) setAdmin(ctx context.Context, ownerID, companyID, userID uint, isAdmin bool) error {
	return s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if _, err := s.perms.IsOwner(ctx, uow, companyID, ownerID); err != nil {
			return err
		}
		member, err := uow.Members().FindByCompanyAndUser(ctx, companyID, userID)
		if err != nil {
			return err
		}
		_, err = uow.Members().EditOne(ctx, member.ID, map[string]any{"is_admin": isAdmin})
		return err
	})
}

// ListMembers requires the viewer to be a member of the company.
func (s *MemberService) ListMembers(ctx context.Context, viewerID, companyID uint, skip, limit int) ([]models.CompanyMember, int64, error) {
	var (
		members []models.CompanyMember
		total   int64
	)
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if _, err := s.perms.IsMember(ctx, uow, companyID, viewerID); err != nil {
			return err
		}
		var err error
		members, total, err = uow.Members().ListByCompany(ctx, companyID, skip, limit)
		return err
	})
	return members, total, err
}

func (s *MemberService) ListAdmins(ctx context.Context, viewerID, companyID uint, skip, limit int) ([]models.CompanyMember, int64, error) {
	var (
		admins []models.CompanyMember
		total  int64
	)
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		if _, err := s.perms.IsMember(ctx, uow, companyID, viewerID); err != nil {
			return err
		}
		var err error
		admins, total, err = uow.Members().ListAdmins(ctx, companyID, skip, limit)
		return err
	})
	return admins, total, err
}
