package services

import (
	"context"
	"errors"
	"fmt"

	"corpquiz/apperrors"
	"corpquiz/models"
	"corpquiz/repository"
)

// InvitationService runs the owner-initiated side of the join lifecycle:
// pending -> accepted | declined | cancelled, all transitions terminal.
type InvitationService struct {
	store repository.Store
	perms *PermissionService
}

func NewInvitationService(store repository.Store, perms *PermissionService) *InvitationService {
	return &InvitationService{store: store, perms: perms}
}

// Create invites an outside user. Owner-only; rejects self-invites,
// existing members and duplicate pending invitations.
func (s *InvitationService) Create(ctx context.Context, ownerID, companyID, invitedUserID uint) (*models.CompanyInvitation, error) {
	var invitation *models.CompanyInvitation
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		company, err := s.perms.IsOwner(ctx, uow, companyID, ownerID)
		if err != nil {
			return err
		}
		if invitedUserID == company.OwnerID {
			return fmt.Errorf("%w: cannot invite yourself", apperrors.ErrBadRequest)
		}
		if _, err := uow.Users().FindByID(ctx, invitedUserID); err != nil {
			return err
		}
		if _, err := uow.Members().FindByCompanyAndUser(ctx, companyID, invitedUserID); err == nil {
			return fmt.Errorf("%w: user is already a member", apperrors.ErrCompanyPermission)
		} else if !errors.Is(err, apperrors.ErrMemberNotFound) {
			return err
		}
		pending, err := uow.Invitations().HasPending(ctx, companyID, invitedUserID)
		if err != nil {
			return err
		}
		if pending {
			return fmt.Errorf("%w: a pending invitation already exists", apperrors.ErrBadRequest)
		}

		invitation, err = uow.Invitations().AddOne(ctx, &models.CompanyInvitation{
			CompanyID:     companyID,
			InvitedUserID: invitedUserID,
			Status:        models.InvitePending,
		})
		return err
	})
	return invitation, err
}

// Cancel is owner-only; pending -> cancelled.
func (s *InvitationService) Cancel(ctx context.Context, ownerID, invitationID uint) error {
	return s.transition(ctx, invitationID, models.InviteCancelled, func(ctx context.Context, uow repository.UnitOfWork, inv *models.CompanyInvitation) error {
		_, err := s.perms.IsOwner(ctx, uow, inv.CompanyID, ownerID)
		return err
	})
}

// Accept is invitee-only; pending -> accepted, and adds the membership row.
// A user who became a member in the meantime cannot accept again.
func (s *InvitationService) Accept(ctx context.Context, userID, invitationID uint) error {
	return s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		inv, err := uow.Invitations().FindByID(ctx, invitationID)
		if err != nil {
			return err
		}
		if inv.InvitedUserID != userID {
			return apperrors.ErrPermissionDenied
		}
		if _, err := uow.Members().FindByCompanyAndUser(ctx, inv.CompanyID, userID); err == nil {
			return fmt.Errorf("%w: already a member", apperrors.ErrCompanyPermission)
		} else if !errors.Is(err, apperrors.ErrMemberNotFound) {
			return err
		}
		if inv.Status != models.InvitePending {
			return fmt.Errorf("%w: invitation is already %s", apperrors.ErrBadRequest, inv.Status)
		}

		if _, err := uow.Invitations().EditOne(ctx, invitationID, map[string]any{"status": models.InviteAccepted}); err != nil {
			return err
		}
		_, err = uow.Members().AddOne(ctx, &models.CompanyMember{
			CompanyID: inv.CompanyID,
			UserID:    userID,
			IsAdmin:   false,
		})
		return err
	})
}

// Decline is invitee-only; pending -> declined.
func (s *InvitationService) Decline(ctx context.Context, userID, invitationID uint) error {
	return s.transition(ctx, invitationID, models.InviteDeclined, func(ctx context.Context, uow repository.UnitOfWork, inv *models.CompanyInvitation) error {
		if inv.InvitedUserID != userID {
			return apperrors.ErrPermissionDenied
		}
		return nil
	})
}

func (s *InvitationService) transition(ctx context.Context, invitationID uint, to models.InviteStatus,
	authorize func(context.Context, repository.UnitOfWork, *models.CompanyInvitation) error) error {
	return s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		inv, err := uow.Invitations().FindByID(ctx, invitationID)
		if err != nil {
			return err
		}
		if err := authorize(ctx, uow, inv); err != nil {
			return err
		}
		if inv.Status != models.InvitePending {
			return fmt.Errorf("%w: invitation is already %s", apperrors.ErrBadRequest, inv.Status)
		}
		_, err = uow.Invitations().EditOne(ctx, invitationID, map[string]any{"status": to})
		return err
	})
}

// ListMine returns invitations addressed to the caller.
func (s *InvitationService) ListMine(ctx context.Context, userID uint, skip, limit int) ([]models.CompanyInvitation, int64, error) {
	var (
		invitations []models.CompanyInvitation
		total       int64
	)
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		var err error
		invitations, total, err = uow.Invitations().ListForUser(ctx, userID, skip, limit)
		return err
	})
	return invitations, total, err
}

// ListSent returns invitations for every company the caller owns.
func (s *InvitationService) ListSent(ctx context.Context, ownerID uint, skip, limit int) ([]models.CompanyInvitation, int64, error) {
	var (
		invitations []models.CompanyInvitation
		total       int64
	)
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		var err error
		invitations, total, err = uow.Invitations().ListForOwner(ctx, ownerID, skip, limit)
		return err
	})
	return invitations, total, err
}
