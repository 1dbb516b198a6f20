package services

import (
	"context"
	"errors"
	"fmt"

	"corpquiz/apperrors"
	"corpquiz/models"
	"corpquiz/repository"
)

// RequestService runs the user-initiated side of the join lifecycle,
// symmetric to invitations: the outsider creates, the owner accepts or
// declines, the requester cancels.
type RequestService struct {
	store repository.Store
	perms *PermissionService
}

func NewRequestService(store repository.Store, perms *PermissionService) *RequestService {
	return &RequestService{store: store, perms: perms}
}

// Create files a join request. Rejects owners, existing members and
// duplicate pending requests.
func (s *RequestService) Create(ctx context.Context, userID, companyID uint) (*models.CompanyRequest, error) {
	var request *models.CompanyRequest
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		company, err := uow.Companies().FindByID(ctx, companyID)
		if err != nil {
			return err
		}
		if company.OwnerID == userID {
			return fmt.Errorf("%w: you already own this company", apperrors.ErrBadRequest)
		}
		if _, err := uow.Members().FindByCompanyAndUser(ctx, companyID, userID); err == nil {
			return fmt.Errorf("%w: already a member", apperrors.ErrCompanyPermission)
		} else if !errors.Is(err, apperrors.ErrMemberNotFound) {
			return err
		}
		pending, err := uow.Requests().HasPending(ctx, companyID, userID)
		if err != nil {
			return err
		}
		if pending {
			return fmt.Errorf("%w: a pending request already exists", apperrors.ErrBadRequest)
		}

		request, err = uow.Requests().AddOne(ctx, &models.CompanyRequest{
			CompanyID:       companyID,
			RequestedUserID: userID,
			Status:          models.InvitePending,
		})
		return err
	})
	return request, err
}

// Cancel is requester-only; pending -> cancelled.
func (s *RequestService) Cancel(ctx context.Context, userID, requestID uint) error {
	return s.transition(ctx, requestID, models.InviteCancelled, func(ctx context.Context, uow repository.UnitOfWork, req *models.CompanyRequest) error {
		return s.perms.SelfOnly(req.RequestedUserID, userID)
	})
}

// Accept is owner-only; pending -> accepted, and adds the membership row.
func (s *RequestService) Accept(ctx context.Context, ownerID, requestID uint) error {
	return s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		req, err := uow.Requests().FindByID(ctx, requestID)
		if err != nil {
			return err
		}
		if _, err := s.perms.IsOwner(ctx, uow, req.CompanyID, ownerID); err != nil {
			return err
		}
		if _, err := uow.Members().FindByCompanyAndUser(ctx, req.CompanyID, req.RequestedUserID); err == nil {
			return fmt.Errorf("%w: already a member", apperrors.ErrCompanyPermission)
		} else if !errors.Is(err, apperrors.ErrMemberNotFound) {
			return err
		}
		if req.Status != models.InvitePending {
			return fmt.Errorf("%w: request is already %s", apperrors.ErrBadRequest, req.Status)
		}

		if _, err := uow.Requests().EditOne(ctx, requestID, map[string]any{"status": models.InviteAccepted}); err != nil {
			return err
		}
		_, err = uow.Members().AddOne(ctx, &models.CompanyMember{
			CompanyID: req.CompanyID,
			UserID:    req.RequestedUserID,
			IsAdmin:   false,
		})
		return err
	})
}

// Decline is owner-only; pending -> declined.
func (s *RequestService) Decline(ctx context.Context, ownerID, requestID uint) error {
	return s.transition(ctx, requestID, models.InviteDeclined, func(ctx context.Context, uow repository.UnitOfWork, req *models.CompanyRequest) error {
		_, err := s.perms.IsOwner(ctx, uow, req.CompanyID, ownerID)
		return err
	})
}

func (s *RequestService) transition(ctx context.Context, requestID uint, to models.InviteStatus,
	authorize func(context.Context, repository.UnitOfWork, *models.CompanyRequest) error) error {
	return s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		req, err := uow.Requests().FindByID(ctx, requestID)
		if err != nil {
			return err
		}
		if err := authorize(ctx, uow, req); err != nil {
			return err
		}
		if req.Status != models.InvitePending {
			return fmt.Errorf("%w: request is already %s", apperrors.ErrBadRequest, req.Status)
		}
		_, err = uow.Requests().EditOne(ctx, requestID, map[string]any{"status": to})
		return err
	})
}

// ListMine returns the caller's own join requests.
func (s *RequestService) ListMine(ctx context.Context, userID uint, skip, limit int) ([]models.CompanyRequest, int64, error) {
	var (
		requests []models.CompanyRequest
		total    int64
	)
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		var err error
		requests, total, err = uow.Requests().ListForUser(ctx, userID, skip, limit)
		return err
	})
	return requests, total, err
}

// ListReceived returns requests for every company the caller owns.
func (s *RequestService) ListReceived(ctx context.Context, ownerID uint, skip, limit int) ([]models.CompanyRequest, int64, error) {
	var (
		requests []models.CompanyRequest
		total    int64
	)
	err := s.store.WithUnitOfWork(ctx, func(uow repository.UnitOfWork) error {
		var err error
		requests, total, err = uow.Requests().ListForOwner(ctx, ownerID, skip, limit)
		return err
	})
	return requests, total, err
}
