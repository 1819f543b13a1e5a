package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mealbridge/internal/cache"
	"mealbridge/internal/errors"
	"mealbridge/internal/model"
	"mealbridge/internal/repository"
)

// RequestService handles the request lifecycle and the reservation
// coordination between requests and their donation.
type RequestService interface {
	Create(ctx context.Context, receiverID, donationID uuid.UUID, message string) (*model.Request, error)
	Respond(ctx context.Context, donorID, requestID uuid.UUID, decision model.RequestStatus) error
	Complete(ctx context.Context, donorID, requestID uuid.UUID) error
	ListForDonor(ctx context.Context, donorID uuid.UUID) ([]model.DonorRequestRow, error)
	ListForReceiver(ctx context.Context, receiverID uuid.UUID) ([]model.ReceiverRequestRow, error)
}

type requestService struct {
	requestRepo  repository.RequestRepository
	donationRepo repository.DonationRepository
	userRepo     repository.UserRepository
	cache        *cache.Client
}

// NewRequestService creates a new request service.
func NewRequestService(
	requestRepo repository.RequestRepository,
	donationRepo repository.DonationRepository,
	userRepo repository.UserRepository,
	cache *cache.Client,
) RequestService {
	return &requestService{
		requestRepo:  requestRepo,
		donationRepo: donationRepo,
		userRepo:     userRepo,
		cache:        cache,
	}
}

// Create opens a pending claim against an available donation. At most one
// pending request may exist per (donation, receiver) pair.
func (s *requestService) Create(ctx context.Context, receiverID, donationID uuid.UUID, message string) (*model.Request, error) {
	donation, err := s.donationRepo.FindByID(ctx, donationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrDonationNotFound
		}
		return nil, fmt.Errorf("find donation: %w", err)
	}

	if donation.Status != model.DonationStatusAvailable {
		return nil, errors.ErrDonationNotAvailable
	}

	exists, err := s.requestRepo.HasPending(ctx, donationID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("check pending request: %w", err)
	}
	if exists {
		return nil, errors.ErrDuplicateRequest
	}

	request := &model.Request{
		DonationID: donationID,
		ReceiverID: receiverID,
		Message:    message,
		Status:     model.RequestStatusPending,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return request, nil
}

// loadOwned fetches the request and checks the caller owns its donation.
// A request whose donation was hard-deleted reads as not found.
func (s *requestService) loadOwned(ctx context.Context, donorID, requestID uuid.UUID) (*model.Request, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	if request.Donation.ID == uuid.Nil {
		return nil, errors.ErrRequestNotFound
	}
	if request.Donation.DonorID != donorID {
		return nil, errors.ErrForbidden
	}
	return request, nil
}

// Respond applies the donor's accept or reject decision to a pending
// request. Acceptance is exclusive: as one transaction, the donation flips
// available -> reserved (conditionally, so a concurrent accept loses), the
// request gains the donor contact snapshot and becomes accepted, and every
// other pending request on the donation is bulk-rejected.
func (s *requestService) Respond(ctx context.Context, donorID, requestID uuid.UUID, decision model.RequestStatus) error {
	if decision != model.RequestStatusAccepted && decision != model.RequestStatusRejected {
		return errors.ErrInvalidDecision
	}

	request, err := s.loadOwned(ctx, donorID, requestID)
	if err != nil {
		return err
	}
	if request.Status != model.RequestStatusPending {
		return errors.ErrRequestNotPending
	}

	if decision == model.RequestStatusRejected {
		ok, err := s.requestRepo.MarkRejected(ctx, requestID)
		if err != nil {
			return fmt.Errorf("reject request: %w", err)
		}
		if !ok {
			return errors.ErrRequestNotPending
		}
		return nil
	}

	donor, err := s.userRepo.FindByID(ctx, donorID)
	if err != nil {
		return fmt.Errorf("find donor: %w", err)
	}
	contact := model.ContactInfo{
		Name:  donor.Name,
		Email: donor.Email,
		Phone: donor.Phone,
	}

	err = s.requestRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.RequestRepository) error {
		reserved, err := txRepo.ReserveDonation(ctx, request.DonationID)
		if err != nil {
			return fmt.Errorf("reserve donation: %w", err)
		}
		if !reserved {
			return errors.ErrDonationNotAvailable
		}

		accepted, err := txRepo.MarkAccepted(ctx, requestID, contact)
		if err != nil {
			return fmt.Errorf("accept request: %w", err)
		}
		if !accepted {
			return errors.ErrRequestNotPending
		}

		if err := txRepo.RejectOtherPending(ctx, request.DonationID, requestID); err != nil {
			return fmt.Errorf("reject other pending: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, fmt.Sprintf("donation:%s", request.DonationID.String()))
	return nil
}

// Complete closes out an accepted request: as one transaction the donation
// flips reserved -> completed, the request becomes completed, and the
// meals-served counter moves by exactly one.
func (s *requestService) Complete(ctx context.Context, donorID, requestID uuid.UUID) error {
	request, err := s.loadOwned(ctx, donorID, requestID)
	if err != nil {
		return err
	}
	if request.Status != model.RequestStatusAccepted {
		return errors.ErrRequestNotAccepted
	}

	err = s.requestRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.RequestRepository) error {
		done, err := txRepo.CompleteDonation(ctx, request.DonationID)
		if err != nil {
			return fmt.Errorf("complete donation: %w", err)
		}
		if !done {
			return errors.ErrDonationNotReserved
		}

		completed, err := txRepo.MarkCompleted(ctx, requestID)
		if err != nil {
			return fmt.Errorf("complete request: %w", err)
		}
		if !completed {
			return errors.ErrRequestNotAccepted
		}

		if err := txRepo.IncrementMealsServed(ctx); err != nil {
			return fmt.Errorf("increment meals served: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, fmt.Sprintf("donation:%s", request.DonationID.String()))
	_ = s.cache.Delete(ctx, statsCacheKey)
	return nil
}

// ListForDonor lists requests against the donor's donations.
func (s *requestService) ListForDonor(ctx context.Context, donorID uuid.UUID) ([]model.DonorRequestRow, error) {
	return s.requestRepo.ListForDonor(ctx, donorID)
}

// ListForReceiver lists the receiver's own requests.
func (s *requestService) ListForReceiver(ctx context.Context, receiverID uuid.UUID) ([]model.ReceiverRequestRow, error) {
	return s.requestRepo.ListForReceiver(ctx, receiverID)
}
