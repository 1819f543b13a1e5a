package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mealbridge/internal/cache"
	"mealbridge/internal/errors"
	"mealbridge/internal/model"
	"mealbridge/internal/repository"
)

const donationCacheTTL = 5 * time.Minute

// CreateDonationInput carries the fields for a new donation.
type CreateDonationInput struct {
	Title          string
	Description    string
	Category       string
	Quantity       string
	ExpiryDate     *time.Time
	PickupLocation string
	ImageURL       string
}

// UpdateDonationInput carries a partial donation update. Nil fields keep
// the prior value; provided fields overwrite unconditionally.
type UpdateDonationInput struct {
	Title          *string
	Description    *string
	Category       *string
	Quantity       *string
	ExpiryDate     *time.Time
	PickupLocation *string
	ImageURL       *string
	Status         *model.DonationStatus
}

// DonationService handles the donation lifecycle.
type DonationService interface {
	Create(ctx context.Context, donorID uuid.UUID, input CreateDonationInput) (*model.Donation, error)
	Update(ctx context.Context, donorID, id uuid.UUID, input UpdateDonationInput) (*model.Donation, error)
	SoftDelete(ctx context.Context, donorID, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.DonationListing, error)
	List(ctx context.Context, filter repository.DonationFilter) ([]model.DonationListing, error)
	ListMine(ctx context.Context, donorID uuid.UUID) ([]model.Donation, error)
}

type donationService struct {
	repo  repository.DonationRepository
	audit AuditService
	cache *cache.Client
}

// NewDonationService creates a new donation service.
func NewDonationService(repo repository.DonationRepository, audit AuditService, cache *cache.Client) DonationService {
	return &donationService{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (s *donationService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("donation:%s", id.String())
}

// Create posts a new donation in the available state.
func (s *donationService) Create(ctx context.Context, donorID uuid.UUID, input CreateDonationInput) (*model.Donation, error) {
	if input.Title == "" || input.Quantity == "" || input.PickupLocation == "" {
		return nil, errors.ErrMissingFields
	}

	donation := &model.Donation{
		DonorID:        donorID,
		Title:          input.Title,
		Description:    input.Description,
		Category:       input.Category,
		Quantity:       input.Quantity,
		ExpiryDate:     input.ExpiryDate,
		PickupLocation: input.PickupLocation,
		ImageURL:       input.ImageURL,
		Status:         model.DonationStatusAvailable,
	}

	if err := s.repo.Create(ctx, donation); err != nil {
		return nil, fmt.Errorf("create donation: %w", err)
	}

	s.audit.Record(ctx, &donorID, model.AuditActionCreate, "donation", donation.ID.String(),
		fmt.Sprintf("Created donation: %s", donation.Title))

	return donation, nil
}

// Update applies a partial edit to a donation owned by donorID. The status
// field lets the owner cancel manually; the reserved and completed flips
// belong to the request workflow.
func (s *donationService) Update(ctx context.Context, donorID, id uuid.UUID, input UpdateDonationInput) (*model.Donation, error) {
	donation, err := s.repo.FindByIDAndDonor(ctx, id, donorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrDonationNotFound
		}
		return nil, fmt.Errorf("find donation: %w", err)
	}

	if input.Title != nil {
		donation.Title = *input.Title
	}
	if input.Description != nil {
		donation.Description = *input.Description
	}
	if input.Category != nil {
		donation.Category = *input.Category
	}
	if input.Quantity != nil {
		donation.Quantity = *input.Quantity
	}
	if input.ExpiryDate != nil {
		donation.ExpiryDate = input.ExpiryDate
	}
	if input.PickupLocation != nil {
		donation.PickupLocation = *input.PickupLocation
	}
	if input.ImageURL != nil {
		donation.ImageURL = *input.ImageURL
	}
	if input.Status != nil {
		donation.Status = *input.Status
	}

	if err := s.repo.Save(ctx, donation); err != nil {
		return nil, fmt.Errorf("update donation: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return donation, nil
}

// SoftDelete hides a donation owned by donorID and cancels it. Repeating
// the call leaves visibility unchanged but still records an audit entry.
func (s *donationService) SoftDelete(ctx context.Context, donorID, id uuid.UUID) error {
	ok, err := s.repo.SoftDeleteOwned(ctx, id, donorID)
	if err != nil {
		return fmt.Errorf("soft delete donation: %w", err)
	}
	if !ok {
		return errors.ErrDonationNotFound
	}

	s.audit.Record(ctx, &donorID, model.AuditActionSoftDelete, "donation", id.String(), "Soft deleted donation")
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// Get retrieves one visible donation with donor display fields, cached.
func (s *donationService) Get(ctx context.Context, id uuid.UUID) (*model.DonationListing, error) {
	var cached model.DonationListing
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	listing, err := s.repo.GetListing(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrDonationNotFound
		}
		return nil, fmt.Errorf("get donation: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), listing, donationCacheTTL)
	return listing, nil
}

// List returns visible donations matching the filter, newest first.
func (s *donationService) List(ctx context.Context, filter repository.DonationFilter) ([]model.DonationListing, error) {
	return s.repo.List(ctx, filter)
}

// ListMine returns the donor's own donations.
func (s *donationService) ListMine(ctx context.Context, donorID uuid.UUID) ([]model.Donation, error) {
	return s.repo.ListByDonor(ctx, donorID)
}
