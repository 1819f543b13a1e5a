package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mealbridge/internal/model"
)

// DonationFilter narrows receiver-facing donation listings. Zero values
// leave the corresponding dimension unfiltered; an empty Status defaults
// to available only.
type DonationFilter struct {
	Status   string
	Category string
	Search   string
}

// DonationRepository defines donation persistence operations. Methods that
// do not say otherwise exclude soft-deleted rows.
type DonationRepository interface {
	Create(ctx context.Context, donation *model.Donation) error
	Save(ctx context.Context, donation *model.Donation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Donation, error)
	FindByIDAndDonor(ctx context.Context, id, donorID uuid.UUID) (*model.Donation, error)
	List(ctx context.Context, filter DonationFilter) ([]model.DonationListing, error)
	GetListing(ctx context.Context, id uuid.UUID) (*model.DonationListing, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]model.Donation, error)
	ListAll(ctx context.Context) ([]model.Donation, error)
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)
	SoftDeleteOwned(ctx context.Context, id, donorID uuid.UUID) (bool, error)
	Restore(ctx context.Context, id uuid.UUID) (bool, error)
	HardDelete(ctx context.Context, id uuid.UUID) (bool, error)
	CountActive(ctx context.Context) (int64, error)
	CountVisible(ctx context.Context) (int64, error)
}

type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository.
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

// Create creates a new donation record.
func (r *donationRepository) Create(ctx context.Context, donation *model.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

// Save persists all fields of an existing donation record.
func (r *donationRepository) Save(ctx context.Context, donation *model.Donation) error {
	return r.db.WithContext(ctx).Save(donation).Error
}

// FindByID finds a non-deleted donation by ID.
func (r *donationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	var donation model.Donation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

// FindByIDAndDonor finds a non-deleted donation owned by donorID.
func (r *donationRepository) FindByIDAndDonor(ctx context.Context, id, donorID uuid.UUID) (*model.Donation, error) {
	var donation model.Donation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND donor_id = ?", id, donorID).
		First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

const listingSelect = `donations.id, donations.donor_id, donations.title, donations.description,
donations.category, donations.quantity, donations.expiry_date, donations.pickup_location,
donations.image_url, donations.status, donations.created_at,
users.name AS donor_name, users.email AS donor_email, users.phone AS donor_phone`

// List returns visible donations joined with donor display fields, newest
// first. Without an explicit status filter only available donations show.
func (r *donationRepository) List(ctx context.Context, filter DonationFilter) ([]model.DonationListing, error) {
	query := r.db.WithContext(ctx).
		Table("donations").
		Select(listingSelect).
		Joins("JOIN users ON users.id = donations.donor_id").
		Where("donations.deleted_at IS NULL")

	if filter.Status != "" {
		query = query.Where("donations.status = ?", filter.Status)
	} else {
		query = query.Where("donations.status = ?", model.DonationStatusAvailable)
	}
	if filter.Category != "" {
		query = query.Where("donations.category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("donations.title LIKE ? OR donations.description LIKE ?", pattern, pattern)
	}

	var listings []model.DonationListing
	if err := query.Order("donations.created_at DESC").Scan(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// GetListing returns one visible donation joined with donor display fields.
func (r *donationRepository) GetListing(ctx context.Context, id uuid.UUID) (*model.DonationListing, error) {
	var listing model.DonationListing
	err := r.db.WithContext(ctx).
		Table("donations").
		Select(listingSelect).
		Joins("JOIN users ON users.id = donations.donor_id").
		Where("donations.id = ? AND donations.deleted_at IS NULL", id).
		Take(&listing).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// ListByDonor lists the donor's own non-deleted donations, newest first.
func (r *donationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]model.Donation, error) {
	var donations []model.Donation
	if err := r.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// ListAll lists every donation including soft-deleted rows. Admin use only.
func (r *donationRepository) ListAll(ctx context.Context) ([]model.Donation, error) {
	var donations []model.Donation
	if err := r.db.WithContext(ctx).Unscoped().
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// SoftDelete marks the donation deleted and cancels it. Runs unscoped so
// repeating the call still matches the row: visibility is idempotent while
// each call remains observable to the caller.
func (r *donationRepository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Unscoped().Model(&model.Donation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     model.DonationStatusCancelled,
			"deleted_at": time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

// SoftDeleteOwned is SoftDelete restricted to the owning donor.
func (r *donationRepository) SoftDeleteOwned(ctx context.Context, id, donorID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Unscoped().Model(&model.Donation{}).
		Where("id = ? AND donor_id = ?", id, donorID).
		Updates(map[string]interface{}{
			"status":     model.DonationStatusCancelled,
			"deleted_at": time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

// Restore clears the soft-delete marker and relists the donation as
// available, whatever state it had reached before deletion.
func (r *donationRepository) Restore(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Unscoped().Model(&model.Donation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     model.DonationStatusAvailable,
			"deleted_at": nil,
		})
	return res.RowsAffected > 0, res.Error
}

// HardDelete removes the donation row permanently, soft-deleted or not.
// Requests referencing it become stale reads; they are not cascaded.
func (r *donationRepository) HardDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Unscoped().
		Where("id = ?", id).
		Delete(&model.Donation{})
	return res.RowsAffected > 0, res.Error
}

// CountActive counts visible donations still in the available state.
func (r *donationRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Donation{}).
		Where("status = ?", model.DonationStatusAvailable).
		Count(&count).Error
	return count, err
}

// CountVisible counts all non-deleted donations.
func (r *donationRepository) CountVisible(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Donation{}).Count(&count).Error
	return count, err
}
