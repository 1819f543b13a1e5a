package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mealbridge/internal/model"
)

// RequestRepository defines request persistence operations. The donation
// row and its requests form one consistency unit, so the coordinator's
// donation status flips live here and run under WithTransaction.
type RequestRepository interface {
	Create(ctx context.Context, request *model.Request) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Request, error)
	HasPending(ctx context.Context, donationID, receiverID uuid.UUID) (bool, error)
	MarkRejected(ctx context.Context, id uuid.UUID) (bool, error)
	MarkAccepted(ctx context.Context, id uuid.UUID, contact model.ContactInfo) (bool, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) (bool, error)
	RejectOtherPending(ctx context.Context, donationID, acceptedID uuid.UUID) error
	ReserveDonation(ctx context.Context, donationID uuid.UUID) (bool, error)
	CompleteDonation(ctx context.Context, donationID uuid.UUID) (bool, error)
	IncrementMealsServed(ctx context.Context) error
	ListForDonor(ctx context.Context, donorID uuid.UUID) ([]model.DonorRequestRow, error)
	ListForReceiver(ctx context.Context, receiverID uuid.UUID) ([]model.ReceiverRequestRow, error)
	CountPending(ctx context.Context) (int64, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RequestRepository) error) error
}

type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new request repository.
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// Create creates a new request record.
func (r *requestRepository) Create(ctx context.Context, request *model.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// FindByID finds a request by ID with its donation preloaded. The donation
// is loaded unscoped so requests against soft-deleted donations still
// resolve their parent; a hard-deleted donation leaves the association
// zero-valued.
func (r *requestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Request, error) {
	var request model.Request
	err := r.db.WithContext(ctx).
		Preload("Donation", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// HasPending reports whether the receiver already has a pending request on
// the donation.
func (r *requestRepository) HasPending(ctx context.Context, donationID, receiverID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Request{}).
		Where("donation_id = ? AND receiver_id = ? AND status = ?",
			donationID, receiverID, model.RequestStatusPending).
		Count(&count).Error
	return count > 0, err
}

// MarkRejected flips a pending request to rejected.
func (r *requestRepository) MarkRejected(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Request{}).
		Where("id = ? AND status = ?", id, model.RequestStatusPending).
		Update("status", model.RequestStatusRejected)
	return res.RowsAffected > 0, res.Error
}

// MarkAccepted flips a pending request to accepted and snapshots the donor
// contact onto it. The status condition makes the flip lose against a
// concurrent transition.
func (r *requestRepository) MarkAccepted(ctx context.Context, id uuid.UUID, contact model.ContactInfo) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Request{}).
		Where("id = ? AND status = ?", id, model.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":        model.RequestStatusAccepted,
			"donor_contact": contact,
		})
	return res.RowsAffected > 0, res.Error
}

// MarkCompleted flips an accepted request to completed.
func (r *requestRepository) MarkCompleted(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Request{}).
		Where("id = ? AND status = ?", id, model.RequestStatusAccepted).
		Update("status", model.RequestStatusCompleted)
	return res.RowsAffected > 0, res.Error
}

// RejectOtherPending bulk-rejects every other pending request on the
// donation. Rejected rows keep a nil donor contact.
func (r *requestRepository) RejectOtherPending(ctx context.Context, donationID, acceptedID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Request{}).
		Where("donation_id = ? AND id != ? AND status = ?",
			donationID, acceptedID, model.RequestStatusPending).
		Update("status", model.RequestStatusRejected).Error
}

// ReserveDonation conditionally flips the donation available -> reserved.
// A false return means another accept got there first or the donation left
// the available state.
func (r *requestRepository) ReserveDonation(ctx context.Context, donationID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Donation{}).
		Where("id = ? AND status = ?", donationID, model.DonationStatusAvailable).
		Update("status", model.DonationStatusReserved)
	return res.RowsAffected > 0, res.Error
}

// CompleteDonation conditionally flips the donation reserved -> completed.
func (r *requestRepository) CompleteDonation(ctx context.Context, donationID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Donation{}).
		Where("id = ? AND status = ?", donationID, model.DonationStatusReserved).
		Update("status", model.DonationStatusCompleted)
	return res.RowsAffected > 0, res.Error
}

// IncrementMealsServed bumps the platform counter by one. Runs inside the
// completion transaction so the counter moves exactly once per completion.
func (r *requestRepository) IncrementMealsServed(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&model.PlatformStats{}).
		Where("id = ?", 1).
		Update("meals_served", gorm.Expr("meals_served + 1")).Error
}

// ListForDonor lists requests against the donor's donations joined with
// donation and receiver display fields, newest first.
func (r *requestRepository) ListForDonor(ctx context.Context, donorID uuid.UUID) ([]model.DonorRequestRow, error) {
	var rows []model.DonorRequestRow
	err := r.db.WithContext(ctx).
		Table("requests").
		Select(`requests.id, requests.donation_id, requests.receiver_id, requests.message,
requests.status, requests.donor_contact, requests.created_at,
donations.title AS donation_title, donations.pickup_location,
users.name AS receiver_name, users.email AS receiver_email`).
		Joins("JOIN donations ON donations.id = requests.donation_id").
		Joins("JOIN users ON users.id = requests.receiver_id").
		Where("donations.donor_id = ?", donorID).
		Order("requests.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListForReceiver lists the receiver's requests joined with donation and
// donor display fields, newest first.
func (r *requestRepository) ListForReceiver(ctx context.Context, receiverID uuid.UUID) ([]model.ReceiverRequestRow, error) {
	var rows []model.ReceiverRequestRow
	err := r.db.WithContext(ctx).
		Table("requests").
		Select(`requests.id, requests.donation_id, requests.message, requests.status,
requests.donor_contact, requests.created_at,
donations.title AS donation_title, donations.description, donations.pickup_location,
donations.image_url, users.name AS donor_name`).
		Joins("JOIN donations ON donations.id = requests.donation_id").
		Joins("JOIN users ON users.id = donations.donor_id").
		Where("requests.receiver_id = ?", receiverID).
		Order("requests.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountPending counts requests still awaiting a donor decision.
func (r *requestRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Request{}).
		Where("status = ?", model.RequestStatusPending).
		Count(&count).Error
	return count, err
}

// WithTransaction executes a function within a database transaction.
func (r *requestRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo RequestRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &requestRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
