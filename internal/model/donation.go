package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationStatus represents the lifecycle status of a donation.
// Transitions are monotone along available -> reserved -> completed;
// cancelled is reached from available or reserved via deletion only.
type DonationStatus string

const (
	DonationStatusAvailable DonationStatus = "available"
	DonationStatusReserved  DonationStatus = "reserved"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusCancelled DonationStatus = "cancelled"
)

// Donation represents one posted offer of surplus food.
type Donation struct {
	ID             uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	DonorID        uuid.UUID      `json:"donor_id" gorm:"type:char(36);not null;index"`
	Title          string         `json:"title" gorm:"size:255;not null"`
	Description    string         `json:"description,omitempty" gorm:"type:text"`
	Category       string         `json:"category,omitempty" gorm:"size:100;index"`
	Quantity       string         `json:"quantity" gorm:"size:100;not null"`
	ExpiryDate     *time.Time     `json:"expiry_date,omitempty"`
	PickupLocation string         `json:"pickup_location" gorm:"size:255;not null"`
	ImageURL       string         `json:"image_url,omitempty" gorm:"size:512"`
	Status         DonationStatus `json:"status" gorm:"type:varchar(20);not null;default:'available';index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	// Relations
	Donor User `json:"-" gorm:"foreignKey:DonorID"`
}

// BeforeCreate sets UUID before creating the record.
func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DonationListing is a donation joined with the donor's public display
// fields, as returned by receiver-facing listings.
type DonationListing struct {
	ID             uuid.UUID      `json:"id"`
	DonorID        uuid.UUID      `json:"donor_id"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Category       string         `json:"category,omitempty"`
	Quantity       string         `json:"quantity"`
	ExpiryDate     *time.Time     `json:"expiry_date,omitempty"`
	PickupLocation string         `json:"pickup_location"`
	ImageURL       string         `json:"image_url,omitempty"`
	Status         DonationStatus `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	DonorName      string         `json:"donor_name"`
	DonorEmail     string         `json:"donor_email"`
	DonorPhone     string         `json:"donor_phone,omitempty"`
}
