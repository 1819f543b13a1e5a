package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestStatus represents the lifecycle status of a request.
// Transitions: pending -> accepted|rejected; accepted -> completed.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCompleted RequestStatus = "completed"
)

// ContactInfo is the donor contact snapshot attached to a request when the
// donor accepts it. Stored as a JSON column.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Value implements driver.Valuer for JSON column storage.
func (c ContactInfo) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSON column retrieval.
func (c *ContactInfo) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported contact info type %T", value)
	}
}

// Request represents one receiver's claim against one donation.
// DonorContact is non-nil exactly when the request is accepted or completed.
type Request struct {
	ID           uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	DonationID   uuid.UUID     `json:"donation_id" gorm:"type:char(36);not null;index"`
	ReceiverID   uuid.UUID     `json:"receiver_id" gorm:"type:char(36);not null;index"`
	Message      string        `json:"message,omitempty" gorm:"type:text"`
	Status       RequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	DonorContact *ContactInfo  `json:"donor_contact,omitempty" gorm:"type:json"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	// Relations
	Donation Donation `json:"-" gorm:"foreignKey:DonationID"`
	Receiver User     `json:"-" gorm:"foreignKey:ReceiverID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// DonorRequestRow is a request joined with donation and receiver display
// fields, as listed on the donor side.
type DonorRequestRow struct {
	ID             uuid.UUID     `json:"id"`
	DonationID     uuid.UUID     `json:"donation_id"`
	ReceiverID     uuid.UUID     `json:"receiver_id"`
	Message        string        `json:"message,omitempty"`
	Status         RequestStatus `json:"status"`
	DonorContact   *ContactInfo  `json:"donor_contact,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	DonationTitle  string        `json:"donation_title"`
	PickupLocation string        `json:"pickup_location"`
	ReceiverName   string        `json:"receiver_name"`
	ReceiverEmail  string        `json:"receiver_email"`
}

// ReceiverRequestRow is a request joined with donation and donor display
// fields, as listed on the receiver side.
type ReceiverRequestRow struct {
	ID             uuid.UUID     `json:"id"`
	DonationID     uuid.UUID     `json:"donation_id"`
	Message        string        `json:"message,omitempty"`
	Status         RequestStatus `json:"status"`
	DonorContact   *ContactInfo  `json:"donor_contact,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	DonationTitle  string        `json:"donation_title"`
	Description    string        `json:"description,omitempty"`
	PickupLocation string        `json:"pickup_location"`
	ImageURL       string        `json:"image_url,omitempty"`
	DonorName      string        `json:"donor_name"`
}
