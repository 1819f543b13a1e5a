package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"mealbridge/internal/errors"
	"mealbridge/internal/model"
)

func TestDonationService_Create(t *testing.T) {
	donorID := uuid.New()

	tests := []struct {
		name          string
		input         CreateDonationInput
		setupMock     func(*MockDonationRepository, *MockAuditService)
		expectedError error
	}{
		{
			name: "successful creation",
			input: CreateDonationInput{
				Title:          "Day-old bread",
				Category:       "bakery",
				Quantity:       "3 crates",
				PickupLocation: "12 Mill St",
			},
			setupMock: func(mDon *MockDonationRepository, mAudit *MockAuditService) {
				mDon.On("Create", mock.Anything, mock.AnythingOfType("*model.Donation")).Return(nil)
				mAudit.On("Record", mock.Anything, mock.Anything, model.AuditActionCreate, "donation", mock.Anything, mock.Anything).Return()
			},
			expectedError: nil,
		},
		{
			name: "missing title",
			input: CreateDonationInput{
				Quantity:       "3 crates",
				PickupLocation: "12 Mill St",
			},
			setupMock:     func(mDon *MockDonationRepository, mAudit *MockAuditService) {},
			expectedError: errors.ErrMissingFields,
		},
		{
			name: "missing pickup location",
			input: CreateDonationInput{
				Title:    "Day-old bread",
				Quantity: "3 crates",
			},
			setupMock:     func(mDon *MockDonationRepository, mAudit *MockAuditService) {},
			expectedError: errors.ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockDonationRepository)
			mockAudit := new(MockAuditService)
			tt.setupMock(mockRepo, mockAudit)

			service := NewDonationService(mockRepo, mockAudit, nil)
			donation, err := service.Create(context.Background(), donorID, tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, donation)
				mockAudit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, donation)
				assert.Equal(t, model.DonationStatusAvailable, donation.Status)
				assert.Equal(t, donorID, donation.DonorID)
			}

			mockRepo.AssertExpectations(t)
			mockAudit.AssertExpectations(t)
		})
	}
}

func TestDonationService_Update(t *testing.T) {
	donorID := uuid.New()
	donationID := uuid.New()

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		mockRepo := new(MockDonationRepository)
		mockAudit := new(MockAuditService)

		existing := &model.Donation{
			ID:             donationID,
			DonorID:        donorID,
			Title:          "Day-old bread",
			Quantity:       "3 crates",
			PickupLocation: "12 Mill St",
			Status:         model.DonationStatusAvailable,
		}
		mockRepo.On("FindByIDAndDonor", mock.Anything, donationID, donorID).Return(existing, nil)
		mockRepo.On("Save", mock.Anything, existing).Return(nil)

		newTitle := "Fresh bread"
		service := NewDonationService(mockRepo, mockAudit, nil)
		updated, err := service.Update(context.Background(), donorID, donationID, UpdateDonationInput{
			Title: &newTitle,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Fresh bread", updated.Title)
		assert.Equal(t, "3 crates", updated.Quantity)
		assert.Equal(t, "12 Mill St", updated.PickupLocation)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not owned reads as not found", func(t *testing.T) {
		mockRepo := new(MockDonationRepository)
		mockAudit := new(MockAuditService)

		mockRepo.On("FindByIDAndDonor", mock.Anything, donationID, donorID).Return(nil, gorm.ErrRecordNotFound)

		service := NewDonationService(mockRepo, mockAudit, nil)
		updated, err := service.Update(context.Background(), donorID, donationID, UpdateDonationInput{})

		assert.Equal(t, errors.ErrDonationNotFound, err)
		assert.Nil(t, updated)
		mockRepo.AssertExpectations(t)
	})
}

func TestDonationService_SoftDelete(t *testing.T) {
	donorID := uuid.New()
	donationID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockDonationRepository, *MockAuditService)
		expectedError error
	}{
		{
			name: "successful soft delete records audit entry",
			setupMock: func(mDon *MockDonationRepository, mAudit *MockAuditService) {
				mDon.On("SoftDeleteOwned", mock.Anything, donationID, donorID).Return(true, nil)
				mAudit.On("Record", mock.Anything, mock.Anything, model.AuditActionSoftDelete, "donation", donationID.String(), mock.Anything).Return()
			},
			expectedError: nil,
		},
		{
			name: "unknown donation",
			setupMock: func(mDon *MockDonationRepository, mAudit *MockAuditService) {
				mDon.On("SoftDeleteOwned", mock.Anything, donationID, donorID).Return(false, nil)
			},
			expectedError: errors.ErrDonationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockDonationRepository)
			mockAudit := new(MockAuditService)
			tt.setupMock(mockRepo, mockAudit)

			service := NewDonationService(mockRepo, mockAudit, nil)
			err := service.SoftDelete(context.Background(), donorID, donationID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
			mockAudit.AssertExpectations(t)
		})
	}
}

func TestDonationService_Get(t *testing.T) {
	donationID := uuid.New()

	t.Run("returns listing", func(t *testing.T) {
		mockRepo := new(MockDonationRepository)
		mockAudit := new(MockAuditService)

		mockRepo.On("GetListing", mock.Anything, donationID).Return(&model.DonationListing{
			ID:    donationID,
			Title: "Day-old bread",
		}, nil)

		service := NewDonationService(mockRepo, mockAudit, nil)
		listing, err := service.Get(context.Background(), donationID)

		assert.NoError(t, err)
		assert.Equal(t, donationID, listing.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown donation", func(t *testing.T) {
		mockRepo := new(MockDonationRepository)
		mockAudit := new(MockAuditService)

		mockRepo.On("GetListing", mock.Anything, donationID).Return(nil, gorm.ErrRecordNotFound)

		service := NewDonationService(mockRepo, mockAudit, nil)
		listing, err := service.Get(context.Background(), donationID)

		assert.Equal(t, errors.ErrDonationNotFound, err)
		assert.Nil(t, listing)
		mockRepo.AssertExpectations(t)
	})
}
