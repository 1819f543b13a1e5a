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
	"mealbridge/internal/repository"
)

func newAdminServiceForTest(
	mUser *MockUserRepository,
	mDon *MockDonationRepository,
	mReq *MockRequestRepository,
	mStats *MockStatsRepository,
	mAudit *MockAuditService,
) AdminService {
	return NewAdminService(mUser, mDon, mReq, mStats, mAudit, nil)
}

func TestAdminService_Stats(t *testing.T) {
	mockUser := new(MockUserRepository)
	mockDon := new(MockDonationRepository)
	mockReq := new(MockRequestRepository)
	mockStats := new(MockStatsRepository)
	mockAudit := new(MockAuditService)

	mockStats.On("Get", mock.Anything).Return(&model.PlatformStats{
		ID:          1,
		MealsServed: 42,
	}, nil)
	mockDon.On("CountVisible", mock.Anything).Return(int64(10), nil)
	mockUser.On("Count", mock.Anything).Return(int64(7), nil)
	mockDon.On("CountActive", mock.Anything).Return(int64(4), nil)
	mockReq.On("CountPending", mock.Anything).Return(int64(3), nil)

	service := newAdminServiceForTest(mockUser, mockDon, mockReq, mockStats, mockAudit)
	overview, err := service.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(42), overview.MealsServed)
	assert.Equal(t, int64(10), overview.TotalDonations)
	assert.Equal(t, int64(7), overview.TotalUsers)
	assert.Equal(t, int64(4), overview.ActiveDonations)
	assert.Equal(t, int64(3), overview.PendingRequests)
	mockStats.AssertExpectations(t)
	mockDon.AssertExpectations(t)
}

func TestAdminService_UpdateStats(t *testing.T) {
	mockUser := new(MockUserRepository)
	mockDon := new(MockDonationRepository)
	mockReq := new(MockRequestRepository)
	mockStats := new(MockStatsRepository)
	mockAudit := new(MockAuditService)

	meals := int64(100)
	patch := repository.StatsPatch{MealsServed: &meals}
	mockStats.On("Update", mock.Anything, patch).Return(nil)

	service := newAdminServiceForTest(mockUser, mockDon, mockReq, mockStats, mockAudit)
	err := service.UpdateStats(context.Background(), patch)

	assert.NoError(t, err)
	mockStats.AssertExpectations(t)
}

func TestAdminService_RestoreDonation(t *testing.T) {
	adminID := uuid.New()
	donationID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockDonationRepository, *MockAuditService)
		expectedError error
	}{
		{
			name: "successful restore relists the donation",
			setupMock: func(mDon *MockDonationRepository, mAudit *MockAuditService) {
				mDon.On("Restore", mock.Anything, donationID).Return(true, nil)
				mAudit.On("Record", mock.Anything, mock.Anything, model.AuditActionRestore, "donation", donationID.String(), mock.Anything).Return()
			},
			expectedError: nil,
		},
		{
			name: "unknown donation",
			setupMock: func(mDon *MockDonationRepository, mAudit *MockAuditService) {
				mDon.On("Restore", mock.Anything, donationID).Return(false, nil)
			},
			expectedError: errors.ErrDonationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUser := new(MockUserRepository)
			mockDon := new(MockDonationRepository)
			mockReq := new(MockRequestRepository)
			mockStats := new(MockStatsRepository)
			mockAudit := new(MockAuditService)
			tt.setupMock(mockDon, mockAudit)

			service := newAdminServiceForTest(mockUser, mockDon, mockReq, mockStats, mockAudit)
			err := service.RestoreDonation(context.Background(), adminID, donationID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockDon.AssertExpectations(t)
			mockAudit.AssertExpectations(t)
		})
	}
}

func TestAdminService_DeleteUser(t *testing.T) {
	adminID := uuid.New()
	userID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository, *MockAuditService)
		expectedError error
	}{
		{
			name: "successful delete",
			setupMock: func(mUser *MockUserRepository, mAudit *MockAuditService) {
				mUser.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:    userID,
					Email: "donor@example.com",
					Role:  model.RoleDonor,
				}, nil)
				mUser.On("Delete", mock.Anything, userID).Return(nil)
				mAudit.On("Record", mock.Anything, mock.Anything, model.AuditActionDelete, "user", userID.String(), mock.Anything).Return()
			},
			expectedError: nil,
		},
		{
			name: "admin accounts cannot be deleted",
			setupMock: func(mUser *MockUserRepository, mAudit *MockAuditService) {
				mUser.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:   userID,
					Role: model.RoleAdmin,
				}, nil)
			},
			expectedError: errors.ErrAdminUndeletable,
		},
		{
			name: "unknown user",
			setupMock: func(mUser *MockUserRepository, mAudit *MockAuditService) {
				mUser.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUser := new(MockUserRepository)
			mockDon := new(MockDonationRepository)
			mockReq := new(MockRequestRepository)
			mockStats := new(MockStatsRepository)
			mockAudit := new(MockAuditService)
			tt.setupMock(mockUser, mockAudit)

			service := newAdminServiceForTest(mockUser, mockDon, mockReq, mockStats, mockAudit)
			err := service.DeleteUser(context.Background(), adminID, userID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				mockUser.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}

			mockUser.AssertExpectations(t)
			mockAudit.AssertExpectations(t)
		})
	}
}
