package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mealbridge/internal/auth"
	"mealbridge/internal/errors"
	"mealbridge/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockUserRepository, *MockStatsRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name: "donor signup moves the donor counter",
			input: RegisterInput{
				Email:    "bakery@example.com",
				Password: "password123",
				Role:     model.RoleDonor,
				Name:     "Corner Bakery",
			},
			setupMock: func(mUser *MockUserRepository, mStats *MockStatsRepository, mToken *MockTokenStore) {
				mUser.On("FindByEmail", mock.Anything, "bakery@example.com").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mStats.On("IncrementDonorsJoined", mock.Anything).Return(nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "bakery@example.com", model.RoleDonor, mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "receiver signup moves the receiver counter",
			input: RegisterInput{
				Email:    "shelter@example.com",
				Password: "password123",
				Role:     model.RoleReceiver,
				Name:     "City Shelter",
			},
			setupMock: func(mUser *MockUserRepository, mStats *MockStatsRepository, mToken *MockTokenStore) {
				mUser.On("FindByEmail", mock.Anything, "shelter@example.com").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mStats.On("IncrementReceiversHelped", mock.Anything).Return(nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "shelter@example.com", model.RoleReceiver, mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "email already taken",
			input: RegisterInput{
				Email:    "existing@example.com",
				Password: "password123",
				Role:     model.RoleDonor,
				Name:     "Existing User",
			},
			setupMock: func(mUser *MockUserRepository, mStats *MockStatsRepository, mToken *MockTokenStore) {
				mUser.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: errors.ErrEmailTaken,
		},
		{
			name: "unknown role",
			input: RegisterInput{
				Email:    "odd@example.com",
				Password: "password123",
				Role:     model.Role("moderator"),
				Name:     "Odd User",
			},
			setupMock:     func(mUser *MockUserRepository, mStats *MockStatsRepository, mToken *MockTokenStore) {},
			expectedError: errors.ErrInvalidRole,
		},
		{
			name: "missing required fields",
			input: RegisterInput{
				Email: "partial@example.com",
				Role:  model.RoleDonor,
			},
			setupMock:     func(mUser *MockUserRepository, mStats *MockStatsRepository, mToken *MockTokenStore) {},
			expectedError: errors.ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockStatsRepo := new(MockStatsRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockUserRepo, mockStatsRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockUserRepo, mockStatsRepo, jwtService, mockTokenStore)

			user, tokens, err := service.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.input.Email, user.Email)
				assert.Equal(t, tt.input.Role, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEmpty(t, tokens.AccessToken)
				assert.NotEmpty(t, tokens.RefreshToken)
			}

			mockUserRepo.AssertExpectations(t)
			mockStatsRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "bakery@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				mUser.On("FindByEmail", mock.Anything, "bakery@example.com").Return(&model.User{
					Email:        "bakery@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleDonor,
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "bakery@example.com", model.RoleDonor, mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore) {
				mUser.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "bakery@example.com",
			password: "wrong-password",
			setupMock: func(mUser *MockUserRepository, mToken *MockTokenStore) {
				hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
				mUser.On("FindByEmail", mock.Anything, "bakery@example.com").Return(&model.User{
					Email:        "bakery@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockStatsRepo := new(MockStatsRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockUserRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockUserRepo, mockStatsRepo, jwtService, mockTokenStore)

			user, tokens, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, tokens.AccessToken)
				assert.NotEmpty(t, tokens.RefreshToken)
			}

			mockUserRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")

	t.Run("valid refresh token issues a new access token", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockStatsRepo := new(MockStatsRepository)
		mockTokenStore := new(MockTokenStore)

		user := &model.User{Email: "bakery@example.com", Role: model.RoleDonor}
		user.ID = uuid.New()
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(user.ID, user.Email, user.Role)
		assert.NoError(t, err)

		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(user.ID, user.Email, user.Role, nil)

		service := NewAuthService(mockUserRepo, mockStatsRepo, jwtService, mockTokenStore)
		accessToken, err := service.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("stored identity mismatch is rejected", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockStatsRepo := new(MockStatsRepository)
		mockTokenStore := new(MockTokenStore)

		userID := uuid.New()
		otherID := uuid.New()
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, "bakery@example.com", model.RoleDonor)
		assert.NoError(t, err)

		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(otherID, "bakery@example.com", model.RoleDonor, nil)

		service := NewAuthService(mockUserRepo, mockStatsRepo, jwtService, mockTokenStore)
		accessToken, err := service.RefreshToken(context.Background(), refreshToken)

		assert.Equal(t, errors.ErrInvalidRefreshToken, err)
		assert.Empty(t, accessToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockStatsRepo := new(MockStatsRepository)
		mockTokenStore := new(MockTokenStore)

		service := NewAuthService(mockUserRepo, mockStatsRepo, jwtService, mockTokenStore)
		accessToken, err := service.RefreshToken(context.Background(), "not-a-token")

		assert.Equal(t, errors.ErrInvalidRefreshToken, err)
		assert.Empty(t, accessToken)
	})
}
