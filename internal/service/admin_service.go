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

const (
	statsCacheKey = "platform:stats"
	statsCacheTTL = time.Minute
	auditLogLimit = 100
)

// StatsOverview is the platform counter row plus derived totals for the
// admin dashboard.
type StatsOverview struct {
	model.PlatformStats
	TotalDonations  int64 `json:"total_donations"`
	TotalUsers      int64 `json:"total_users"`
	ActiveDonations int64 `json:"active_donations"`
	PendingRequests int64 `json:"pending_requests"`
}

// AdminService is the moderation overlay: visibility control over
// donations, user removal, and read access to audit logs and stats.
type AdminService interface {
	Stats(ctx context.Context) (*StatsOverview, error)
	UpdateStats(ctx context.Context, patch repository.StatsPatch) error
	ListUsers(ctx context.Context) ([]model.User, error)
	ListDonations(ctx context.Context) ([]model.Donation, error)
	SoftDeleteDonation(ctx context.Context, adminID, id uuid.UUID) error
	RestoreDonation(ctx context.Context, adminID, id uuid.UUID) error
	HardDeleteDonation(ctx context.Context, adminID, id uuid.UUID) error
	DeleteUser(ctx context.Context, adminID, id uuid.UUID) error
	AuditLogs(ctx context.Context) ([]model.AuditLogRow, error)
}

type adminService struct {
	userRepo     repository.UserRepository
	donationRepo repository.DonationRepository
	requestRepo  repository.RequestRepository
	statsRepo    repository.StatsRepository
	audit        AuditService
	cache        *cache.Client
}

// NewAdminService creates a new admin service.
func NewAdminService(
	userRepo repository.UserRepository,
	donationRepo repository.DonationRepository,
	requestRepo repository.RequestRepository,
	statsRepo repository.StatsRepository,
	audit AuditService,
	cache *cache.Client,
) AdminService {
	return &adminService{
		userRepo:     userRepo,
		donationRepo: donationRepo,
		requestRepo:  requestRepo,
		statsRepo:    statsRepo,
		audit:        audit,
		cache:        cache,
	}
}

// Stats returns platform counters with derived totals, briefly cached.
func (s *adminService) Stats(ctx context.Context) (*StatsOverview, error) {
	var cached StatsOverview
	if s.cache.GetJSON(ctx, statsCacheKey, &cached) {
		return &cached, nil
	}

	stats, err := s.statsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	overview := &StatsOverview{PlatformStats: *stats}
	if overview.TotalDonations, err = s.donationRepo.CountVisible(ctx); err != nil {
		return nil, fmt.Errorf("count donations: %w", err)
	}
	if overview.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if overview.ActiveDonations, err = s.donationRepo.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("count active donations: %w", err)
	}
	if overview.PendingRequests, err = s.requestRepo.CountPending(ctx); err != nil {
		return nil, fmt.Errorf("count pending requests: %w", err)
	}

	s.cache.SetJSON(ctx, statsCacheKey, overview, statsCacheTTL)
	return overview, nil
}

// UpdateStats patches the platform counters directly.
func (s *adminService) UpdateStats(ctx context.Context, patch repository.StatsPatch) error {
	if err := s.statsRepo.Update(ctx, patch); err != nil {
		return fmt.Errorf("update stats: %w", err)
	}
	_ = s.cache.Delete(ctx, statsCacheKey)
	return nil
}

// ListUsers returns every user, newest first.
func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// ListDonations returns every donation including soft-deleted ones.
func (s *adminService) ListDonations(ctx context.Context) ([]model.Donation, error) {
	return s.donationRepo.ListAll(ctx)
}

// SoftDeleteDonation hides any donation regardless of ownership.
func (s *adminService) SoftDeleteDonation(ctx context.Context, adminID, id uuid.UUID) error {
	ok, err := s.donationRepo.SoftDelete(ctx, id)
	if err != nil {
		return fmt.Errorf("soft delete donation: %w", err)
	}
	if !ok {
		return errors.ErrDonationNotFound
	}
	s.audit.Record(ctx, &adminID, model.AuditActionSoftDelete, "donation", id.String(), "Soft deleted donation")
	_ = s.cache.Delete(ctx, fmt.Sprintf("donation:%s", id.String()))
	return nil
}

// RestoreDonation clears the soft-delete marker and relists the donation
// as available, even if it had completed before deletion.
func (s *adminService) RestoreDonation(ctx context.Context, adminID, id uuid.UUID) error {
	ok, err := s.donationRepo.Restore(ctx, id)
	if err != nil {
		return fmt.Errorf("restore donation: %w", err)
	}
	if !ok {
		return errors.ErrDonationNotFound
	}
	s.audit.Record(ctx, &adminID, model.AuditActionRestore, "donation", id.String(), "Restored donation")
	_ = s.cache.Delete(ctx, fmt.Sprintf("donation:%s", id.String()))
	return nil
}

// HardDeleteDonation removes the row permanently. Requests referencing it
// are left in place and surface as stale reads.
func (s *adminService) HardDeleteDonation(ctx context.Context, adminID, id uuid.UUID) error {
	ok, err := s.donationRepo.HardDelete(ctx, id)
	if err != nil {
		return fmt.Errorf("hard delete donation: %w", err)
	}
	if !ok {
		return errors.ErrDonationNotFound
	}
	s.audit.Record(ctx, &adminID, model.AuditActionDelete, "donation", id.String(), "Permanently deleted donation")
	_ = s.cache.Delete(ctx, fmt.Sprintf("donation:%s", id.String()))
	return nil
}

// DeleteUser removes a non-admin user permanently.
func (s *adminService) DeleteUser(ctx context.Context, adminID, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if user.Role == model.RoleAdmin {
		return errors.ErrAdminUndeletable
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.audit.Record(ctx, &adminID, model.AuditActionDelete, "user", id.String(),
		fmt.Sprintf("Deleted user: %s", user.Email))
	return nil
}

// AuditLogs returns the most recent audit entries.
func (s *adminService) AuditLogs(ctx context.Context) ([]model.AuditLogRow, error) {
	return s.audit.Logs(ctx, auditLogLimit)
}
