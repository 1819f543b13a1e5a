package repository

import (
	"context"

	"gorm.io/gorm"

	"mealbridge/internal/model"
)

// StatsPatch carries the admin stats update. Nil fields keep the prior
// counter value.
type StatsPatch struct {
	MealsServed     *int64
	DonorsJoined    *int64
	ReceiversHelped *int64
	CitiesCovered   *int64
}

// StatsRepository defines platform counter persistence. The counter record
// is a singleton row created on first access.
type StatsRepository interface {
	Get(ctx context.Context) (*model.PlatformStats, error)
	IncrementDonorsJoined(ctx context.Context) error
	IncrementReceiversHelped(ctx context.Context) error
	Update(ctx context.Context, patch StatsPatch) error
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new platform stats repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// Get returns the singleton counter row, creating it if absent.
func (r *statsRepository) Get(ctx context.Context) (*model.PlatformStats, error) {
	var stats model.PlatformStats
	if err := r.db.WithContext(ctx).FirstOrCreate(&stats, model.PlatformStats{ID: 1}).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepository) increment(ctx context.Context, column string) error {
	return r.db.WithContext(ctx).Model(&model.PlatformStats{}).
		Where("id = ?", 1).
		Update(column, gorm.Expr(column+" + 1")).Error
}

// IncrementDonorsJoined bumps the donor signup counter.
func (r *statsRepository) IncrementDonorsJoined(ctx context.Context) error {
	return r.increment(ctx, "donors_joined")
}

// IncrementReceiversHelped bumps the receiver signup counter.
func (r *statsRepository) IncrementReceiversHelped(ctx context.Context) error {
	return r.increment(ctx, "receivers_helped")
}

// Update overwrites counters provided in the patch, leaving the rest alone.
func (r *statsRepository) Update(ctx context.Context, patch StatsPatch) error {
	updates := map[string]interface{}{}
	if patch.MealsServed != nil {
		updates["meals_served"] = *patch.MealsServed
	}
	if patch.DonorsJoined != nil {
		updates["donors_joined"] = *patch.DonorsJoined
	}
	if patch.ReceiversHelped != nil {
		updates["receivers_helped"] = *patch.ReceiversHelped
	}
	if patch.CitiesCovered != nil {
		updates["cities_covered"] = *patch.CitiesCovered
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.PlatformStats{}).
		Where("id = ?", 1).
		Updates(updates).Error
}
