package model

import "time"

// PlatformStats is the singleton counter row. Counters are monotonically
// incremented by lifecycle events and never decremented by normal flows.
type PlatformStats struct {
	ID              uint      `json:"-" gorm:"primaryKey"`
	MealsServed     int64     `json:"meals_served" gorm:"not null;default:0"`
	DonorsJoined    int64     `json:"donors_joined" gorm:"not null;default:0"`
	ReceiversHelped int64     `json:"receivers_helped" gorm:"not null;default:0"`
	CitiesCovered   int64     `json:"cities_covered" gorm:"not null;default:0"`
	LastUpdated     time.Time `json:"last_updated" gorm:"autoUpdateTime"`
}
