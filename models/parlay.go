package models

import "gorm.io/gorm"

// TeamParlay caches the combined odds and status of one team's weekly parlay.
// It is a pure projection of the parlay-selected legs for the same
// (team, season, week) and is only ever written by the recompute service.
type TeamParlay struct {
	gorm.Model
	ID          uint   `gorm:"primaryKey"`
	TeamID      uint   `gorm:"uniqueIndex:parlay_team_week_idx"`
	Team        Team   `gorm:"foreignKey:TeamID"`
	SeasonID    uint   `gorm:"uniqueIndex:parlay_team_week_idx"`
	Season      Season `gorm:"foreignKey:SeasonID"`
	Week        int    `gorm:"uniqueIndex:parlay_team_week_idx"`
	DecimalOdds float64 `gorm:"default:1"` // combined booked price, rounded to 4 decimals
	StakeUnits  float64 `gorm:"default:1"`
	Status      string  `gorm:"size:10; default:PENDING"`
}
