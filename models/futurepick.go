package models

import (
	"gorm.io/gorm"
	"time"
)

// FuturePick is a season-long bet (championship odds and the like). It has
// its own grading lifecycle and never feeds the weekly parlay aggregation.
type FuturePick struct {
	gorm.Model
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index"`
	User         User   `gorm:"foreignKey:UserID"`
	TeamID       uint   `gorm:"index"`
	Team         Team   `gorm:"foreignKey:TeamID"`
	SeasonID     uint   `gorm:"index"`
	Season       Season `gorm:"foreignKey:SeasonID"`
	Description  string `gorm:"size:255"`
	AmericanOdds int
	StakeUnits   float64 `gorm:"default:1"`
	Status       string  `gorm:"size:10; default:PENDING"`
	SettledAt    *time.Time
}
