package models

import (
	"gorm.io/gorm"
	"time"
)

// Bet statuses. A push returns the stake, zero profit.
const (
	StatusPending = "PENDING"
	StatusWon     = "WON"
	StatusLost    = "LOST"
	StatusPush    = "PUSH"
)

const (
	BetTypeSpread = "SPREAD"
	BetTypeTotal  = "TOTAL"
	BetTypeProp   = "PROP"
)

const (
	OverUnderOver  = "OVER"
	OverUnderUnder = "UNDER"
)

// Bet is one leg pick: a user places exactly one SPREAD, one TOTAL and one
// PROP per week, enforced by the composite unique index. TeamID denormalizes
// the membership at the time the pick was placed.
type Bet struct {
	gorm.Model
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"uniqueIndex:bet_user_week_type_idx"`
	User           User   `gorm:"foreignKey:UserID"`
	TeamID         uint   `gorm:"index"`
	Team           Team   `gorm:"foreignKey:TeamID"`
	SeasonID       uint   `gorm:"uniqueIndex:bet_user_week_type_idx"`
	Season         Season `gorm:"foreignKey:SeasonID"`
	Week           int    `gorm:"uniqueIndex:bet_user_week_type_idx"`
	BetType        string `gorm:"uniqueIndex:bet_user_week_type_idx; size:10"`
	PickText       string `gorm:"size:255"`
	Line           float64
	AmericanOdds   int
	StakeUnits     float64 `gorm:"default:1"`
	ParlaySelected bool    `gorm:"default:false"`
	OverUnder      *string `gorm:"size:5"` // required for TOTAL/PROP, nil for SPREAD
	Status         string  `gorm:"size:10; default:PENDING"`
	SettledAt      *time.Time
}

// Settled reports whether the leg has been graded.
func (b *Bet) Settled() bool {
	return b.Status != StatusPending
}
