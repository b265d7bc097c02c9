package models

import (
	"gorm.io/gorm"
	"time"
)

type Team struct {
	gorm.Model
	ID       uint   `gorm:"primaryKey"`
	SeasonID uint   `gorm:"uniqueIndex:team_season_name_idx"`
	Season   Season `gorm:"foreignKey:SeasonID"`
	Name     string `gorm:"uniqueIndex:team_season_name_idx; size:100"`
}

// TeamMembership lets the same user ride with a different team each season.
type TeamMembership struct {
	gorm.Model
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"uniqueIndex:membership_user_team_idx"`
	User     User `gorm:"foreignKey:UserID"`
	TeamID   uint `gorm:"uniqueIndex:membership_user_team_idx"`
	Team     Team `gorm:"foreignKey:TeamID"`
	JoinedAt time.Time
}
