package models

import (
	"gorm.io/gorm"
	"time"
)

type Season struct {
	gorm.Model
	ID        uint `gorm:"primaryKey"`
	Year      int  `gorm:"uniqueIndex; not null"`
	StartDate *time.Time
	EndDate   *time.Time
}
