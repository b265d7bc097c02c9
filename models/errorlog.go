package models

import "gorm.io/gorm"

// ErrorLog records data-quality warnings and internal failures that should
// not surface to submitters, e.g. a leg with unusable odds during recompute.
type ErrorLog struct {
	gorm.Model
	ID      uint   `gorm:"primaryKey"`
	Context string `gorm:"size:100"`
	Message string
}
