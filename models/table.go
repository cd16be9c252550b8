package models

import "time"

// Table tracks the service state of a physical table. The ID is the physical
// table number supplied by the client, not an auto increment.
type Table struct {
	ID          uint       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	IsActive    bool       `gorm:"not null;default:false" json:"is_active"`
	IsReady     bool       `gorm:"not null;default:false" json:"is_ready"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}
