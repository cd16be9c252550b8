package models

import "time"

// Order is one service cycle for a table. A table has at most one active
// order at a time; creating a new order for a table closes the previous one.
type Order struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TableID     uint       `gorm:"not null;index" json:"table_id"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	IsReady     bool       `gorm:"not null;default:false" json:"is_ready"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}
