package models

import (
	"time"
)

// Equipment status values
const (
	StatusOperational         = "operational"
	StatusMaintenanceRequired = "maintenance_required"
	StatusOutOfService        = "out_of_service"
)

// Equipment represents a single machine in the farm fleet. Rows are
// written by the initializer only; handlers never mutate them.
type Equipment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null;index"`
	Type        string    `json:"type" gorm:"type:varchar(100)"`
	Status      string    `json:"status" gorm:"type:varchar(50);not null;index"`
	Location    string    `json:"location" gorm:"type:varchar(255)"`
	LastService string    `json:"last_service" gorm:"type:varchar(20)"` // YYYY-MM-DD
	Notes       string    `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
