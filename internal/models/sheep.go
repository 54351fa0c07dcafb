package models

import "time"

// Sheep is one animal's attribute profile. NecklaceID is a free-form
// reference to a wearable device id, not an enforced relation. Age and
// Weight are stored as strings, matching the upstream schema.
type Sheep struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	NecklaceID   string    `json:"necklaceID" validate:"required"`
	Age          string    `json:"age" validate:"required"`
	Race         string    `json:"race" validate:"required"`
	HealthStatus string    `json:"healthStatus" validate:"required"`
	Weight       string    `json:"weight" validate:"required"`
	Vaccinated   bool      `json:"vaccinated" gorm:"default:false"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
