package repositories

import "flock/internal/models"

// NecklaceRepository defines the interface for necklace data access.
// Necklaces are keyed by the external device id, not the row ID.
type NecklaceRepository interface {
	GetByDeviceID(deviceID string) (*models.Necklace, error)
	AppendReadings(deviceID string, readings []models.Reading) error
}
