package services

import (
	"flock/internal/models"
	"flock/internal/repositories"
)

// NecklaceService handles business logic related to necklace telemetry.
type NecklaceService struct {
	repo repositories.NecklaceRepository
}

// NewNecklaceService creates a new NecklaceService.
func NewNecklaceService(repo repositories.NecklaceRepository) *NecklaceService {
	return &NecklaceService{
		repo: repo,
	}
}

// GetByDeviceID retrieves the necklace document for a device id.
func (s *NecklaceService) GetByDeviceID(deviceID string) (*models.Necklace, error) {
	return s.repo.GetByDeviceID(deviceID)
}

// AppendReadings appends readings to the necklace for deviceID, creating
// the document on first sight. Readings are preserved in the order given.
func (s *NecklaceService) AppendReadings(deviceID string, readings []models.Reading) error {
	return s.repo.AppendReadings(deviceID, readings)
}
