package services

import (
	"flock/internal/models"
	"flock/internal/repositories"
)

// SheepService handles business logic related to sheep records.
type SheepService struct {
	repo repositories.SheepRepository
}

// NewSheepService creates a new SheepService.
func NewSheepService(repo repositories.SheepRepository) *SheepService {
	return &SheepService{
		repo: repo,
	}
}

// GetAllSheep retrieves all sheep records.
func (s *SheepService) GetAllSheep() ([]models.Sheep, error) {
	return s.repo.GetAll()
}

// GetSheepByID retrieves a single sheep record by its ID.
func (s *SheepService) GetSheepByID(id string) (*models.Sheep, error) {
	return s.repo.GetByID(id)
}

// CreateSheep creates a new sheep record.
func (s *SheepService) CreateSheep(sheep *models.Sheep) error {
	return s.repo.Create(sheep)
}

// UpdateSheep replaces the attributes of an existing sheep record and
// returns the post-update state.
func (s *SheepService) UpdateSheep(id string, attrs models.Sheep) (*models.Sheep, error) {
	sheep, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	sheep.NecklaceID = attrs.NecklaceID
	sheep.Age = attrs.Age
	sheep.Race = attrs.Race
	sheep.HealthStatus = attrs.HealthStatus
	sheep.Weight = attrs.Weight
	sheep.Vaccinated = attrs.Vaccinated

	if err := s.repo.Update(sheep); err != nil {
		return nil, err
	}
	return sheep, nil
}

// DeleteSheep deletes a sheep record by its ID.
func (s *SheepService) DeleteSheep(id string) error {
	return s.repo.Delete(id)
}
