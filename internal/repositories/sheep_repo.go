package repositories

import "flock/internal/models"

// SheepRepository defines the interface for sheep data access.
type SheepRepository interface {
	GetAll() ([]models.Sheep, error)
	GetByID(id string) (*models.Sheep, error)
	Create(sheep *models.Sheep) error
	Update(sheep *models.Sheep) error
	Delete(id string) error
}
