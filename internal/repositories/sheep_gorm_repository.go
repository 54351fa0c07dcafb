package repositories

import (
	"fmt"

	"flock/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSheepRepository is a GORM implementation of SheepRepository.
type GORMSheepRepository struct {
	db *gorm.DB
}

// NewGORMSheepRepository creates a new instance of GORMSheepRepository.
func NewGORMSheepRepository(db *gorm.DB) *GORMSheepRepository {
	return &GORMSheepRepository{
		db: db,
	}
}

// GetAll retrieves all sheep from the database.
func (r *GORMSheepRepository) GetAll() ([]models.Sheep, error) {
	var sheep []models.Sheep
	if err := r.db.Find(&sheep).Error; err != nil {
		return nil, fmt.Errorf("failed to get all sheep: %w", err)
	}
	return sheep, nil
}

// GetByID retrieves a single sheep by its ID from the database.
func (r *GORMSheepRepository) GetByID(id string) (*models.Sheep, error) {
	var sheep models.Sheep
	if err := r.db.First(&sheep, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("sheep with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get sheep by ID %s: %w", id, err)
	}
	return &sheep, nil
}

// Create creates a new sheep record in the database.
func (r *GORMSheepRepository) Create(sheep *models.Sheep) error {
	if sheep.ID == "" {
		sheep.ID = uuid.New().String()
	}
	if err := r.db.Create(sheep).Error; err != nil {
		return fmt.Errorf("failed to create sheep: %w", err)
	}
	return nil
}

// Update saves all fields of an existing sheep record.
func (r *GORMSheepRepository) Update(sheep *models.Sheep) error {
	res := r.db.Save(sheep)
	if res.Error != nil {
		return fmt.Errorf("failed to update sheep: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("sheep with ID %s for update: %w", sheep.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a sheep record by its ID from the database.
func (r *GORMSheepRepository) Delete(id string) error {
	res := r.db.Delete(&models.Sheep{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete sheep: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("sheep with ID %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}
