package repositories

import (
	"fmt"
	"sync"
	"time"

	"flock/internal/models"

	"github.com/google/uuid"
)

// MockSheepRepository is an in-memory implementation of SheepRepository.
type MockSheepRepository struct {
	sheep map[string]models.Sheep
	mu    sync.RWMutex
}

// NewMockSheepRepository creates a new instance of MockSheepRepository.
func NewMockSheepRepository() *MockSheepRepository {
	return &MockSheepRepository{
		sheep: make(map[string]models.Sheep),
	}
}

// GetAll returns all sheep.
func (r *MockSheepRepository) GetAll() ([]models.Sheep, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sheepList := make([]models.Sheep, 0, len(r.sheep))
	for _, s := range r.sheep {
		sheepList = append(sheepList, s)
	}
	return sheepList, nil
}

// GetByID returns a sheep by its ID.
func (r *MockSheepRepository) GetByID(id string) (*models.Sheep, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sheep, ok := r.sheep[id]
	if !ok {
		return nil, fmt.Errorf("sheep with ID %s: %w", id, ErrNotFound)
	}
	return &sheep, nil
}

// Create adds a new sheep record.
func (r *MockSheepRepository) Create(sheep *models.Sheep) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sheep.ID == "" {
		sheep.ID = uuid.New().String()
	}
	sheep.CreatedAt = time.Now()
	sheep.UpdatedAt = time.Now()
	r.sheep[sheep.ID] = *sheep
	return nil
}

// Update modifies an existing sheep record.
func (r *MockSheepRepository) Update(sheep *models.Sheep) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sheep[sheep.ID]
	if !ok {
		return fmt.Errorf("sheep with ID %s for update: %w", sheep.ID, ErrNotFound)
	}
	sheep.UpdatedAt = time.Now()
	r.sheep[sheep.ID] = *sheep
	return nil
}

// Delete removes a sheep record by its ID.
func (r *MockSheepRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sheep[id]
	if !ok {
		return fmt.Errorf("sheep with ID %s for deletion: %w", id, ErrNotFound)
	}
	delete(r.sheep, id)
	return nil
}
