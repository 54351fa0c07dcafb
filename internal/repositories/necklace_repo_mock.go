package repositories

import (
	"fmt"
	"sync"

	"flock/internal/models"

	"github.com/google/uuid"
)

// MockNecklaceRepository is an in-memory implementation of
// NecklaceRepository, keyed by device id.
type MockNecklaceRepository struct {
	necklaces map[string]models.Necklace
	mu        sync.RWMutex
}

// NewMockNecklaceRepository creates a new instance of MockNecklaceRepository.
func NewMockNecklaceRepository() *MockNecklaceRepository {
	return &MockNecklaceRepository{
		necklaces: make(map[string]models.Necklace),
	}
}

// GetByDeviceID returns the necklace for a device id.
func (r *MockNecklaceRepository) GetByDeviceID(deviceID string) (*models.Necklace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	necklace, ok := r.necklaces[deviceID]
	if !ok {
		return nil, fmt.Errorf("necklace with device ID %s: %w", deviceID, ErrNotFound)
	}
	return &necklace, nil
}

// AppendReadings appends readings for a device id, creating the necklace
// on first sight. The map key makes the find-or-create atomic here.
func (r *MockNecklaceRepository) AppendReadings(deviceID string, readings []models.Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	necklace, ok := r.necklaces[deviceID]
	if !ok {
		necklace = models.Necklace{ID: uuid.New().String(), DeviceID: deviceID}
	}
	necklace.Data = append(necklace.Data, readings...)
	r.necklaces[deviceID] = necklace
	return nil
}
