package repositories

import (
	"fmt"

	"flock/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMNecklaceRepository is a GORM implementation of NecklaceRepository.
type GORMNecklaceRepository struct {
	db *gorm.DB
}

// NewGORMNecklaceRepository creates a new instance of GORMNecklaceRepository.
func NewGORMNecklaceRepository(db *gorm.DB) *GORMNecklaceRepository {
	return &GORMNecklaceRepository{
		db: db,
	}
}

// GetByDeviceID retrieves a necklace and its readings, oldest first.
func (r *GORMNecklaceRepository) GetByDeviceID(deviceID string) (*models.Necklace, error) {
	var necklace models.Necklace
	err := r.db.Preload("Data", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	}).First(&necklace, "device_id = ?", deviceID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("necklace with device ID %s: %w", deviceID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get necklace by device ID %s: %w", deviceID, err)
	}
	return &necklace, nil
}

// AppendReadings appends readings to the necklace for deviceID, creating
// the necklace row first if it does not exist yet. Creation goes through
// ON CONFLICT DO NOTHING against the device_id unique index, so two
// concurrent appends for the same unseen device cannot produce two rows;
// the reading inserts themselves are plain appends and commute.
func (r *GORMNecklaceRepository) AppendReadings(deviceID string, readings []models.Reading) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		necklace := models.Necklace{ID: uuid.New().String(), DeviceID: deviceID}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "device_id"}},
			DoNothing: true,
		}).Create(&necklace).Error
		if err != nil {
			return fmt.Errorf("failed to create necklace for device ID %s: %w", deviceID, err)
		}

		// The row may predate this call, in which case the insert above was
		// a no-op and the generated ID is stale; re-read into a fresh value
		// for the real one (First would filter on a pre-set primary key).
		var existing models.Necklace
		if err := tx.First(&existing, "device_id = ?", deviceID).Error; err != nil {
			return fmt.Errorf("failed to load necklace for device ID %s: %w", deviceID, err)
		}

		for i := range readings {
			readings[i].Seq = 0
			readings[i].NecklaceID = existing.ID
		}
		if err := tx.Create(&readings).Error; err != nil {
			return fmt.Errorf("failed to append readings for device ID %s: %w", deviceID, err)
		}
		return nil
	})
}
