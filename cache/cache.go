package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"touristpoints-service/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The same storage key the mobile client used, so a snapshot written by one
// build stays readable by the next.
const snapshotKey = "@touristpoints_data"

type snapshot struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

// Store keeps the last-known-good tourist point list in a local sqlite file.
// Each Save fully replaces the previous snapshot.
type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.AutoMigrate(&snapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate cache database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Save(points []models.TouristPoint) error {
	data, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	entry := snapshot{Key: snapshotKey, Value: string(data), UpdatedAt: time.Now()}
	if err := s.db.Save(&entry).Error; err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load returns the cached list, or ok=false when no snapshot has ever been
// saved.
func (s *Store) Load() ([]models.TouristPoint, bool, error) {
	var entry snapshot
	err := s.db.First(&entry, "key = ?", snapshotKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var points []models.TouristPoint
	if err := json.Unmarshal([]byte(entry.Value), &points); err != nil {
		return nil, false, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return points, true, nil
}
