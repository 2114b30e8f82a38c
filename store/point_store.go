package store

import (
	"strings"
	"sync"
	"time"

	"touristpoints-service/models"
)

// PointStore is the in-memory collection of tourist points. Mutations are
// serialized behind the mutex because gin serves requests concurrently.
type PointStore struct {
	mu     sync.RWMutex
	points []models.TouristPoint
	index  map[int64]int
	nextID int64
}

// NewPointStore constructs an empty store. The id counter starts at the
// current unix-millisecond reading so ids keep their wall-clock scale, but
// every subsequent id comes from the counter, never the clock.
func NewPointStore() *PointStore {
	return &PointStore{
		index:  make(map[int64]int),
		nextID: time.Now().UnixMilli(),
	}
}

// Add assigns an id and creation timestamp and appends the record.
func (s *PointStore) Add(name, description string, photo *string, latitude, longitude *float64) models.TouristPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	point := models.TouristPoint{
		ID:          s.nextID,
		Name:        name,
		Description: description,
		Photo:       photo,
		Latitude:    latitude,
		Longitude:   longitude,
		CreatedAt:   time.Now().UTC(),
	}
	s.index[point.ID] = len(s.points)
	s.points = append(s.points, point)
	return point
}

// All returns every record in insertion order. The slice is a copy and is
// never nil.
func (s *PointStore) All() []models.TouristPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.TouristPoint, len(s.points))
	copy(out, s.points)
	return out
}

// FindByID looks a record up by id.
func (s *PointStore) FindByID(id int64) (models.TouristPoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return models.TouristPoint{}, false
	}
	return s.points[i], true
}

// RemoveByID deletes the record with the given id, preserving the order of
// the remaining records. It reports whether a record was removed, so a
// repeated delete of the same id reports false.
func (s *PointStore) RemoveByID(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.points = append(s.points[:i], s.points[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.points); j++ {
		s.index[s.points[j].ID] = j
	}
	return true
}

// FilterByName returns the records whose name contains substr
// case-insensitively, in insertion order. An empty substr matches everything.
func (s *PointStore) FilterByName(substr string) []models.TouristPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(substr)
	out := make([]models.TouristPoint, 0, len(s.points))
	for _, p := range s.points {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}
