package rest_clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	"touristpoints-service/cache"
	"touristpoints-service/models"
)

const RequestTimeout = 10 * time.Second

var (
	// ErrTimeout means the request was cancelled after the timeout bound
	// elapsed, as opposed to any other transport or server failure.
	ErrTimeout  = errors.New("timed out connecting to the server")
	ErrNotFound = errors.New("tourist point not found")
)

// PointClient talks to the tourist point service with a bounded timeout and
// falls back to the local cache when the list cannot be fetched.
type PointClient struct {
	BaseURL string
	Client  *http.Client
	Cache   *cache.Store

	// Notify, when set, receives user-visible warnings such as the
	// stale-data notice raised on cache fallback.
	Notify func(message string)
}

func NewPointClient(baseURL string, cache *cache.Store) *PointClient {
	return &PointClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: RequestTimeout},
		Cache:   cache,
	}
}

// FetchList returns the current list of tourist points. A successful response
// replaces the cached snapshot; on any failure the last snapshot is returned
// instead, or an empty list when none exists. The returned slice is never nil.
func (pc *PointClient) FetchList(showFallbackNotice bool) ([]models.TouristPoint, error) {
	points, err := pc.getPoints(pc.BaseURL + "/tourist-points")
	if err != nil {
		log.Printf("failed to fetch tourist points: %v", err)

		cached, ok, cacheErr := pc.Cache.Load()
		if cacheErr != nil {
			log.Printf("failed to load cached tourist points: %v", cacheErr)
		}
		if cacheErr != nil || !ok {
			return []models.TouristPoint{}, nil
		}
		if showFallbackNotice && pc.Notify != nil {
			pc.Notify("Tourist points were loaded from local storage. Check your connection to the server.")
		}
		return cached, nil
	}

	if err := pc.Cache.Save(points); err != nil {
		log.Printf("failed to cache tourist points: %v", err)
	}
	return points, nil
}

// Search returns the server-side filtered list. Empty text behaves exactly
// like FetchList without the fallback notice; non-empty results are not
// cached.
func (pc *PointClient) Search(text string) ([]models.TouristPoint, error) {
	if text == "" {
		return pc.FetchList(false)
	}
	return pc.getPoints(pc.BaseURL + "/tourist-points/search?name=" + url.QueryEscape(text))
}

// Delete removes a tourist point on the server. The local cache is left
// untouched; the next FetchList reconciles the list.
func (pc *PointClient) Delete(id int64) error {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/tourist-points/%d", pc.BaseURL, id), nil)
	if err != nil {
		return err
	}

	resp, err := pc.Client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return ErrTimeout
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return nil
}

func (pc *PointClient) getPoints(url string) ([]models.TouristPoint, error) {
	resp, err := pc.Client.Get(url)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	points := []models.TouristPoint{}
	if err := json.NewDecoder(resp.Body).Decode(&points); err != nil {
		return nil, err
	}
	return points, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
