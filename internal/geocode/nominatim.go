package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tcrfreight/backend/internal/models"
)

// NominatimGeocoder resolves free-text place names through the public
// Nominatim search API, one best match per query. Requests are spaced
// by MinInterval to respect the usage policy. Results are not cached:
// every resolution is a live lookup.
type NominatimGeocoder struct {
	BaseURL     string
	UserAgent   string
	MinInterval time.Duration
	Client      *http.Client

	mu        sync.Mutex
	lastReqAt time.Time
}

type nominatimItem struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, place string) (models.Coordinate, error) {
	if g.Client == nil {
		g.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if g.BaseURL == "" {
		g.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if g.UserAgent == "" {
		g.UserAgent = "tcr-freight-backend"
	}
	if g.MinInterval <= 0 {
		g.MinInterval = time.Second
	}

	place = strings.TrimSpace(place)
	if place == "" {
		return models.Coordinate{}, ErrNotFound
	}

	g.mu.Lock()
	sleepFor := time.Until(g.lastReqAt.Add(g.MinInterval))
	if sleepFor > 0 {
		g.mu.Unlock()
		time.Sleep(sleepFor)
		g.mu.Lock()
	}
	g.lastReqAt = time.Now()
	g.mu.Unlock()

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", g.BaseURL, url.QueryEscape(place))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	req.Header.Set("User-Agent", g.UserAgent)

	resp, err := g.Client.Do(req)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Coordinate{}, fmt.Errorf("%w: http %s", ErrNotFound, resp.Status)
	}

	var items []nominatimItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: decode: %v", ErrNotFound, err)
	}
	return parseNominatimItems(items)
}

func parseNominatimItems(items []nominatimItem) (models.Coordinate, error) {
	if len(items) == 0 {
		return models.Coordinate{}, ErrNotFound
	}
	lat, err := strconv.ParseFloat(items[0].Lat, 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: bad lat: %v", ErrNotFound, err)
	}
	lon, err := strconv.ParseFloat(items[0].Lon, 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: bad lon: %v", ErrNotFound, err)
	}
	return models.Coordinate{Lat: lat, Lon: lon}, nil
}
