// Package address resolves coordinates to a best-effort postal address. The
// result only feeds the region filter; an empty string simply means the
// caller must supply a region code directly.
package address

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Geocoder struct {
	logger    *logrus.Logger
	baseURL   string
	cacheDir  string
	cache     map[string]string
	cacheLock sync.RWMutex
	client    *http.Client
}

const defaultBaseURL = "https://nominatim.openstreetmap.org"

func NewGeocoder(logger *logrus.Logger, baseURL, cacheDir string) *Geocoder {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	os.MkdirAll(cacheDir, 0755)

	g := &Geocoder{
		logger:   logger,
		baseURL:  baseURL,
		cacheDir: cacheDir,
		cache:    make(map[string]string),
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	g.loadCache()
	return g
}

func (g *Geocoder) loadCache() {
	data, err := os.ReadFile(filepath.Join(g.cacheDir, "address_cache.json"))
	if err != nil {
		g.logger.Warnf("Could not load address cache: %v", err)
		return
	}
	if err := json.Unmarshal(data, &g.cache); err != nil {
		g.logger.Errorf("Failed to parse address cache: %v", err)
		return
	}
	g.logger.Infof("Loaded %d cached addresses", len(g.cache))
}

func (g *Geocoder) saveCache() {
	g.cacheLock.RLock()
	defer g.cacheLock.RUnlock()

	data, err := json.Marshal(g.cache)
	if err != nil {
		g.logger.Errorf("Failed to marshal address cache: %v", err)
		return
	}
	if err := os.WriteFile(filepath.Join(g.cacheDir, "address_cache.json"), data, 0644); err != nil {
		g.logger.Errorf("Failed to save address cache: %v", err)
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// ReverseGeocode returns the address string for a coordinate, or "" when the
// lookup fails or finds nothing. Failures are best-effort by contract and
// never propagate.
func (g *Geocoder) ReverseGeocode(lat, lng float64) string {
	cacheKey := fmt.Sprintf("%.5f|%.5f", lat, lng)

	g.cacheLock.RLock()
	if addr, ok := g.cache[cacheKey]; ok {
		g.cacheLock.RUnlock()
		return addr
	}
	g.cacheLock.RUnlock()

	params := url.Values{
		"lat":    []string{strconv.FormatFloat(lat, 'f', 6, 64)},
		"lon":    []string{strconv.FormatFloat(lng, 'f', 6, 64)},
		"format": []string{"json"},
	}

	req, err := http.NewRequest(http.MethodGet, g.baseURL+"/reverse", nil)
	if err != nil {
		g.logger.WithError(err).Error("Failed to create reverse geocode request")
		return ""
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("User-Agent", "RentRadar Market Analyzer/1.0")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8")

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.WithError(err).Warn("Reverse geocode request failed")
		return ""
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		g.logger.WithError(err).Warn("Failed to read reverse geocode response")
		return ""
	}

	var result reverseResponse
	if err := json.Unmarshal(body, &result); err != nil {
		g.logger.WithError(err).Warn("Failed to parse reverse geocode response")
		return ""
	}
	if result.DisplayName == "" {
		return ""
	}

	g.cacheLock.Lock()
	g.cache[cacheKey] = result.DisplayName
	g.cacheLock.Unlock()
	go g.saveCache()

	return result.DisplayName
}
