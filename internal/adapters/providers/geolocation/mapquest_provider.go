package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/devtrails/bootcamp-directory/internal/domain/providers"
	apperrors "github.com/devtrails/bootcamp-directory/pkg/errors"
)

const (
	mapquestGeocodeURL     = "https://www.mapquestapi.com/geocoding/v1/address"
	defaultGeocodeCacheTTL = 60 * 60 * 24 * 30
	defaultHTTPTimeout     = 8 * time.Second
)

// MapQuestProvider implements GeolocationProvider against the MapQuest
// geocoding API.
type MapQuestProvider struct {
	apiKey     string
	httpClient *http.Client
	cache      providers.CacheProvider
	baseURL    string
}

// NewMapQuestProvider creates a new MapQuest geocoding provider.
func NewMapQuestProvider(apiKey string, cache providers.CacheProvider) providers.GeolocationProvider {
	return NewMapQuestProviderWithOptions(apiKey, cache, mapquestGeocodeURL, nil)
}

// NewMapQuestProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewMapQuestProviderWithOptions(apiKey string, cache providers.CacheProvider, baseURL string, httpClient *http.Client) providers.GeolocationProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = mapquestGeocodeURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &MapQuestProvider{
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      cache,
		baseURL:    baseURL,
	}
}

// Geocode resolves an address token to its first matching coordinate. A
// response without usable matches is an error; the zero coordinate is never
// returned silently.
func (m *MapQuestProvider) Geocode(ctx context.Context, address string) (*providers.GeocodedAddress, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	cacheKey := "geo:v1:geocode:" + hashKey(strings.ToLower(trimmed))
	if m.cache != nil {
		if cached, err := m.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var addr providers.GeocodedAddress
			if err := json.Unmarshal(cached, &addr); err == nil && (addr.Latitude != 0 || addr.Longitude != 0) {
				return &addr, nil
			}
		}
	}

	resp, err := m.doGeocodeRequest(ctx, trimmed)
	if err != nil {
		return nil, err
	}

	loc, ok := firstLocation(resp)
	if !ok {
		return nil, apperrors.NewExternalError(fmt.Sprintf("no geocoding results for %q", trimmed), nil)
	}

	addr := providers.GeocodedAddress{
		FormattedAddress: formatAddress(loc),
		City:             loc.AdminArea5,
		Zipcode:          loc.PostalCode,
		Latitude:         loc.LatLng.Lat,
		Longitude:        loc.LatLng.Lng,
	}

	if m.cache != nil {
		if payload, err := json.Marshal(addr); err == nil {
			_ = m.cache.Set(ctx, cacheKey, payload, defaultGeocodeCacheTTL)
		}
	}

	return &addr, nil
}

func (m *MapQuestProvider) doGeocodeRequest(ctx context.Context, location string) (*mapquestResponse, error) {
	if m.apiKey == "" {
		return nil, apperrors.NewExternalError("mapquest api key is required", nil)
	}

	params := url.Values{}
	params.Set("key", m.apiKey)
	params.Set("location", location)
	params.Set("maxResults", "1")

	reqURL := fmt.Sprintf("%s?%s", m.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to build geocode request", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("geocode request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewExternalError(fmt.Sprintf("geocode request returned status %d", resp.StatusCode), nil)
	}

	var payload mapquestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewExternalError("failed to decode geocode response", err)
	}

	if payload.Info.StatusCode != 0 {
		msg := strings.Join(payload.Info.Messages, "; ")
		return nil, apperrors.NewExternalError(fmt.Sprintf("geocode request failed: %s", msg), nil)
	}

	return &payload, nil
}

// firstLocation picks the first usable match; MapQuest signals an unresolvable
// token with an empty location list or a zero latLng.
func firstLocation(resp *mapquestResponse) (mapquestLocation, bool) {
	for _, result := range resp.Results {
		for _, loc := range result.Locations {
			if loc.LatLng.Lat != 0 || loc.LatLng.Lng != 0 {
				return loc, true
			}
		}
	}
	return mapquestLocation{}, false
}

func formatAddress(loc mapquestLocation) string {
	parts := []string{}
	for _, p := range []string{loc.Street, loc.AdminArea5, loc.AdminArea3, loc.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

type mapquestResponse struct {
	Info    mapquestInfo     `json:"info"`
	Results []mapquestResult `json:"results"`
}

type mapquestInfo struct {
	StatusCode int      `json:"statuscode"`
	Messages   []string `json:"messages"`
}

type mapquestResult struct {
	Locations []mapquestLocation `json:"locations"`
}

type mapquestLocation struct {
	Street     string         `json:"street"`
	AdminArea5 string         `json:"adminArea5"` // city
	AdminArea3 string         `json:"adminArea3"` // state
	PostalCode string         `json:"postalCode"`
	LatLng     mapquestLatLng `json:"latLng"`
}

type mapquestLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
