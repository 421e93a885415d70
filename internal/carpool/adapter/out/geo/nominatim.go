package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"carpool/internal/carpool/domain"
	"carpool/internal/shared/config"
	"carpool/internal/shared/logger"
)

// NominatimGeocoder resolves addresses against an OSM Nominatim endpoint.
// Implements out.Geocoder: an empty result is "no match", transport and
// decode failures surface as domain.ErrLookupUnavailable.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
	log       *logger.Logger
}

func NewNominatimGeocoder(cfg config.GeocoderConfig, log *logger.Logger) *NominatimGeocoder {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &NominatimGeocoder{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: timeout},
		log:       log,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) ([]domain.Coordinate, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=jsonv2&limit=1",
		g.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrLookupUnavailable, err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error(logger.Entry{
			Action:  "geocode_request_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrLookupUnavailable, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrLookupUnavailable, err)
	}

	coords := make([]domain.Coordinate, 0, len(results))
	for _, r := range results {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			continue
		}
		if err := domain.ValidateCoordinates(lat, lon); err != nil {
			continue
		}
		coords = append(coords, domain.Coordinate{Latitude: lat, Longitude: lon})
	}
	return coords, nil
}
