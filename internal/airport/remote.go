package airport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/mmeshcher/award-search/internal/model"
	"github.com/mmeshcher/award-search/internal/validation"
)

// RemoteSource ищет аэропорты во внешнем сервисе справочника.
type RemoteSource struct {
	baseURL    string
	httpClient *http.Client
}

type remoteResponse struct {
	Airports []map[string]any `json:"airports"`
}

// NewRemoteSource создаёт клиент сервиса аэропортов по указанному адресу.
func NewRemoteSource(baseURL string) *RemoteSource {
	return &RemoteSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Search запрашивает до limit аэропортов, подходящих под запрос.
func (s *RemoteSource) Search(ctx context.Context, query string, limit int) ([]model.AirportRecord, error) {
	if s == nil || s.baseURL == "" {
		return nil, fmt.Errorf("airport source not configured")
	}

	base := s.baseURL
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	endpoint := base + "/api/airports/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var body remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	res := make([]model.AirportRecord, 0, len(body.Airports))
	for _, item := range body.Airports {
		rec, ok := remoteRecord(item)
		if !ok {
			continue
		}
		res = append(res, rec)
		if limit > 0 && len(res) == limit {
			break
		}
	}
	return res, nil
}

func remoteRecord(item map[string]any) (model.AirportRecord, bool) {
	code := validation.NormalizeCode(cast.ToString(item["iata"]))
	if !validation.IsValidIATACode(code) {
		return model.AirportRecord{}, false
	}

	rec := model.AirportRecord{
		IATA:    code,
		ICAO:    validation.NormalizeCode(cast.ToString(item["icao"])),
		Name:    cast.ToString(item["name"]),
		City:    cast.ToString(item["city"]),
		Country: cast.ToString(item["country"]),
	}

	lat, latErr := cast.ToFloat64E(item["latitude"])
	lon, lonErr := cast.ToFloat64E(item["longitude"])
	if latErr == nil && lonErr == nil && item["latitude"] != nil && item["longitude"] != nil {
		rec.Coordinates = &model.Coordinates{Lat: lat, Lon: lon}
	}
	return rec, true
}
