// Package seatsaero предоставляет клиент партнёрского API поиска премиальных билетов.
package seatsaero

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmeshcher/award-search/internal/model"
)

// DefaultBaseURL задаёт адрес партнёрского API по умолчанию.
const DefaultBaseURL = "https://seats.aero/partnerapi"

// ErrNotConfigured возвращается, если у клиента не задан адрес или ключ API.
var ErrNotConfigured = errors.New("seats.aero client not configured")

// StatusError описывает неуспешный ответ API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status: %d", e.Code)
	}
	return fmt.Sprintf("unexpected status: %d: %s", e.Code, e.Message)
}

// Client инкапсулирует HTTP-взаимодействие с партнёрским API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// SearchRequest описывает параметры поиска. Даты в формате YYYY-MM-DD,
// Sources ограничивает поиск программами лояльности (коды через запятую).
type SearchRequest struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	CabinClass    model.CabinClass
	Sources       string
}

// SearchResponse содержит ответ API. Элементы Data декодируются отдельно,
// так как провайдер возвращает предложения в нескольких формах.
type SearchResponse struct {
	Data    []json.RawMessage `json:"data"`
	Count   int               `json:"count"`
	HasMore bool              `json:"hasMore"`
	Cursor  int64             `json:"cursor"`
}

// NewClient создаёт клиент для указанного адреса и ключа API.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Search выполняет поиск доступных премиальных мест по кэшу провайдера.
// Для ответа 429 возвращается код и интервал из Retry-After без ошибки, повтор остаётся на вызывающей стороне.
func (c *Client) Search(ctx context.Context, sr SearchRequest) (*SearchResponse, int, time.Duration, error) {
	if c == nil || c.baseURL == "" || c.apiKey == "" {
		return nil, 0, 0, ErrNotConfigured
	}

	base := c.baseURL
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}

	endpoint := fmt.Sprintf("%s/search?%s", base, searchParams(sr).Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Partner-Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := time.Duration(0)
		if v := resp.Header.Get("Retry-After"); v != "" {
			if seconds, parseErr := strconv.Atoi(v); parseErr == nil {
				retryAfter = time.Duration(seconds) * time.Second
			}
		}
		return nil, resp.StatusCode, retryAfter, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, 0, &StatusError{Code: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, resp.StatusCode, 0, fmt.Errorf("decode response: %w", err)
	}
	if result.Data == nil {
		result.Data = []json.RawMessage{}
	}

	return &result, resp.StatusCode, 0, nil
}

func searchParams(sr SearchRequest) url.Values {
	params := url.Values{}
	params.Set("origin_airport", sr.Origin)
	params.Set("destination_airport", sr.Destination)
	params.Set("start_date", sr.DepartureDate)
	if sr.ReturnDate != "" {
		params.Set("end_date", sr.ReturnDate)
	} else {
		params.Set("end_date", sr.DepartureDate)
	}
	if sr.CabinClass != "" {
		params.Set("cabin", CabinParam(sr.CabinClass))
	}
	if sr.Sources != "" {
		params.Set("sources", sr.Sources)
	}
	return params
}

// CabinParam переводит класс обслуживания в значение параметра cabin.
func CabinParam(class model.CabinClass) string {
	switch class {
	case model.CabinPremiumEconomy:
		return "premium"
	case model.CabinBusiness:
		return "business"
	case model.CabinFirst:
		return "first"
	default:
		return "economy"
	}
}

// errorMessage извлекает поле message из тела ошибки, иначе возвращает начало текста.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(raw))
}
