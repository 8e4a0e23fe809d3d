// Package service реализует поиск премиальных билетов и историю поиска клиентов.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mmeshcher/award-search/internal/cabin"
	"github.com/mmeshcher/award-search/internal/cache"
	"github.com/mmeshcher/award-search/internal/history"
	"github.com/mmeshcher/award-search/internal/model"
	"github.com/mmeshcher/award-search/internal/seatsaero"
)

const (
	// MaxCachedResults ограничивает число последних результатов поиска, хранимых для клиента.
	MaxCachedResults = 5
	// MaxCachedClients ограничивает число клиентов, для которых хранятся результаты.
	MaxCachedClients = 10000
	// ResultsTTL задаёт время хранения результатов клиента после последнего поиска.
	ResultsTTL = time.Hour
)

// Provider описывает внешний источник предложений.
type Provider interface {
	Search(ctx context.Context, sr seatsaero.SearchRequest) (*seatsaero.SearchResponse, int, time.Duration, error)
}

// SearchResult содержит нормализованные рейсы одного поиска.
type SearchResult struct {
	ID         string                   `json:"id"`
	Query      Query                    `json:"query"`
	Flights    []model.NormalizedFlight `json:"flights"`
	Count      int                      `json:"count"`
	Skipped    int                      `json:"skipped,omitempty"`
	SearchedAt time.Time                `json:"searchedAt"`
}

// Service содержит бизнес-логику поиска.
type Service struct {
	store    history.Store
	provider Provider
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.Mutex
	results *cache.Cache[[]SearchResult]
}

// NewService создаёт новый сервис с указанным хранилищем истории и провайдером.
func NewService(store history.Store, provider Provider, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		provider: provider,
		logger:   logger,
		now:      time.Now,
		results:  cache.New(cloneResults, MaxCachedClients),
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if c, ok := s.store.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Search проверяет параметры, запрашивает предложения у провайдера, приводит их к запрошенному
// классу и сортирует по стоимости в баллах. Успешный поиск попадает в историю клиента.
func (s *Service) Search(ctx context.Context, clientID string, params SearchParams) (*SearchResult, error) {
	q, err := params.Validate()
	if err != nil {
		return nil, err
	}

	resp, status, retryAfter, err := s.provider.Search(ctx, seatsaero.SearchRequest{
		Origin:        q.Origin,
		Destination:   q.Destination,
		DepartureDate: q.DepartureDate,
		ReturnDate:    q.ReturnDate,
		CabinClass:    q.CabinClass,
		Sources:       sourcesFor(q.Airline),
	})
	if err != nil {
		var se *seatsaero.StatusError
		if errors.As(err, &se) {
			return nil, &ProviderError{Code: se.Code, Message: se.Message}
		}
		return nil, fmt.Errorf("search awards: %w", err)
	}
	if status == http.StatusTooManyRequests {
		return nil, &ProviderError{Code: status, RetryAfter: retryAfter}
	}
	if resp == nil {
		return nil, &ProviderError{Code: status}
	}

	now := s.now().UTC()
	flights, skipped := s.normalize(resp, q, now)

	res := &SearchResult{
		ID:         uuid.NewString(),
		Query:      q,
		Flights:    flights,
		Count:      len(flights),
		Skipped:    skipped,
		SearchedAt: now,
	}

	entry := model.SearchHistoryEntry{
		ID:            res.ID,
		Origin:        q.Origin,
		Destination:   q.Destination,
		DepartureDate: q.DepartureDate,
		ReturnDate:    q.ReturnDate,
		CabinClass:    q.CabinClass,
		Passengers:    q.Passengers,
		Airline:       q.Airline,
		ResultsCount:  res.Count,
		Timestamp:     now,
	}
	if err := s.store.AppendSearch(ctx, clientID, entry); err != nil {
		s.logger.Warn("failed to save search history", zap.String("client_id", clientID), zap.Error(err))
	}

	s.remember(clientID, *res)

	return res, nil
}

func (s *Service) normalize(resp *seatsaero.SearchResponse, q Query, now time.Time) ([]model.NormalizedFlight, int) {
	flights := make([]model.NormalizedFlight, 0, len(resp.Data))
	skipped := 0

	for _, raw := range resp.Data {
		rec, err := cabin.DecodeFlightRecord(raw)
		if err != nil {
			skipped++
			continue
		}
		f, err := cabin.NormalizeRecord(rec, string(q.CabinClass), now)
		if err != nil {
			skipped++
			continue
		}
		if f.Origin == "" {
			f.Origin = q.Origin
		}
		if f.Destination == "" {
			f.Destination = q.Destination
		}
		if f.DepartureDate == "" {
			f.DepartureDate = q.DepartureDate
		}
		if !cabin.MatchesAirline(q.Airline, f.Airline, f.Source) {
			continue
		}
		flights = append(flights, f)
	}

	if skipped > 0 {
		s.logger.Warn("skipped malformed offers", zap.Int("skipped", skipped), zap.Int("total", len(resp.Data)))
	}

	sort.SliceStable(flights, func(i, j int) bool {
		return flights[i].Points < flights[j].Points
	})

	return flights, skipped
}

// sourcesFor переводит фильтр авиакомпании в код программы провайдера, если он известен.
func sourcesFor(airline string) string {
	source, _ := cabin.SourceFor(airline)
	return source
}

func cloneResults(list []SearchResult) []SearchResult {
	return append([]SearchResult{}, list...)
}

func (s *Service) remember(clientID string, res SearchResult) {
	if clientID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, _ := s.results.Get(clientID)
	list := append([]SearchResult{res}, prev...)
	if len(list) > MaxCachedResults {
		list = list[:MaxCachedResults]
	}
	s.results.Set(clientID, list, ResultsTTL)
}

// LastResults возвращает последние результаты поиска клиента, начиная с самого нового.
func (s *Service) LastResults(clientID string) []SearchResult {
	list, ok := s.results.Get(clientID)
	if !ok {
		return []SearchResult{}
	}
	return list
}

// RecentSearches возвращает историю поиска клиента.
func (s *Service) RecentSearches(ctx context.Context, clientID string) ([]model.SearchHistoryEntry, error) {
	return s.store.RecentSearches(ctx, clientID)
}

// SearchByID возвращает запись истории поиска клиента.
func (s *Service) SearchByID(ctx context.Context, clientID, id string) (*model.SearchHistoryEntry, error) {
	return s.store.SearchByID(ctx, clientID, id)
}

// Repeat повторяет поиск из истории клиента.
func (s *Service) Repeat(ctx context.Context, clientID, id string) (*SearchResult, error) {
	e, err := s.store.SearchByID(ctx, clientID, id)
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, clientID, SearchParams{
		Origin:        e.Origin,
		Destination:   e.Destination,
		DepartureDate: e.DepartureDate,
		ReturnDate:    e.ReturnDate,
		CabinClass:    string(e.CabinClass),
		Passengers:    e.Passengers,
		Airline:       e.Airline,
	})
}

// ClearSearches очищает историю поиска и кэш результатов клиента.
func (s *Service) ClearSearches(ctx context.Context, clientID string) error {
	if err := s.store.ClearSearches(ctx, clientID); err != nil {
		return err
	}

	s.mu.Lock()
	s.results.Delete(clientID)
	s.mu.Unlock()

	return nil
}
