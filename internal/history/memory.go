package history

import (
	"context"
	"sync"
	"time"

	"github.com/mmeshcher/award-search/internal/model"
)

// DefaultMaxClients ограничивает число клиентов в MemoryStore.
const DefaultMaxClients = 10000

type clientHistory struct {
	airports  map[model.SearchType][]model.AirportSelection
	searches  []model.SearchHistoryEntry
	updatedAt time.Time
}

// MemoryStore хранит историю в памяти процесса и теряет её при перезапуске.
// При превышении maxClients удаляется история клиента, который дольше всех ничего не записывал.
type MemoryStore struct {
	mu         sync.RWMutex
	clients    map[string]*clientHistory
	maxClients int
	now        func() time.Time
}

// NewMemoryStore создаёт пустое хранилище в памяти на DefaultMaxClients клиентов.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithLimit(DefaultMaxClients)
}

// NewMemoryStoreWithLimit создаёт пустое хранилище в памяти на maxClients клиентов.
func NewMemoryStoreWithLimit(maxClients int) *MemoryStore {
	if maxClients <= 0 {
		maxClients = DefaultMaxClients
	}
	return &MemoryStore{
		clients:    make(map[string]*clientHistory),
		maxClients: maxClients,
		now:        time.Now,
	}
}

// client возвращает историю клиента для записи. Вызывается под s.mu.Lock.
func (s *MemoryStore) client(clientID string) *clientHistory {
	h, ok := s.clients[clientID]
	if !ok {
		if len(s.clients) >= s.maxClients {
			s.evictOldest()
		}
		h = &clientHistory{airports: make(map[model.SearchType][]model.AirportSelection)}
		s.clients[clientID] = h
	}
	h.updatedAt = s.now()
	return h
}

func (s *MemoryStore) evictOldest() {
	var (
		oldestID string
		oldest   time.Time
		found    bool
	)
	for id, h := range s.clients {
		if !found || h.updatedAt.Before(oldest) {
			oldestID, oldest, found = id, h.updatedAt, true
		}
	}
	if found {
		delete(s.clients, oldestID)
	}
}

// Len возвращает число клиентов с сохранённой историей.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// RecentAirports возвращает недавно выбранные аэропорты указанного типа, начиная с последнего.
func (s *MemoryStore) RecentAirports(_ context.Context, clientID string, searchType model.SearchType) ([]model.AirportSelection, error) {
	if clientID == "" {
		return nil, ErrEmptyClientID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.clients[clientID]
	if !ok {
		return []model.AirportSelection{}, nil
	}
	return append([]model.AirportSelection{}, h.airports[searchType]...), nil
}

// AppendAirport добавляет выбранный аэропорт в начало списка его типа.
func (s *MemoryStore) AppendAirport(_ context.Context, clientID string, sel model.AirportSelection) error {
	if clientID == "" {
		return ErrEmptyClientID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.client(clientID)
	h.airports[sel.Type] = PushAirport(h.airports[sel.Type], sel, MaxAirportHistory)
	return nil
}

// ClearAirports удаляет все недавно выбранные аэропорты клиента.
func (s *MemoryStore) ClearAirports(_ context.Context, clientID string) error {
	if clientID == "" {
		return ErrEmptyClientID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.clients[clientID]; ok {
		h.airports = make(map[model.SearchType][]model.AirportSelection)
	}
	return nil
}

// RecentSearches возвращает историю поиска клиента, начиная с последнего.
func (s *MemoryStore) RecentSearches(_ context.Context, clientID string) ([]model.SearchHistoryEntry, error) {
	if clientID == "" {
		return nil, ErrEmptyClientID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.clients[clientID]
	if !ok {
		return []model.SearchHistoryEntry{}, nil
	}
	return append([]model.SearchHistoryEntry{}, h.searches...), nil
}

// AppendSearch добавляет поиск в начало истории клиента. Повтор маршрута с теми же датами
// заменяет прежнюю запись.
func (s *MemoryStore) AppendSearch(_ context.Context, clientID string, entry model.SearchHistoryEntry) error {
	if clientID == "" {
		return ErrEmptyClientID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.client(clientID)
	h.searches, _ = PushSearch(h.searches, entry, MaxSearchHistory)
	return nil
}

// SearchByID возвращает запись истории поиска по идентификатору.
func (s *MemoryStore) SearchByID(_ context.Context, clientID, id string) (*model.SearchHistoryEntry, error) {
	if clientID == "" {
		return nil, ErrEmptyClientID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if h, ok := s.clients[clientID]; ok {
		for _, e := range h.searches {
			if e.ID == id {
				res := e
				return &res, nil
			}
		}
	}
	return nil, ErrNotFound
}

// ClearSearches удаляет историю поиска клиента.
func (s *MemoryStore) ClearSearches(_ context.Context, clientID string) error {
	if clientID == "" {
		return ErrEmptyClientID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if h, ok := s.clients[clientID]; ok {
		h.searches = nil
	}
	return nil
}
