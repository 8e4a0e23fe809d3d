// Package history хранит недавно выбранные аэропорты и историю поиска рейсов каждого клиента.
package history

import (
	"context"
	"errors"

	"github.com/mmeshcher/award-search/internal/model"
)

const (
	// MaxAirportHistory ограничивает число недавно выбранных аэропортов.
	MaxAirportHistory = 5
	// MaxSearchHistory ограничивает число сохранённых поисков рейсов.
	MaxSearchHistory = 10
)

var (
	// ErrEmptyClientID возвращается при обращении к хранилищу без идентификатора клиента.
	ErrEmptyClientID = errors.New("empty client id")
	// ErrNotFound возвращается, если запись истории не найдена.
	ErrNotFound = errors.New("history entry not found")
)

// Store описывает хранилище истории, общее для всех потребителей.
type Store interface {
	RecentAirports(ctx context.Context, clientID string, searchType model.SearchType) ([]model.AirportSelection, error)
	AppendAirport(ctx context.Context, clientID string, sel model.AirportSelection) error
	ClearAirports(ctx context.Context, clientID string) error
	RecentSearches(ctx context.Context, clientID string) ([]model.SearchHistoryEntry, error)
	AppendSearch(ctx context.Context, clientID string, entry model.SearchHistoryEntry) error
	SearchByID(ctx context.Context, clientID, id string) (*model.SearchHistoryEntry, error)
	ClearSearches(ctx context.Context, clientID string) error
}

// PushAirport помещает выбор в начало списка одного типа, удаляя прежнюю запись с тем же кодом,
// и обрезает список до limit элементов.
func PushAirport(list []model.AirportSelection, sel model.AirportSelection, limit int) []model.AirportSelection {
	res := make([]model.AirportSelection, 0, len(list)+1)
	res = append(res, sel)
	for _, item := range list {
		if item.Code == sel.Code {
			continue
		}
		res = append(res, item)
	}
	if len(res) > limit {
		res = res[:limit]
	}
	return res
}

// PushSearch помещает запись в начало истории и обрезает её до limit элементов. Прежняя запись
// того же маршрута и дат удаляется, второй результат сообщает, что она была.
func PushSearch(list []model.SearchHistoryEntry, entry model.SearchHistoryEntry, limit int) ([]model.SearchHistoryEntry, bool) {
	replaced := false
	res := make([]model.SearchHistoryEntry, 0, len(list)+1)
	res = append(res, entry)
	for _, item := range list {
		if item.SameTrip(entry) {
			replaced = true
			continue
		}
		res = append(res, item)
	}
	if len(res) > limit {
		res = res[:limit]
	}
	return res, replaced
}
