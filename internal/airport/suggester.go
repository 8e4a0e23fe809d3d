package airport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/award-search/internal/model"
	"github.com/mmeshcher/award-search/internal/suggest"
	"github.com/mmeshcher/award-search/internal/validation"
)

var (
	// ErrUnknownAirport возвращается при выборе аэропорта, которого нет в справочнике.
	ErrUnknownAirport = errors.New("unknown airport")
	// ErrInvalidSearchType возвращается для типа поиска, отличного от origin и destination.
	ErrInvalidSearchType = errors.New("invalid search type")
)

// RecencyStore хранит недавно выбранные аэропорты клиента.
type RecencyStore interface {
	RecentAirports(ctx context.Context, clientID string, searchType model.SearchType) ([]model.AirportSelection, error)
	AppendAirport(ctx context.Context, clientID string, sel model.AirportSelection) error
	ClearAirports(ctx context.Context, clientID string) error
}

// Source ищет аэропорты во внешнем справочнике.
type Source interface {
	Search(ctx context.Context, query string, limit int) ([]model.AirportRecord, error)
}

// Suggestion описывает подсказку для поля формы. Recent отмечает аэропорт из недавно выбранных.
type Suggestion struct {
	model.AirportRecord
	Recent bool `json:"recent"`
}

// Suggester объединяет недавно выбранные аэропорты клиента с результатами поиска.
type Suggester struct {
	matcher   *Matcher
	directory *Directory
	store     RecencyStore
	remote    Source
	debouncer *suggest.Debouncer[[]model.AirportRecord]
	logger    *zap.Logger
	now       func() time.Time
}

// NewSuggester создаёт Suggester. remote может быть nil, тогда используется только локальный список.
func NewSuggester(directory *Directory, opts Options, store RecencyStore, remote Source, delay time.Duration, logger *zap.Logger) *Suggester {
	return &Suggester{
		matcher:   NewMatcher(directory.All(), opts),
		directory: directory,
		store:     store,
		remote:    remote,
		debouncer: suggest.New[[]model.AirportRecord](delay),
		logger:    logger,
		now:       time.Now,
	}
}

// Lookup ищет аэропорт в справочнике по коду IATA или ICAO.
func (s *Suggester) Lookup(code string) (model.AirportRecord, bool) {
	return s.directory.Lookup(code)
}

// Distance возвращает расстояние между аэропортами в километрах.
func (s *Suggester) Distance(from, to string) (float64, bool) {
	return s.directory.Distance(from, to)
}

// Suggest возвращает подсказки для запроса. Для короткого запроса это список недавно выбранных
// аэропортов, иначе недавние совпадения, за которыми идут найденные аэропорты, без повторов кодов.
// Если ответ удалённого справочника устарел, возвращается suggest.ErrSuperseded.
func (s *Suggester) Suggest(ctx context.Context, clientID, query string, searchType model.SearchType) ([]Suggestion, error) {
	if !searchType.Valid() {
		return nil, ErrInvalidSearchType
	}

	recent, err := s.recent(ctx, clientID, searchType)
	if err != nil {
		return nil, err
	}

	if s.matcher.TooShort(query) {
		return recent, nil
	}

	matches, err := s.lookup(ctx, clientID, query, searchType)
	if err != nil {
		return nil, err
	}

	limit := s.matcher.Options().Limit
	q := strings.ToLower(strings.TrimSpace(query))
	seen := make(map[string]struct{}, limit)
	res := make([]Suggestion, 0, limit)

	for _, r := range recent {
		if !Matches(r.AirportRecord, q) && !exactCode(r.AirportRecord, q) {
			continue
		}
		seen[r.IATA] = struct{}{}
		res = append(res, r)
	}
	for _, a := range matches {
		if len(res) >= limit {
			break
		}
		if _, ok := seen[a.IATA]; ok {
			continue
		}
		seen[a.IATA] = struct{}{}
		res = append(res, Suggestion{AirportRecord: a})
	}
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

// Recent возвращает недавно выбранные аэропорты указанного типа.
func (s *Suggester) Recent(ctx context.Context, clientID string, searchType model.SearchType) ([]Suggestion, error) {
	if !searchType.Valid() {
		return nil, ErrInvalidSearchType
	}
	return s.recent(ctx, clientID, searchType)
}

// RecordSelection запоминает аэропорт, выбранный клиентом в поле указанного типа.
// Аэропорт ищется в справочнике; если его там нет, используются переданные название и город.
func (s *Suggester) RecordSelection(ctx context.Context, clientID string, searchType model.SearchType, rec model.AirportRecord) (model.AirportSelection, error) {
	if !searchType.Valid() {
		return model.AirportSelection{}, ErrInvalidSearchType
	}

	code := validation.NormalizeCode(rec.IATA)
	if known, ok := s.directory.Lookup(code); ok {
		rec = known
	} else if !validation.IsValidIATACode(code) || rec.Name == "" {
		return model.AirportSelection{}, ErrUnknownAirport
	}

	sel := model.AirportSelection{
		Code:       validation.NormalizeCode(rec.IATA),
		Name:       rec.Name,
		City:       rec.City,
		Country:    rec.Country,
		Type:       searchType,
		SelectedAt: s.now().UTC(),
	}
	if err := s.store.AppendAirport(ctx, clientID, sel); err != nil {
		return model.AirportSelection{}, fmt.Errorf("append airport: %w", err)
	}
	return sel, nil
}

// ClearRecent удаляет недавно выбранные аэропорты клиента.
func (s *Suggester) ClearRecent(ctx context.Context, clientID string) error {
	if err := s.store.ClearAirports(ctx, clientID); err != nil {
		return fmt.Errorf("clear airports: %w", err)
	}
	return nil
}

func (s *Suggester) recent(ctx context.Context, clientID string, searchType model.SearchType) ([]Suggestion, error) {
	list, err := s.store.RecentAirports(ctx, clientID, searchType)
	if err != nil {
		return nil, fmt.Errorf("recent airports: %w", err)
	}

	res := make([]Suggestion, 0, len(list))
	for _, sel := range list {
		rec, ok := s.directory.Lookup(sel.Code)
		if !ok {
			rec = model.AirportRecord{IATA: sel.Code, Name: sel.Name, City: sel.City, Country: sel.Country}
		}
		res = append(res, Suggestion{AirportRecord: rec, Recent: true})
	}
	return res, nil
}

// lookup ищет аэропорты в удалённом справочнике с задержкой ввода, а при его ошибке в локальном списке.
func (s *Suggester) lookup(ctx context.Context, clientID, query string, searchType model.SearchType) ([]model.AirportRecord, error) {
	if s.remote == nil {
		return s.matcher.Match(query), nil
	}

	key := clientID + ":" + string(searchType)
	limit := s.matcher.Options().Limit

	res, err := s.debouncer.Do(ctx, key, func(ctx context.Context) ([]model.AirportRecord, error) {
		return s.remote.Search(ctx, strings.TrimSpace(query), limit)
	})
	switch {
	case errors.Is(err, suggest.ErrSuperseded):
		return nil, err
	case errors.Is(err, context.Canceled):
		return nil, err
	case err != nil:
		s.logger.Warn("remote airport search failed, using local list", zap.String("query", query), zap.Error(err))
		return s.matcher.Match(query), nil
	}
	return res, nil
}
