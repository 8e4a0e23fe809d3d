// Package airport содержит справочник аэропортов и подбор подсказок по введённому запросу.
package airport

import (
	"strings"
	"unicode/utf8"

	"github.com/mmeshcher/award-search/internal/model"
)

const (
	// DefaultMinQueryLength задаёт минимальную длину запроса, с которой начинается поиск.
	DefaultMinQueryLength = 2
	// DefaultLimit ограничивает число подсказок.
	DefaultLimit = 10
)

// Options задаёт параметры подбора.
type Options struct {
	MinQueryLength int
	Limit          int
}

func (o Options) withDefaults() Options {
	if o.MinQueryLength <= 0 {
		o.MinQueryLength = DefaultMinQueryLength
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	return o
}

// Matcher фильтрует список аэропортов по подстроке без учёта регистра.
type Matcher struct {
	airports []model.AirportRecord
	opts     Options
}

// NewMatcher создаёт Matcher поверх переданного списка.
func NewMatcher(airports []model.AirportRecord, opts Options) *Matcher {
	return &Matcher{
		airports: airports,
		opts:     opts.withDefaults(),
	}
}

// Options возвращает действующие параметры подбора.
func (m *Matcher) Options() Options {
	return m.opts
}

// TooShort сообщает, что запрос короче минимальной длины и поиск не выполняется.
func (m *Matcher) TooShort(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) < m.opts.MinQueryLength
}

// Match возвращает аэропорты, у которых код, город, название или страна содержат запрос.
// Точные совпадения кода IATA или ICAO идут первыми, остальные в порядке списка.
func (m *Matcher) Match(query string) []model.AirportRecord {
	res := make([]model.AirportRecord, 0)
	if m.TooShort(query) {
		return res
	}

	q := strings.ToLower(strings.TrimSpace(query))

	var exact, partial []model.AirportRecord
	for _, a := range m.airports {
		switch {
		case exactCode(a, q):
			exact = append(exact, a)
		case Matches(a, q):
			partial = append(partial, a)
		}
	}

	res = append(res, exact...)
	res = append(res, partial...)
	if len(res) > m.opts.Limit {
		res = res[:m.opts.Limit]
	}
	return res
}

// Matches сообщает, содержит ли одно из полей аэропорта запрос. Запрос должен быть в нижнем регистре.
func Matches(a model.AirportRecord, lowerQuery string) bool {
	for _, field := range []string{a.IATA, a.City, a.Name, a.Country} {
		if field != "" && strings.Contains(strings.ToLower(field), lowerQuery) {
			return true
		}
	}
	return false
}

func exactCode(a model.AirportRecord, lowerQuery string) bool {
	return strings.EqualFold(a.IATA, lowerQuery) || (a.ICAO != "" && strings.EqualFold(a.ICAO, lowerQuery))
}
