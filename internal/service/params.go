package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmeshcher/award-search/internal/cabin"
	"github.com/mmeshcher/award-search/internal/model"
	"github.com/mmeshcher/award-search/internal/validation"
)

const (
	// MinPassengers и MaxPassengers ограничивают число пассажиров в одном поиске.
	MinPassengers = 1
	MaxPassengers = 9
)

// ValidationError описывает ошибку во входных данных поиска, найденную до обращения к провайдеру.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError сообщает, является ли ошибка ошибкой валидации.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// SearchParams содержит параметры поиска в том виде, в котором их передал клиент.
type SearchParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	CabinClass    string
	Passengers    int
	Airline       string
}

// Query содержит проверенные и приведённые к каноническому виду параметры поиска.
type Query struct {
	Origin        string           `json:"origin"`
	Destination   string           `json:"destination"`
	DepartureDate string           `json:"departureDate"`
	ReturnDate    string           `json:"returnDate,omitempty"`
	CabinClass    model.CabinClass `json:"cabinClass"`
	Passengers    int              `json:"passengers"`
	Airline       string           `json:"airline,omitempty"`
}

// Validate проверяет параметры поиска. Коды приводятся к верхнему регистру, даты к YYYY-MM-DD,
// пустой класс обслуживания трактуется как эконом.
func (p SearchParams) Validate() (Query, error) {
	origin := validation.NormalizeCode(p.Origin)
	destination := validation.NormalizeCode(p.Destination)

	switch {
	case origin == "":
		return Query{}, invalid("origin", "origin airport is required")
	case destination == "":
		return Query{}, invalid("destination", "destination airport is required")
	case strings.TrimSpace(p.DepartureDate) == "":
		return Query{}, invalid("date", "departure date is required")
	case !validation.IsValidIATACode(origin):
		return Query{}, invalid("origin", "origin must be a 3-letter IATA airport code")
	case !validation.IsValidIATACode(destination):
		return Query{}, invalid("destination", "destination must be a 3-letter IATA airport code")
	case origin == destination:
		return Query{}, invalid("destination", "origin and destination cannot be the same")
	}

	departure, err := validation.ParseDate(p.DepartureDate)
	if err != nil {
		return Query{}, invalid("date", "departure date must be YYYY-MM-DD, MM/DD/YYYY or DD/MM/YYYY")
	}

	q := Query{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departure.Format(validation.DateLayout),
		Passengers:    p.Passengers,
		CabinClass:    model.CabinEconomy,
		Airline:       strings.TrimSpace(p.Airline),
	}

	if strings.TrimSpace(p.ReturnDate) != "" {
		ret, err := validation.ParseDate(p.ReturnDate)
		if err != nil {
			return Query{}, invalid("return_date", "return date must be YYYY-MM-DD, MM/DD/YYYY or DD/MM/YYYY")
		}
		if ret.Before(departure) {
			return Query{}, invalid("return_date", "return date cannot be before departure date")
		}
		q.ReturnDate = ret.Format(validation.DateLayout)
	}

	if p.Passengers < MinPassengers || p.Passengers > MaxPassengers {
		return Query{}, invalid("passengers", fmt.Sprintf("passengers must be between %d and %d", MinPassengers, MaxPassengers))
	}

	if strings.TrimSpace(p.CabinClass) != "" {
		c, err := cabin.ParseClass(p.CabinClass)
		if err != nil {
			return Query{}, invalid("cabin_class", "cabin class must be economy, premium-economy, business or first")
		}
		q.CabinClass = c
	}

	return q, nil
}
