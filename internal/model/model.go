// Package model содержит доменные сущности сервиса поиска премиальных билетов.
package model

import "time"

// CabinClass описывает класс обслуживания.
type CabinClass string

const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium-economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

// CabinOffer содержит стоимость в баллах, сборы и признак наличия мест для одного класса.
type CabinOffer struct {
	MileageCost int64
	TaxesFees   float64
	Available   bool
}

// FlightOffer описывает предложение провайдера в исходном виде:
// по одному набору полей на каждую букву класса (Y, W, J, F).
type FlightOffer struct {
	ID          string
	RouteID     string
	Origin      string
	Destination string
	Source      string
	Distance    int
	Date        string

	// DepartsAt и ArrivesAt приходят строкой в ISO 8601, TotalDuration в минутах.
	FlightNumber  string
	DepartsAt     string
	ArrivesAt     string
	TotalDuration int

	Y CabinOffer
	W CabinOffer
	J CabinOffer
	F CabinOffer

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Layover описывает пересадку.
type Layover struct {
	Airport  string `json:"airport"`
	Duration string `json:"duration"`
}

// NormalizedFlight описывает рейс в виде для отображения. Points, Cash и SeatsAvailable
// всегда относятся к единственному классу CabinClass.
type NormalizedFlight struct {
	ID             string     `json:"id"`
	Airline        string     `json:"airline"`
	Source         string     `json:"source,omitempty"`
	FlightNumber   string     `json:"flightNumber"`
	Origin         string     `json:"origin"`
	Destination    string     `json:"destination"`
	DepartureDate  string     `json:"departureDate,omitempty"`
	DepartureTime  string     `json:"departureTime"`
	ArrivalTime    string     `json:"arrivalTime"`
	Duration       string     `json:"duration"`
	CabinClass     CabinClass `json:"cabinClass"`
	Points         int64      `json:"points"`
	Cash           float64    `json:"cash"`
	SeatsAvailable int        `json:"seatsAvailable"`
	Layovers       []Layover  `json:"layovers"`
	Distance       int        `json:"distance,omitempty"`
	RealTimeData   bool       `json:"realTimeData"`
	LastUpdated    time.Time  `json:"lastUpdated"`
}

// Coordinates содержит географические координаты аэропорта.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AirportRecord описывает аэропорт из справочника.
type AirportRecord struct {
	IATA        string       `json:"iata"`
	ICAO        string       `json:"icao,omitempty"`
	Name        string       `json:"name"`
	City        string       `json:"city"`
	Country     string       `json:"country"`
	Region      string       `json:"region,omitempty"`
	Type        string       `json:"type,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// SearchType различает поле формы, для которого выбирается аэропорт.
type SearchType string

const (
	SearchTypeOrigin      SearchType = "origin"
	SearchTypeDestination SearchType = "destination"
)

// Valid сообщает, является ли тип поиска известным.
func (t SearchType) Valid() bool {
	return t == SearchTypeOrigin || t == SearchTypeDestination
}

// AirportSelection описывает аэропорт, недавно выбранный пользователем.
type AirportSelection struct {
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	City       string     `json:"city"`
	Country    string     `json:"country"`
	Type       SearchType `json:"type"`
	SelectedAt time.Time  `json:"timestamp"`
}

// SearchHistoryEntry описывает выполненный поиск рейсов.
type SearchHistoryEntry struct {
	ID            string     `json:"id"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureDate string     `json:"departureDate"`
	ReturnDate    string     `json:"returnDate,omitempty"`
	CabinClass    CabinClass `json:"cabinClass"`
	Passengers    int        `json:"passengers"`
	Airline       string     `json:"airline,omitempty"`
	ResultsCount  int        `json:"resultsCount"`
	Timestamp     time.Time  `json:"timestamp"`
}

// SameTrip сообщает, описывают ли две записи один и тот же маршрут и даты.
func (e SearchHistoryEntry) SameTrip(other SearchHistoryEntry) bool {
	return e.Origin == other.Origin &&
		e.Destination == other.Destination &&
		e.DepartureDate == other.DepartureDate &&
		e.ReturnDate == other.ReturnDate
}
