package cabin

import (
	"time"

	"github.com/mmeshcher/award-search/internal/model"
)

// Normalize строит рейс для отображения из предложения провайдера для указанного класса.
// Остальные три класса отбрасываются.
func Normalize(offer model.FlightOffer, class string, now time.Time) model.NormalizedFlight {
	c := ClassOrDefault(class)
	fare := Resolve(offer, string(c))

	flightNumber := offer.FlightNumber
	if flightNumber == "" {
		flightNumber = "N/A"
	}

	updated := offer.UpdatedAt
	if updated.IsZero() {
		updated = now
	}

	return model.NormalizedFlight{
		ID:             offer.ID,
		Airline:        AirlineName(offer.Source),
		Source:         offer.Source,
		FlightNumber:   flightNumber,
		Origin:         offer.Origin,
		Destination:    offer.Destination,
		DepartureDate:  offer.Date,
		DepartureTime:  FormatClock(offer.DepartsAt),
		ArrivalTime:    FormatClock(offer.ArrivesAt),
		Duration:       FormatDuration(offer.TotalDuration, offer.Distance),
		CabinClass:     c,
		Points:         fare.Points,
		Cash:           fare.Cash,
		SeatsAvailable: fare.SeatsAvailable,
		Layovers:       []model.Layover{},
		Distance:       offer.Distance,
		RealTimeData:   true,
		LastUpdated:    updated,
	}
}

// NormalizeRecord приводит запись любой формы к нормализованному виду.
func NormalizeRecord(rec FlightRecord, class string, now time.Time) (model.NormalizedFlight, error) {
	switch rec.Kind {
	case KindNormalized:
		if rec.Normalized != nil {
			f := *rec.Normalized
			if f.Layovers == nil {
				f.Layovers = []model.Layover{}
			}
			return f, nil
		}
	case KindRaw:
		if rec.Raw != nil {
			return Normalize(*rec.Raw, class, now), nil
		}
	}
	return model.NormalizedFlight{}, ErrEmptyRecord
}
