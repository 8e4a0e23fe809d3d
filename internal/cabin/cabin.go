// Package cabin выбирает стоимость, сборы и наличие мест для запрошенного класса обслуживания.
package cabin

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mmeshcher/award-search/internal/model"
)

// ErrUnknownClass возвращается при разборе неизвестного класса обслуживания.
var ErrUnknownClass = errors.New("unknown cabin class")

// Fare содержит стоимость в баллах, сборы и количество мест для одного класса.
type Fare struct {
	Points         int64   `json:"points"`
	Cash           float64 `json:"cash"`
	SeatsAvailable int     `json:"seatsAvailable"`
}

// ParseClass разбирает класс обслуживания без учёта регистра.
func ParseClass(s string) (model.CabinClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "economy":
		return model.CabinEconomy, nil
	case "premium", "premium-economy":
		return model.CabinPremiumEconomy, nil
	case "business":
		return model.CabinBusiness, nil
	case "first":
		return model.CabinFirst, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownClass, s)
	}
}

// ClassOrDefault разбирает класс обслуживания, подставляя эконом для неизвестных значений.
func ClassOrDefault(s string) model.CabinClass {
	c, err := ParseClass(s)
	if err != nil {
		return model.CabinEconomy
	}
	return c
}

// Resolve возвращает стоимость, сборы и наличие мест предложения для указанного класса.
// Неизвестный или пустой класс трактуется как эконом.
func Resolve(offer model.FlightOffer, class string) Fare {
	return fareOf(offerFor(offer, ClassOrDefault(class)))
}

func offerFor(offer model.FlightOffer, class model.CabinClass) model.CabinOffer {
	switch class {
	case model.CabinPremiumEconomy:
		return offer.W
	case model.CabinBusiness:
		return offer.J
	case model.CabinFirst:
		return offer.F
	default:
		return offer.Y
	}
}

func fareOf(c model.CabinOffer) Fare {
	f := Fare{
		Points: c.MileageCost,
		Cash:   c.TaxesFees,
	}
	if f.Points < 0 {
		f.Points = 0
	}
	if f.Cash < 0 || math.IsNaN(f.Cash) || math.IsInf(f.Cash, 0) {
		f.Cash = 0
	}
	if c.Available {
		f.SeatsAvailable = 1
	}
	return f
}
