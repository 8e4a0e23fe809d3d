package cabin

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/mmeshcher/award-search/internal/model"
)

// ErrEmptyRecord возвращается для записи без данных ни в одной из форм.
var ErrEmptyRecord = errors.New("empty flight record")

// Kind определяет форму, в которой пришла запись о рейсе.
type Kind int

const (
	KindRaw Kind = iota + 1
	KindNormalized
)

func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindNormalized:
		return "normalized"
	default:
		return "unknown"
	}
}

// FlightRecord хранит запись о рейсе либо в исходной форме провайдера, либо уже нормализованная.
// Заполнено ровно одно из полей Raw и Normalized в соответствии с Kind.
type FlightRecord struct {
	Kind       Kind
	Raw        *model.FlightOffer
	Normalized *model.NormalizedFlight
}

// RawRecord оборачивает предложение провайдера.
func RawRecord(offer model.FlightOffer) FlightRecord {
	return FlightRecord{Kind: KindRaw, Raw: &offer}
}

// NormalizedRecord оборачивает нормализованный рейс.
func NormalizedRecord(flight model.NormalizedFlight) FlightRecord {
	return FlightRecord{Kind: KindNormalized, Normalized: &flight}
}

// ResolveRecord возвращает стоимость для записи любой формы. Для нормализованной записи
// значения возвращаются без изменений, поэтому повторное применение ничего не меняет.
func ResolveRecord(rec FlightRecord, class string) Fare {
	switch rec.Kind {
	case KindNormalized:
		if rec.Normalized != nil {
			return Fare{
				Points:         rec.Normalized.Points,
				Cash:           rec.Normalized.Cash,
				SeatsAvailable: rec.Normalized.SeatsAvailable,
			}
		}
	case KindRaw:
		if rec.Raw != nil {
			return Resolve(*rec.Raw, class)
		}
	}
	return Fare{}
}

// DecodeFlightRecord разбирает JSON-объект рейса. Объект с плоскими полями points и cash
// считается нормализованным, остальные считаются исходной формой провайдера.
func DecodeFlightRecord(data []byte) (FlightRecord, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return FlightRecord{}, fmt.Errorf("decode flight record: %w", err)
	}
	if len(m) == 0 {
		return FlightRecord{}, ErrEmptyRecord
	}
	return recordFromMap(m), nil
}

func recordFromMap(m map[string]any) FlightRecord {
	_, hasPoints := m["points"]
	_, hasCash := m["cash"]
	if hasPoints && hasCash {
		return NormalizedRecord(normalizedFromMap(m))
	}
	return RawRecord(offerFromMap(m))
}

func offerFromMap(m map[string]any) model.FlightOffer {
	route := cast.ToStringMap(m["Route"])

	offer := model.FlightOffer{
		ID:          cast.ToString(m["ID"]),
		RouteID:     cast.ToString(m["RouteID"]),
		Origin:      firstString(route["OriginAirport"], m["OriginAirport"], m["OriginCode"]),
		Destination: firstString(route["DestinationAirport"], m["DestinationAirport"], m["DestinationCode"]),
		Source:      firstString(m["Source"], route["Source"]),
		Distance:    int(toInt64(firstValue(route["Distance"], m["Distance"]))),
		Date:        firstString(m["ParsedDate"], m["Date"]),

		FlightNumber:  cast.ToString(m["FlightNumber"]),
		DepartsAt:     cast.ToString(m["DepartsAt"]),
		ArrivesAt:     cast.ToString(m["ArrivesAt"]),
		TotalDuration: int(toInt64(m["TotalDuration"])),

		Y:         cabinFromMap(m, "Y"),
		W:         cabinFromMap(m, "W"),
		J:         cabinFromMap(m, "J"),
		F:         cabinFromMap(m, "F"),
		CreatedAt: toTime(m["CreatedAt"]),
		UpdatedAt: toTime(m["UpdatedAt"]),
	}
	return offer
}

// cabinFromMap читает поля класса letter. Сборы берутся из {letter}TaxesFees в долларах,
// а при его отсутствии из {letter}TotalTaxes в центах.
func cabinFromMap(m map[string]any, letter string) model.CabinOffer {
	var taxes float64
	if v, ok := m[letter+"TaxesFees"]; ok && v != nil {
		taxes = toFloat64(v)
	} else if v, ok := m[letter+"TotalTaxes"]; ok && v != nil {
		taxes = toFloat64(v) / 100
	}

	return model.CabinOffer{
		MileageCost: toInt64(m[letter+"MileageCost"]),
		TaxesFees:   taxes,
		Available:   cast.ToBool(m[letter+"Available"]),
	}
}

// toInt64 разбирает строки как десятичные числа: "07500" означает 7500, а не восьмеричное число.
func toInt64(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return cast.ToInt64(v)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

func toFloat64(v any) float64 {
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return cast.ToFloat64(v)
}

func normalizedFromMap(m map[string]any) model.NormalizedFlight {
	f := model.NormalizedFlight{
		ID:             cast.ToString(m["id"]),
		Airline:        cast.ToString(m["airline"]),
		Source:         cast.ToString(m["source"]),
		FlightNumber:   cast.ToString(m["flightNumber"]),
		Origin:         cast.ToString(m["origin"]),
		Destination:    cast.ToString(m["destination"]),
		DepartureDate:  cast.ToString(m["departureDate"]),
		DepartureTime:  cast.ToString(m["departureTime"]),
		ArrivalTime:    cast.ToString(m["arrivalTime"]),
		Duration:       cast.ToString(m["duration"]),
		CabinClass:     model.CabinClass(cast.ToString(m["cabinClass"])),
		Points:         toInt64(m["points"]),
		Cash:           toFloat64(m["cash"]),
		SeatsAvailable: int(toInt64(m["seatsAvailable"])),
		Distance:       int(toInt64(m["distance"])),
		RealTimeData:   cast.ToBool(m["realTimeData"]),
		LastUpdated:    toTime(m["lastUpdated"]),
		Layovers:       []model.Layover{},
	}
	for _, item := range cast.ToSlice(m["layovers"]) {
		l := cast.ToStringMap(item)
		f.Layovers = append(f.Layovers, model.Layover{
			Airport:  cast.ToString(l["airport"]),
			Duration: cast.ToString(l["duration"]),
		})
	}
	return f
}

func firstValue(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstString(values ...any) string {
	for _, v := range values {
		if s := cast.ToString(v); s != "" {
			return s
		}
	}
	return ""
}

func toTime(v any) time.Time {
	if v == nil {
		return time.Time{}
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
