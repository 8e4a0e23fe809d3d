package airport

import (
	"math"
	"strings"

	"github.com/mmeshcher/award-search/internal/model"
)

const earthRadiusKm = 6371.0

// Directory индексирует аэропорты по кодам IATA и ICAO.
type Directory struct {
	airports []model.AirportRecord
	byCode   map[string]int
}

// NewDirectory строит справочник. При повторе кода остаётся первая запись.
func NewDirectory(airports []model.AirportRecord) *Directory {
	d := &Directory{
		airports: airports,
		byCode:   make(map[string]int, len(airports)*2),
	}
	for i, a := range airports {
		for _, code := range []string{a.IATA, a.ICAO} {
			code = strings.ToUpper(strings.TrimSpace(code))
			if code == "" {
				continue
			}
			if _, ok := d.byCode[code]; !ok {
				d.byCode[code] = i
			}
		}
	}
	return d
}

// All возвращает все аэропорты справочника в исходном порядке.
func (d *Directory) All() []model.AirportRecord {
	return d.airports
}

// Len возвращает число аэропортов.
func (d *Directory) Len() int {
	return len(d.airports)
}

// Lookup ищет аэропорт по коду IATA или ICAO без учёта регистра.
func (d *Directory) Lookup(code string) (model.AirportRecord, bool) {
	i, ok := d.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return model.AirportRecord{}, false
	}
	return d.airports[i], true
}

// Distance возвращает расстояние между аэропортами по дуге большого круга в километрах.
// ok равен false, если аэропорт не найден или у него нет координат.
func (d *Directory) Distance(from, to string) (float64, bool) {
	a, ok := d.Lookup(from)
	if !ok || a.Coordinates == nil {
		return 0, false
	}
	b, ok := d.Lookup(to)
	if !ok || b.Coordinates == nil {
		return 0, false
	}
	return Haversine(*a.Coordinates, *b.Coordinates), true
}

// Haversine вычисляет расстояние между двумя точками в километрах.
func Haversine(a, b model.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}
