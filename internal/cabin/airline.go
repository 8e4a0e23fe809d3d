package cabin

import (
	"fmt"
	"strings"
	"time"
)

const unknownAirline = "Unknown Airline"

// milesPerHour задаёт среднюю скорость для оценки длительности перелёта по расстоянию.
const milesPerHour = 500

// sourceAirlines сопоставляет программу лояльности провайдера с авиакомпанией.
var sourceAirlines = map[string]string{
	"united":         "United Airlines",
	"delta":          "Delta Air Lines",
	"american":       "American Airlines",
	"alaska":         "Alaska Airlines",
	"aeroplan":       "Air Canada",
	"turkish":        "Turkish Airlines",
	"emirates":       "Emirates",
	"etihad":         "Etihad Airways",
	"qantas":         "Qantas",
	"velocity":       "Virgin Australia",
	"virginatlantic": "Virgin Atlantic",
	"flyingblue":     "Air France-KLM",
	"jetblue":        "JetBlue",
	"aeromexico":     "AeroMexico",
	"azul":           "Azul Brazilian Airlines",
	"smiles":         "GOL Airlines",
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"15:04:05",
	"15:04",
	"3:04 PM",
	"3:04PM",
}

// AirlineName возвращает название авиакомпании для программы source.
// Неизвестная программа возвращается как есть.
func AirlineName(source string) string {
	source = strings.TrimSpace(source)
	if source == "" {
		return unknownAirline
	}
	if name, ok := sourceAirlines[strings.ToLower(source)]; ok {
		return name
	}
	return source
}

// SourceFor находит программу провайдера по её коду или названию авиакомпании.
func SourceFor(airline string) (string, bool) {
	a := strings.ToLower(strings.TrimSpace(airline))
	if a == "" {
		return "", false
	}
	if _, ok := sourceAirlines[a]; ok {
		return a, true
	}
	for source, name := range sourceAirlines {
		if strings.EqualFold(name, a) {
			return source, true
		}
	}
	return "", false
}

// MatchesAirline сообщает, относится ли рейс к авиакомпании или программе airline.
func MatchesAirline(airline, flightAirline, flightSource string) bool {
	airline = strings.TrimSpace(airline)
	if airline == "" {
		return true
	}
	if strings.EqualFold(airline, flightAirline) || strings.EqualFold(airline, flightSource) {
		return true
	}
	source, ok := SourceFor(airline)
	return ok && strings.EqualFold(source, flightSource)
}

// FormatClock приводит время вылета или прилёта к виду "3:04 PM".
// Строка, которую не удалось разобрать, возвращается без изменений.
func FormatClock(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("3:04 PM")
		}
	}
	return value
}

// FormatDuration возвращает длительность в виде "Xh Ym". Без длительности от провайдера
// она оценивается по расстоянию в милях, а без расстояния остаётся пустой.
func FormatDuration(minutes, distance int) string {
	switch {
	case minutes > 0:
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	case distance > 0:
		hours := max(1, distance/milesPerHour)
		return fmt.Sprintf("%dh %dm", hours, distance%milesPerHour*60/milesPerHour)
	default:
		return ""
	}
}
