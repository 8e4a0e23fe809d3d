package airport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"
	"go.uber.org/zap"

	"github.com/mmeshcher/award-search/internal/model"
	"github.com/mmeshcher/award-search/internal/validation"
)

// ErrNoIATAColumn возвращается, если в заголовке CSV нет колонки iata_code.
var ErrNoIATAColumn = errors.New("csv has no iata_code column")

// csvRow соответствует строке airport-codes.csv. Все поля строковые: файл содержит пустые значения.
type csvRow struct {
	Ident       string `csv:"ident"`
	Type        string `csv:"type"`
	Name        string `csv:"name"`
	Country     string `csv:"iso_country"`
	Region      string `csv:"iso_region"`
	City        string `csv:"municipality"`
	ICAO        string `csv:"icao_code"`
	IATA        string `csv:"iata_code"`
	GPS         string `csv:"gps_code"`
	Coordinates string `csv:"coordinates"`
}

// LoadCSV читает справочник аэропортов в формате airport-codes.csv.
// Остаются строки с трёхбуквенным кодом IATA и типом, содержащим airport и не содержащим closed.
// При повторе кода остаётся первая подходящая строка.
func LoadCSV(r io.Reader) ([]model.AirportRecord, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []model.AirportRecord{}, nil
		}
		return nil, fmt.Errorf("create csv decoder: %w", err)
	}

	if !hasColumn(dec.Header(), "iata_code") {
		return nil, ErrNoIATAColumn
	}

	seen := make(map[string]struct{})
	res := make([]model.AirportRecord, 0)

	for line := 2; ; line++ {
		var row csvRow
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decode csv line %d: %w", line, err)
		}

		code := validation.NormalizeCode(row.IATA)
		if !validation.IsValidIATACode(code) {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		typ := strings.TrimSpace(row.Type)
		if !strings.Contains(typ, "airport") || strings.Contains(typ, "closed") {
			continue
		}

		icao := validation.NormalizeCode(row.ICAO)
		if icao == "" && validation.IsValidICAOCode(validation.NormalizeCode(row.GPS)) {
			icao = validation.NormalizeCode(row.GPS)
		}

		seen[code] = struct{}{}
		res = append(res, model.AirportRecord{
			IATA:        code,
			ICAO:        icao,
			Name:        strings.TrimSpace(row.Name),
			City:        strings.TrimSpace(row.City),
			Country:     strings.TrimSpace(row.Country),
			Region:      strings.TrimSpace(row.Region),
			Type:        typ,
			Coordinates: parseCoordinates(row.Coordinates),
		})
	}

	return res, nil
}

// LoadFile загружает справочник из файла. Если путь пуст, файл недоступен или не содержит
// ни одного аэропорта, возвращается встроенный список.
func LoadFile(path string, logger *zap.Logger) []model.AirportRecord {
	if path == "" {
		return Fallback()
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Warn("airport data unavailable, using fallback list", zap.String("path", path), zap.Error(err))
		return Fallback()
	}
	defer f.Close()

	airports, err := LoadCSV(f)
	if err != nil {
		logger.Warn("failed to parse airport data, using fallback list", zap.String("path", path), zap.Error(err))
		return Fallback()
	}
	if len(airports) == 0 {
		logger.Warn("airport data is empty, using fallback list", zap.String("path", path))
		return Fallback()
	}

	logger.Info("airport data loaded", zap.String("path", path), zap.Int("airports", len(airports)))
	return airports
}

// parseCoordinates разбирает строку вида "lat, lon".
func parseCoordinates(value string) *model.Coordinates {
	parts := strings.Split(strings.Trim(strings.TrimSpace(value), `"`), ",")
	if len(parts) != 2 {
		return nil
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil
	}
	return &model.Coordinates{Lat: lat, Lon: lon}
}

func hasColumn(header []string, name string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}
	return false
}
