// Package validation содержит функции валидации входных данных.
package validation

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate возвращается, если дата не соответствует ни одному из поддерживаемых форматов.
var ErrInvalidDate = errors.New("invalid date")

// DateLayout задаёт формат дат, используемый в API и в истории поиска.
const DateLayout = "2006-01-02"

var dateLayouts = []string{DateLayout, "01/02/2006", "02/01/2006"}

// NormalizeCode приводит код аэропорта к верхнему регистру без пробелов.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidIATACode проверяет, что код состоит ровно из трёх латинских букв.
func IsValidIATACode(code string) bool {
	return isLetters(code, 3)
}

// IsValidICAOCode проверяет, что код состоит ровно из четырёх латинских букв.
func IsValidICAOCode(code string) bool {
	return isLetters(code, 4)
}

func isLetters(code string, n int) bool {
	if len(code) != n {
		return false
	}
	for i := 0; i < len(code); i++ {
		ch := code[i]
		if (ch < 'A' || ch > 'Z') && (ch < 'a' || ch > 'z') {
			return false
		}
	}
	return true
}

// ParseDate разбирает дату в форматах YYYY-MM-DD, MM/DD/YYYY и DD/MM/YYYY (в этом порядке).
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
