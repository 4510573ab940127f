// Package calendar maps Spanish month and weekday names onto time values.
package calendar

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Dai-S2/PI---1-MLOps/internal/domain"
)

var months = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

// Keys are accent-free; lookups fold accents first.
var weekdays = map[string]time.Weekday{
	"lunes":     time.Monday,
	"martes":    time.Tuesday,
	"miercoles": time.Wednesday,
	"jueves":    time.Thursday,
	"viernes":   time.Friday,
	"sabado":    time.Saturday,
	"domingo":   time.Sunday,
}

// NormalizeMonth lower-cases a month name. The result is what gets echoed
// back to callers.
func NormalizeMonth(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeWeekday lower-cases a weekday name, keeping its accents.
func NormalizeWeekday(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParseMonth resolves a Spanish month name, case-insensitively.
func ParseMonth(name string) (time.Month, error) {
	n := NormalizeMonth(name)
	m, ok := months[n]
	if !ok {
		return 0, domain.NewSubjectError(domain.ErrInvalidMonth, n)
	}
	return m, nil
}

// ParseWeekday resolves a Spanish weekday name, ignoring case and accents,
// so "miércoles" and "miercoles" are the same day.
func ParseWeekday(name string) (time.Weekday, error) {
	n := NormalizeWeekday(name)
	d, ok := weekdays[FoldAccents(n)]
	if !ok {
		return 0, domain.NewSubjectError(domain.ErrInvalidWeekday, n)
	}
	return d, nil
}

// FoldAccents strips combining marks: "sábado" becomes "sabado".
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// MonthNames lists the accepted month names in calendar order.
func MonthNames() []string {
	names := make([]string, 0, len(months))
	for n := range months {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return months[names[i]] < months[names[j]] })
	return names
}

// WeekdayNames lists the canonical (accent-free) weekday names, Monday first.
func WeekdayNames() []string {
	names := make([]string, 0, len(weekdays))
	for n := range weekdays {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		return mondayFirst(weekdays[names[i]]) < mondayFirst(weekdays[names[j]])
	})
	return names
}

func mondayFirst(d time.Weekday) int {
	return (int(d) + 6) % 7
}
