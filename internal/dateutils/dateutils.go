// Package dateutils turns the date strings found on bank statements into ISO
// YYYY-MM-DD dates.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger replaces the logger reporting date fallbacks. nil is ignored.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutUS        = "01/02/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutWithMonth = "2-Jan-2006"
	DateLayoutOFX       = "20060102"
)

// CommonFormats is the list of layouts tried once the Brazilian pattern failed.
var CommonFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	DateLayoutFull,
	DateLayoutISO,
	"2006/01/02",
	DateLayoutUS,
	DateLayoutEuropean,
	DateLayoutWithMonth,
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC1123Z,
	time.RFC1123,
}

var brazilianDate = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)

// Clock returns the current time. Parsers take one so tests can pin "today".
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// ParseBrazilianDate matches D/M/YYYY or D-M-YYYY at the start of s and
// returns the zero-padded ISO date. Anything after the year is ignored.
func ParseBrazilianDate(s string) (string, bool) {
	m := brazilianDate.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if !validCalendarDate(year, month, day) {
		return "", false
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// ParseDate attempts to parse a date string using multiple common formats
// Returns the parsed time and the detected format
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("unable to parse empty date")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	// Timestamps with an unusual suffix still carry a usable ISO prefix.
	if len(dateStr) > len(DateLayoutISO) {
		if t, err := time.Parse(DateLayoutISO, dateStr[:len(DateLayoutISO)]); err == nil {
			return t, DateLayoutISO, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// NormalizeDate converts a statement date to ISO. Input matching the
// Brazilian day-first pattern is never read with another layout: 12/31/2024
// is not a US date, and an impossible day or month yields today's date like
// any unparseable input.
func NormalizeDate(raw string, now Clock) string {
	if now == nil {
		now = SystemClock
	}

	if brazilianDate.MatchString(strings.TrimSpace(raw)) {
		if iso, ok := ParseBrazilianDate(raw); ok {
			return iso
		}
		log.WithField("date", raw).Debug("Impossible day-first date, using current date")
		return ToISODate(now())
	}

	if t, _, err := ParseDate(raw); err == nil {
		return ToISODate(t)
	}

	log.WithField("date", raw).Debug("Unparseable date, using current date")
	return ToISODate(now())
}

// ParseOFXDate converts an OFX YYYYMMDD[HHMMSS...] date to ISO. Short,
// non-numeric or impossible dates yield today's date according to now.
func ParseOFXDate(raw string, now Clock) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 8 {
		if t, err := time.Parse(DateLayoutOFX, raw[:8]); err == nil {
			return ToISODate(t)
		}
	}

	if now == nil {
		now = SystemClock
	}
	log.WithField("date", raw).Debug("Malformed OFX date, using current date")
	return ToISODate(now())
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD) in its own offset
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString trims and collapses inner whitespace
func CleanDateString(dateStr string) string {
	return strings.Join(strings.Fields(dateStr), " ")
}

func validCalendarDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month
}
