package csvmap

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDate   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	slashDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})`)
)

// fallbackLayouts are tried in order when a date matches neither the ISO nor
// the M/D/YY shape.
var fallbackLayouts = []string{
	"2006-01-02 15:04:05",
	"02.01.2006",
	"02-01-2006",
	"2006/01/02",
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate converts a raw date cell into a calendar date. It accepts ISO
// dates (with or without a time suffix), M/D/YY and M/D/YYYY (two-digit
// years below 50 map to 20xx, 50 and above to 19xx), then falls back to a
// list of common layouts. It returns nil, never an error, on total failure:
// callers treat nil as "date unknown" and apply a fallback period.
func ParseDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if isoDate.MatchString(s) {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return &t
		}
		return nil
	}

	if m := slashDate.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			if year < 50 {
				year += 2000
			} else {
				year += 1900
			}
		}
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			return &t
		}
		return nil
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// PeriodFromDate derives the YYYY-MM reporting period token for a record
// date. A nil date yields the supplied fallback period.
func PeriodFromDate(t *time.Time, fallback string) string {
	if t == nil {
		return fallback
	}
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// QuarterPeriod converts a monthly period token into its YYYY-Qn form.
// Unrecognized input is returned unchanged.
func QuarterPeriod(period string) string {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return period
	}
	return fmt.Sprintf("%04d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
}
