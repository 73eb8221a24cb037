package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// First contiguous decimal numeral. Thousands separators are not
	// handled: "1,234.56" yields 1. Kept as-is, see DESIGN.md.
	numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

	// A number suffixed with "H" or a word starting "hour",
	// e.g. "4H", "3.5 hours", "2 hourly".
	hoursSuffixRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:h\b|hour[a-z]*)`)

	// D/M/Y or D-M-Y with a 2- or 4-digit year.
	dmyRe = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
)

// freeFormDateLayouts are tried in order when no D/M/Y pattern is found.
var freeFormDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	time.RFC3339,
}

// ParseMoney extracts a non-negative amount from free-form cost text.
// "N/A" (any case) and cells with no digits yield 0.
func ParseMoney(text string) float64 {
	t := strings.TrimSpace(text)
	if t == "" || strings.EqualFold(t, "n/a") {
		return 0
	}
	m := numberRe.FindString(t)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParsePaidHours extracts an hours figure from free-form text. All
// hour-suffixed numbers are summed; a cell with bare numbers only yields
// the first of them (multi-person notes like "4 (A) 4.5 (B)" record one
// person's hours, not a total). ok is false when the cell carries no
// number at all, which is distinct from zero hours.
func ParsePaidHours(text string) (hours float64, ok bool) {
	if matches := hoursSuffixRe.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		sum := 0.0
		for _, m := range matches {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			sum += v
		}
		return sum, true
	}
	if m := numberRe.FindString(text); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// ParseDate resolves a cell to a calendar date at UTC midnight. D/M/Y and
// D-M-Y numeric forms are tried first (two-digit years pivot at 70), then
// a set of free-form layouts. ok is false when nothing matches.
func ParseDate(text string) (time.Time, bool) {
	t := strings.TrimSpace(text)
	if t == "" {
		return time.Time{}, false
	}

	if m := dmyRe.FindStringSubmatch(t); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			if year >= 70 {
				year += 1900
			} else {
				year += 2000
			}
		}
		if d, ok := makeDate(year, month, day); ok {
			return d, true
		}
	}

	for _, layout := range freeFormDateLayouts {
		if d, err := time.Parse(layout, t); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// makeDate validates the D/M/Y components; time.Date would silently roll
// 31/2 over into March.
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || int(d.Month()) != month {
		return time.Time{}, false
	}
	return d, true
}
