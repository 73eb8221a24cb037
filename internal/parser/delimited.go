package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is one parsed record keyed by canonicalized header text. Unrecognized
// headers keep their original (trimmed) names.
type Row map[string]string

// Diagnostics summarizes one parse run for the status surface.
type Diagnostics struct {
	RowCount  int      `json:"rowCount"`
	Delimiter string   `json:"delimiter"` // literal `\t` when tab
	Recovered bool     `json:"recovered"` // positional rebuild was needed
	Warnings  []string `json:"warnings"`
}

// ErrNoRows is returned when no usable rows survive any parse strategy.
var ErrNoRows = errors.New("no parseable rows in source")

var delimiterCandidates = []rune{',', '\t', ';', '|'}

// Parse turns raw export text into canonical rows. Strategy order: header
// parse with auto-detected delimiter, forced-tab retry when that yields
// nothing and the first line is tabbed, then a positional rebuild when the
// header parse hit field-count mismatches (ragged exports typically carry a
// trailing "Notes" header with no data under it).
func Parse(text string) ([]Row, *Diagnostics, error) {
	diags := &Diagnostics{}

	delim := DetectDelimiter(text)
	rows, mismatches := parseWithHeader(text, delim)

	if len(rows) == 0 && mismatches == 0 && delim != '\t' && firstLineHasTab(text) {
		delim = '\t'
		rows, mismatches = parseWithHeader(text, delim)
	}
	diags.Delimiter = delimiterLabel(delim)

	if mismatches > 0 {
		diags.Recovered = true
		diags.Warnings = append(diags.Warnings,
			fmt.Sprintf("%d row(s) did not match the header width; rows rebuilt positionally", mismatches))
		var warn string
		rows, warn = parsePositional(text, delim)
		if warn != "" {
			diags.Warnings = append(diags.Warnings, warn)
		}
	}

	diags.RowCount = len(rows)
	if len(rows) == 0 {
		return nil, diags, ErrNoRows
	}
	return rows, diags, nil
}

// DetectDelimiter scores each candidate delimiter over a sample of lines:
// wider, more consistent field counts win. Comma is the fallback.
func DetectDelimiter(text string) rune {
	best := ','
	bestScore := -1.0

	for _, delim := range delimiterCandidates {
		r := newReader(text, delim)
		var counts []int
		for len(counts) < 20 {
			rec, err := r.Read()
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				continue
			}
			if blankRecord(rec) {
				continue
			}
			counts = append(counts, len(rec))
		}
		if len(counts) == 0 {
			continue
		}

		total, matching := 0, 0
		for _, c := range counts {
			total += c
			if c == counts[0] {
				matching++
			}
		}
		mean := float64(total) / float64(len(counts))
		if mean <= 1 {
			continue
		}
		score := mean * float64(matching) / float64(len(counts))
		if score > bestScore {
			bestScore = score
			best = delim
		}
	}

	return best
}

// parseWithHeader reads the text as header + body, zipping each body row
// against the header. Rows whose width differs from the header are counted
// as mismatches and excluded; the caller decides whether to fall back to a
// positional rebuild.
func parseWithHeader(text string, delim rune) (rows []Row, mismatches int) {
	r := newReader(text, delim)

	header, err := r.Read()
	if err != nil {
		return nil, 0
	}

	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			continue
		}
		if blankRecord(rec) {
			continue
		}
		if len(rec) != len(header) {
			mismatches++
			continue
		}
		row := make(Row, len(header))
		for i, key := range header {
			row[CanonicalizeHeader(key)] = rec[i]
		}
		rows = append(rows, row)
	}

	return rows, mismatches
}

// parsePositional re-reads the text as bare arrays, takes the first
// non-blank array as the header and squares everything off against the
// dominant body width before zipping.
func parsePositional(text string, delim rune) ([]Row, string) {
	r := newReader(text, delim)

	var arrays [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			continue
		}
		if blankRecord(rec) {
			continue
		}
		arrays = append(arrays, rec)
	}
	if len(arrays) < 2 {
		return nil, ""
	}

	header := arrays[0]
	body := arrays[1:]
	dominant := dominantLength(body)

	var warn string
	switch {
	case len(header) > dominant:
		warn = fmt.Sprintf("header has %d columns but data rows have %d; trailing header columns dropped",
			len(header), dominant)
		header = header[:dominant]
	case len(header) < dominant:
		for i := len(header); i < dominant; i++ {
			header = append(header, fmt.Sprintf("Col%d", i))
		}
	}

	rows := make([]Row, 0, len(body))
	for _, rec := range body {
		if len(rec) > dominant {
			rec = rec[:dominant]
		}
		for len(rec) < dominant {
			rec = append(rec, "")
		}
		row := make(Row, dominant)
		for i, key := range header {
			row[CanonicalizeHeader(key)] = rec[i]
		}
		rows = append(rows, row)
	}

	return rows, warn
}

// dominantLength is the most frequent field count among body rows. Ties go
// to the smaller length to keep the result deterministic.
func dominantLength(rows [][]string) int {
	freq := make(map[int]int)
	maxLen := 0
	for _, rec := range rows {
		freq[len(rec)]++
		if len(rec) > maxLen {
			maxLen = len(rec)
		}
	}

	dominant, dominantCount := 0, 0
	for length := 1; length <= maxLen; length++ {
		if c := freq[length]; c > dominantCount {
			dominant, dominantCount = length, c
		}
	}
	return dominant
}

func newReader(text string, delim rune) *csv.Reader {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r
}

func blankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func firstLineHasTab(text string) bool {
	line := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}
	return strings.Contains(line, "\t")
}

func delimiterLabel(delim rune) string {
	if delim == '\t' {
		return `\t`
	}
	return string(delim)
}
