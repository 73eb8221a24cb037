// Package process turns canonical parsed rows into typed, classified job
// records. The transform is pure and per-row: no state survives between
// rows, and the output slice is never mutated downstream.
package process

import (
	"fmt"
	"strings"
	"time"

	"github.com/Recker011/data-visualiser/internal/model"
	"github.com/Recker011/data-visualiser/internal/parser"
)

// Result carries the processed jobs plus the row-quality counters the
// status surface reports.
type Result struct {
	Jobs []model.Job

	// DroppedDates counts rows excluded because no date strategy resolved.
	DroppedDates int
	// MissingFieldRows counts rows lacking at least one canonical column;
	// those rows still proceed with missing cells treated as empty text.
	MissingFieldRows int

	Warnings []string
}

// Rows processes every canonical row in order. Rows without a resolvable
// date never become jobs and never reach classification.
func Rows(rows []parser.Row) Result {
	res := Result{Jobs: make([]model.Job, 0, len(rows))}

	for _, row := range rows {
		if missingCanonicalField(row) {
			res.MissingFieldRows++
		}

		date, ok := parser.ParseDate(row[parser.FieldDate])
		if !ok {
			res.DroppedDates++
			continue
		}

		res.Jobs = append(res.Jobs, buildJob(row, date))
	}

	if res.MissingFieldRows > 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%d row(s) missing one or more expected columns; blank values assumed", res.MissingFieldRows))
	}
	if res.DroppedDates > 0 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%d row(s) dropped: date could not be resolved", res.DroppedDates))
	}

	return res
}

func buildJob(row parser.Row, date time.Time) model.Job {
	bookingName := strings.TrimSpace(row[parser.FieldBooking])
	costText := row[parser.FieldCost]

	value := parser.ParseMoney(costText)
	employees := SplitEmployees(row[parser.FieldEmployees])

	var paidHours *float64
	if h, ok := parser.ParsePaidHours(row[parser.FieldPaidHours]); ok {
		paidHours = &h
	}

	lowerName := strings.ToLower(bookingName)
	isCancelled := strings.Contains(lowerName, "cancelled")
	isTouchUp := strings.Contains(lowerName, "touch up")
	hasGST := strings.Contains(strings.ToLower(costText), "+ gst")

	return model.Job{
		Date:        date,
		DateKey:     date.Format("2006-01-02"),
		BookingName: bookingName,
		Employees:   employees,
		Value:       value,
		PaidHours:   paidHours,
		IsCancelled: isCancelled,
		IsTouchUp:   isTouchUp,
		HasGST:      hasGST,
		IsBillable:  value > 0 && !isCancelled && !isTouchUp,
		Payouts:     AllocatePayouts(employees, value),
	}
}

// SplitEmployees splits the staff cell on commas, trimming each name and
// dropping empties. Order and duplicates are preserved.
func SplitEmployees(text string) []string {
	parts := strings.Split(text, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func missingCanonicalField(row parser.Row) bool {
	for _, field := range parser.CanonicalFields {
		if _, ok := row[field]; !ok {
			return true
		}
	}
	return false
}
