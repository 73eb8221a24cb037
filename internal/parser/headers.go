package parser

import (
	"regexp"
	"strings"
)

// Canonical field names the pipeline operates on internally.
const (
	FieldDate      = "Date"
	FieldBooking   = "Booking Name"
	FieldEmployees = "Employees"
	FieldCost      = "Cost"
	FieldPaidHours = "Hours Paid Out"
)

// CanonicalFields lists the columns the processor expects, in export order.
var CanonicalFields = []string{FieldDate, FieldBooking, FieldEmployees, FieldCost, FieldPaidHours}

// headerSynonyms maps normalized header text to the canonical field name.
// Keys must already be in normalized form (see NormalizeHeader).
var headerSynonyms = map[string]string{
	"date":         FieldDate,
	"day":          FieldDate,
	"booking date": FieldDate,
	"job date":     FieldDate,

	"booking name": FieldBooking,
	"booking":      FieldBooking,
	"job":          FieldBooking,
	"job name":     FieldBooking,
	"client":       FieldBooking,
	"client name":  FieldBooking,

	"employees":    FieldEmployees,
	"employee":     FieldEmployees,
	"employee s":   FieldEmployees, // "Employee(s)"
	"staff":        FieldEmployees,
	"staff member": FieldEmployees,
	"workers":      FieldEmployees,

	"cost":   FieldCost,
	"amount": FieldCost,
	"price":  FieldCost,
	"value":  FieldCost,
	"total":  FieldCost,
	"charge": FieldCost,

	"hours paid out": FieldPaidHours,
	"hours paid":     FieldPaidHours,
	"paid hours":     FieldPaidHours,
	"hours":          FieldPaidHours,
}

var (
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeHeader reduces a raw header to its comparison form: BOM
// stripped, lower-cased, runs of punctuation collapsed to single spaces.
func NormalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(strings.TrimSpace(name))
	name = nonAlnumRe.ReplaceAllString(name, " ")
	name = whitespaceRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// CanonicalizeHeader maps an arbitrary column name onto the fixed field
// vocabulary. Unrecognized headers pass through trimmed but otherwise
// unchanged; the function is pure and idempotent.
func CanonicalizeHeader(name string) string {
	if canonical, ok := headerSynonyms[NormalizeHeader(name)]; ok {
		return canonical
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "\ufeff"))
}
