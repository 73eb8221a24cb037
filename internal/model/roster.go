package model

import "strings"

// Subcontractor is paid a flat half share of any job they appear on,
// matched by exact name as it appears in the export.
const Subcontractor = "Uppal/Dhruv"

// fixedRateNames are the employees paid a percentage share of the job
// instead of being credited the full job value.
var fixedRateNames = map[string]bool{
	"Gurpreet": true,
	"Manpreet": true,
	"Karan":    true,
}

// nonHourlyNames are excluded from hourly-performance rankings: the
// subcontractor and the fixed-rate staff are paid by share, so an
// hours-based rate is meaningless for them. Keys are normalized.
var nonHourlyNames = map[string]bool{
	normalizeName(Subcontractor): true,
	normalizeName("Gurpreet"):    true,
	normalizeName("Manpreet"):    true,
	normalizeName("Karan"):       true,
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// IsFixedRate reports whether the employee is on a percentage share.
func IsFixedRate(name string) bool {
	return fixedRateNames[name]
}

// IsNonHourly reports whether the employee is excluded from hourly
// rankings. Case- and whitespace-insensitive.
func IsNonHourly(name string) bool {
	return nonHourlyNames[normalizeName(name)]
}
