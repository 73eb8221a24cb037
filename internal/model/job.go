package model

import "time"

// Job is one processed booking row. Built once by the record processor and
// never mutated afterwards; every aggregate reads from the same slice.
type Job struct {
	Date        time.Time `json:"date"`
	DateKey     string    `json:"dateKey"` // YYYY-MM-DD
	BookingName string    `json:"bookingName"`
	Employees   []string  `json:"employees"` // source order, duplicates kept

	Value     float64  `json:"value"`
	PaidHours *float64 `json:"paidHours"` // nil when the cell carried no number at all

	IsCancelled bool `json:"isCancelled"`
	IsTouchUp   bool `json:"isTouchUp"`
	HasGST      bool `json:"hasGST"`
	IsBillable  bool `json:"isBillable"`

	// Payouts maps employee name to the amount credited for this job.
	// The sum can exceed Value: full-value employees are each credited
	// independently. Every key is a member of Employees.
	Payouts map[string]float64 `json:"employeePayouts"`
}

// HoursOrZero returns the paid hours, treating an absent value as zero.
func (j *Job) HoursOrZero() float64 {
	if j.PaidHours == nil {
		return 0
	}
	return *j.PaidHours
}

// HasPaidHours reports whether the source row carried an hours figure.
// Distinct from a recorded zero.
func (j *Job) HasPaidHours() bool {
	return j.PaidHours != nil
}
