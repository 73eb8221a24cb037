// Package calculator folds the processed job sequence into the reporting
// aggregates. Accumulation is commutative, so results do not depend on job
// order; only the final sort order is observable.
package calculator

import (
	"sort"
	"time"

	"github.com/Recker011/data-visualiser/internal/model"
)

const (
	topListSize = 10
	// minRankedJobs is the participation floor for the performance
	// rankings; employees below it are excluded regardless of ratio.
	minRankedJobs = 5
)

// WeekRevenue is one Monday-keyed revenue bucket.
type WeekRevenue struct {
	WeekStart string  `json:"weekStart"` // Monday, YYYY-MM-DD
	Revenue   float64 `json:"revenue"`
}

// MonthRevenue is one calendar-month revenue bucket.
type MonthRevenue struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
}

// DayActivity is one calendar day's billable job count and revenue.
type DayActivity struct {
	Date    string  `json:"date"`
	Jobs    int     `json:"jobs"`
	Revenue float64 `json:"revenue"`
}

// EmployeeEarnings is an employee's summed payout across billable jobs.
type EmployeeEarnings struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// HourlyRate is an employee's billable revenue per paid hour.
type HourlyRate struct {
	Name    string  `json:"name"`
	Jobs    int     `json:"jobs"` // jobs carrying a present hours value
	Hours   float64 `json:"hours"`
	Revenue float64 `json:"revenue"`
	Rate    float64 `json:"rate"`
}

// PerJobRate is an employee's payout per billable job.
type PerJobRate struct {
	Name    string  `json:"name"`
	Jobs    int     `json:"jobs"`
	Revenue float64 `json:"revenue"`
	PerJob  float64 `json:"perJob"`
}

// Metrics is the full aggregate set served to the reporting layer.
type Metrics struct {
	WeeklyRevenue     []WeekRevenue                 `json:"weeklyRevenue"`
	MonthlyRevenue    []MonthRevenue                `json:"monthlyRevenue"`
	BusiestDays       []DayActivity                 `json:"busiestDays"`
	TopEmployees      []EmployeeEarnings            `json:"topEmployees"`
	HourlyPerformance []HourlyRate                  `json:"hourlyPerformance"`
	PerJobPerformance []PerJobRate                  `json:"perJobPerformance"`
	Workload          map[string]map[string]float64 `json:"workload"` // week -> employee -> units
}

// Calculator computes aggregates over an immutable job slice.
type Calculator struct {
	jobs []model.Job
}

// New creates a calculator over the given jobs.
func New(jobs []model.Job) *Calculator {
	return &Calculator{jobs: jobs}
}

// CalculateAll computes every aggregate set in one pass per metric.
func (c *Calculator) CalculateAll() *Metrics {
	return &Metrics{
		WeeklyRevenue:     c.WeeklyRevenue(),
		MonthlyRevenue:    c.MonthlyRevenue(),
		BusiestDays:       c.BusiestDays(),
		TopEmployees:      c.TopEmployees(),
		HourlyPerformance: c.HourlyPerformance(),
		PerJobPerformance: c.PerJobPerformance(),
		Workload:          c.Workload(),
	}
}

// MondayOf returns the Monday on or before the given date. A UTC Sunday
// maps to the Monday six days prior.
func MondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// WeeklyRevenue buckets billable revenue by week starting Monday,
// chronologically sorted.
func (c *Calculator) WeeklyRevenue() []WeekRevenue {
	buckets := make(map[string]float64)
	for _, j := range c.jobs {
		if !j.IsBillable {
			continue
		}
		buckets[MondayOf(j.Date).Format("2006-01-02")] += j.Value
	}

	out := make([]WeekRevenue, 0, len(buckets))
	for week, revenue := range buckets {
		out = append(out, WeekRevenue{WeekStart: week, Revenue: revenue})
	}
	sort.Slice(out, func(i, k int) bool { return out[i].WeekStart < out[k].WeekStart })
	return out
}

// MonthlyRevenue buckets billable revenue by calendar year-month,
// chronologically sorted.
func (c *Calculator) MonthlyRevenue() []MonthRevenue {
	buckets := make(map[string]float64)
	for _, j := range c.jobs {
		if !j.IsBillable {
			continue
		}
		buckets[j.Date.Format("2006-01")] += j.Value
	}

	out := make([]MonthRevenue, 0, len(buckets))
	for month, revenue := range buckets {
		out = append(out, MonthRevenue{Month: month, Revenue: revenue})
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Month < out[k].Month })
	return out
}

// BusiestDays ranks exact dates by billable revenue, top 10.
func (c *Calculator) BusiestDays() []DayActivity {
	type acc struct {
		jobs    int
		revenue float64
	}
	buckets := make(map[string]*acc)
	for _, j := range c.jobs {
		if !j.IsBillable {
			continue
		}
		a := buckets[j.DateKey]
		if a == nil {
			a = &acc{}
			buckets[j.DateKey] = a
		}
		a.jobs++
		a.revenue += j.Value
	}

	out := make([]DayActivity, 0, len(buckets))
	for date, a := range buckets {
		out = append(out, DayActivity{Date: date, Jobs: a.jobs, Revenue: a.revenue})
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].Revenue != out[k].Revenue {
			return out[i].Revenue > out[k].Revenue
		}
		return out[i].Date < out[k].Date
	})
	return capList(out, topListSize)
}

// TopEmployees ranks employees by summed billable payouts, top 10.
func (c *Calculator) TopEmployees() []EmployeeEarnings {
	totals := make(map[string]float64)
	for _, j := range c.jobs {
		if !j.IsBillable {
			continue
		}
		for name, amount := range j.Payouts {
			totals[name] += amount
		}
	}

	out := make([]EmployeeEarnings, 0, len(totals))
	for name, amount := range totals {
		out = append(out, EmployeeEarnings{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].Amount != out[k].Amount {
			return out[i].Amount > out[k].Amount
		}
		return out[i].Name < out[k].Name
	})
	return capList(out, topListSize)
}

// HourlyPerformance ranks employees by billable revenue per paid hour,
// top 10. Non-hourly staff are excluded, as is anyone with fewer than
// five jobs carrying a present hours value.
func (c *Calculator) HourlyPerformance() []HourlyRate {
	accs := make(map[string]*HourlyRate)
	for _, j := range c.jobs {
		for _, name := range uniqueNames(j.Employees) {
			if model.IsNonHourly(name) {
				continue
			}
			a := accs[name]
			if a == nil {
				a = &HourlyRate{Name: name}
				accs[name] = a
			}
			if j.HasPaidHours() {
				a.Jobs++
				a.Hours += j.HoursOrZero()
			}
			if j.IsBillable {
				a.Revenue += j.Value
			}
		}
	}

	out := make([]HourlyRate, 0, len(accs))
	for _, a := range accs {
		if a.Jobs < minRankedJobs || a.Hours <= 0 {
			continue
		}
		a.Rate = a.Revenue / a.Hours
		out = append(out, *a)
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].Rate != out[k].Rate {
			return out[i].Rate > out[k].Rate
		}
		return out[i].Name < out[k].Name
	})
	return capList(out, topListSize)
}

// PerJobPerformance ranks employees by payout per billable job, uncapped,
// with the same five-job participation floor.
func (c *Calculator) PerJobPerformance() []PerJobRate {
	accs := make(map[string]*PerJobRate)
	for _, j := range c.jobs {
		if !j.IsBillable {
			continue
		}
		for _, name := range uniqueNames(j.Employees) {
			a := accs[name]
			if a == nil {
				a = &PerJobRate{Name: name}
				accs[name] = a
			}
			a.Jobs++
			a.Revenue += j.Payouts[name]
		}
	}

	out := make([]PerJobRate, 0, len(accs))
	for _, a := range accs {
		if a.Jobs < minRankedJobs {
			continue
		}
		a.PerJob = a.Revenue / float64(a.Jobs)
		out = append(out, *a)
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].PerJob != out[k].PerJob {
			return out[i].PerJob > out[k].PerJob
		}
		return out[i].Name < out[k].Name
	})
	return out
}

// Workload accumulates effort per ISO week (Monday key) and employee:
// one unit per job for fixed-rate staff, the job's paid hours for everyone
// else. Zero-valued cells are never created.
func (c *Calculator) Workload() map[string]map[string]float64 {
	weeks := make(map[string]map[string]float64)
	for _, j := range c.jobs {
		week := MondayOf(j.Date).Format("2006-01-02")
		for _, name := range uniqueNames(j.Employees) {
			units := 0.0
			if model.IsFixedRate(name) {
				units = 1
			} else if j.HasPaidHours() {
				units = j.HoursOrZero()
			}
			if units == 0 {
				continue
			}
			if weeks[week] == nil {
				weeks[week] = make(map[string]float64)
			}
			weeks[week][name] += units
		}
	}
	return weeks
}

// uniqueNames keeps first occurrences; a duplicated name on one job must
// not double-count that job.
func uniqueNames(names []string) []string {
	if len(names) < 2 {
		return names
	}
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func capList[T any](list []T, n int) []T {
	if len(list) > n {
		return list[:n]
	}
	return list
}
