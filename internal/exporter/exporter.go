// Package exporter renders the computed aggregates into an Excel workbook
// for download. It reads the metrics set only; nothing here feeds back
// into the pipeline.
package exporter

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/Recker011/data-visualiser/internal/calculator"
)

// Exporter writes metric workbooks.
type Exporter struct{}

// New creates an exporter.
func New() *Exporter {
	return &Exporter{}
}

// Export builds a workbook with one sheet per aggregate set.
func (e *Exporter) Export(metrics *calculator.Metrics) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := e.writeWeekly(f, metrics.WeeklyRevenue); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.writeMonthly(f, metrics.MonthlyRevenue); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.writeBusiestDays(f, metrics.BusiestDays); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.writeTopEmployees(f, metrics.TopEmployees); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.writeHourly(f, metrics.HourlyPerformance); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.writePerJob(f, metrics.PerJobPerformance); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.writeWorkload(f, metrics.Workload); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Drop the default sheet left by excelize.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		_ = f.Close()
		return nil, err
	}
	f.SetActiveSheet(0)
	return f, nil
}

func newSheet(f *excelize.File, name string, headers []string) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowIdx int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeWeekly(f *excelize.File, weeks []calculator.WeekRevenue) error {
	const sheet = "Weekly Revenue"
	if err := newSheet(f, sheet, []string{"Week Starting", "Revenue"}); err != nil {
		return err
	}
	for i, w := range weeks {
		if err := setRow(f, sheet, i+2, []interface{}{w.WeekStart, w.Revenue}); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeMonthly(f *excelize.File, months []calculator.MonthRevenue) error {
	const sheet = "Monthly Revenue"
	if err := newSheet(f, sheet, []string{"Month", "Revenue"}); err != nil {
		return err
	}
	for i, m := range months {
		if err := setRow(f, sheet, i+2, []interface{}{m.Month, m.Revenue}); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeBusiestDays(f *excelize.File, days []calculator.DayActivity) error {
	const sheet = "Busiest Days"
	if err := newSheet(f, sheet, []string{"Date", "Jobs", "Revenue"}); err != nil {
		return err
	}
	for i, d := range days {
		if err := setRow(f, sheet, i+2, []interface{}{d.Date, d.Jobs, d.Revenue}); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeTopEmployees(f *excelize.File, top []calculator.EmployeeEarnings) error {
	const sheet = "Top Employees"
	if err := newSheet(f, sheet, []string{"Employee", "Earnings"}); err != nil {
		return err
	}
	for i, t := range top {
		if err := setRow(f, sheet, i+2, []interface{}{t.Name, t.Amount}); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeHourly(f *excelize.File, ranks []calculator.HourlyRate) error {
	const sheet = "Hourly Performance"
	if err := newSheet(f, sheet, []string{"Employee", "Jobs", "Hours", "Revenue", "Revenue per Hour"}); err != nil {
		return err
	}
	for i, r := range ranks {
		if err := setRow(f, sheet, i+2, []interface{}{r.Name, r.Jobs, r.Hours, r.Revenue, r.Rate}); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writePerJob(f *excelize.File, ranks []calculator.PerJobRate) error {
	const sheet = "Per-Job Performance"
	if err := newSheet(f, sheet, []string{"Employee", "Jobs", "Payout Total", "Payout per Job"}); err != nil {
		return err
	}
	for i, r := range ranks {
		if err := setRow(f, sheet, i+2, []interface{}{r.Name, r.Jobs, r.Revenue, r.PerJob}); err != nil {
			return err
		}
	}
	return nil
}

// writeWorkload lays the week x employee matrix out with weeks as rows and
// employees as columns, both sorted for a stable workbook.
func (e *Exporter) writeWorkload(f *excelize.File, workload map[string]map[string]float64) error {
	const sheet = "Workload"

	weeks := make([]string, 0, len(workload))
	employeeSet := make(map[string]bool)
	for week, cells := range workload {
		weeks = append(weeks, week)
		for name := range cells {
			employeeSet[name] = true
		}
	}
	sort.Strings(weeks)

	employees := make([]string, 0, len(employeeSet))
	for name := range employeeSet {
		employees = append(employees, name)
	}
	sort.Strings(employees)

	headers := append([]string{"Week Starting"}, employees...)
	if err := newSheet(f, sheet, headers); err != nil {
		return err
	}

	for i, week := range weeks {
		values := make([]interface{}, 0, len(employees)+1)
		values = append(values, week)
		for _, name := range employees {
			if units, ok := workload[week][name]; ok {
				values = append(values, units)
			} else {
				values = append(values, "")
			}
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}
