package database

import (
	"github.com/dantetesta/estacionamento/internal/models"
)

// ReportRepo aggregates stays and expenses for the financial reports
type ReportRepo struct{}

// NewReportRepo creates a new report repository
func NewReportRepo() *ReportRepo {
	return &ReportRepo{}
}

// Daily summarises one calendar day (YYYY-MM-DD)
func (r *ReportRepo) Daily(date string) (*models.DailyReport, error) {
	report := &models.DailyReport{Date: date}

	err := DB.QueryRow(
		"SELECT COUNT(*) FROM vehicles WHERE date(entered_at) = ?", date,
	).Scan(&report.Entries)
	if err != nil {
		return nil, err
	}

	err = DB.QueryRow(
		"SELECT COUNT(*) FROM vehicles WHERE date(exited_at) = ?", date,
	).Scan(&report.Exits)
	if err != nil {
		return nil, err
	}

	err = DB.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM vehicles WHERE date(exited_at) = ? AND paid = 1", date,
	).Scan(&report.Revenue)
	if err != nil {
		return nil, err
	}

	err = DB.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE date = ?", date,
	).Scan(&report.Expenses)
	if err != nil {
		return nil, err
	}

	report.Net = report.Revenue - report.Expenses

	report.ByType, err = r.byType("date(entered_at) = ?", date)
	if err != nil {
		return nil, err
	}

	return report, nil
}

// Range summarises an inclusive date range (weekly report)
func (r *ReportRepo) Range(start, end string) (*models.RangeReport, error) {
	report := &models.RangeReport{Start: start, End: end}

	err := DB.QueryRow(`
		SELECT COALESCE(SUM(amount), 0) FROM vehicles
		WHERE date(exited_at) BETWEEN ? AND ? AND paid = 1
	`, start, end).Scan(&report.Revenue)
	if err != nil {
		return nil, err
	}

	err = DB.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE date BETWEEN ? AND ?", start, end,
	).Scan(&report.Expenses)
	if err != nil {
		return nil, err
	}

	err = DB.QueryRow(
		"SELECT COUNT(*) FROM vehicles WHERE date(entered_at) BETWEEN ? AND ?", start, end,
	).Scan(&report.Entries)
	if err != nil {
		return nil, err
	}

	report.Net = report.Revenue - report.Expenses
	return report, nil
}

// Monthly summarises one calendar month (YYYY-MM), with a per-day
// revenue series
func (r *ReportRepo) Monthly(month string) (*models.MonthlyReport, error) {
	report := &models.MonthlyReport{Month: month}

	err := DB.QueryRow(`
		SELECT COALESCE(SUM(amount), 0) FROM vehicles
		WHERE strftime('%Y-%m', exited_at) = ? AND paid = 1
	`, month).Scan(&report.Revenue)
	if err != nil {
		return nil, err
	}

	err = DB.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE strftime('%Y-%m', date) = ?", month,
	).Scan(&report.Expenses)
	if err != nil {
		return nil, err
	}

	err = DB.QueryRow(
		"SELECT COUNT(*) FROM vehicles WHERE strftime('%Y-%m', entered_at) = ?", month,
	).Scan(&report.Entries)
	if err != nil {
		return nil, err
	}

	report.Net = report.Revenue - report.Expenses

	rows, err := DB.Query(`
		SELECT date(exited_at), COUNT(*), COALESCE(SUM(amount), 0)
		FROM vehicles
		WHERE strftime('%Y-%m', exited_at) = ? AND paid = 1
		GROUP BY date(exited_at)
		ORDER BY date(exited_at)
	`, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d models.DayRevenue
		if err := rows.Scan(&d.Date, &d.Count, &d.Revenue); err != nil {
			return nil, err
		}
		report.ByDay = append(report.ByDay, d)
	}

	return report, rows.Err()
}

// RevenueByMethod aggregates settled stays per payment method within a month
func (r *ReportRepo) RevenueByMethod(month string) ([]models.MethodBreakdown, error) {
	rows, err := DB.Query(`
		SELECT payment_method, COUNT(*), COALESCE(SUM(amount), 0)
		FROM vehicles
		WHERE strftime('%Y-%m', exited_at) = ? AND paid = 1
		GROUP BY payment_method
	`, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breakdown []models.MethodBreakdown
	for rows.Next() {
		var b models.MethodBreakdown
		if err := rows.Scan(&b.Method, &b.Count, &b.Revenue); err != nil {
			return nil, err
		}
		breakdown = append(breakdown, b)
	}

	return breakdown, rows.Err()
}

// RevenueByType aggregates settled stays per vehicle class within a month
func (r *ReportRepo) RevenueByType(month string) ([]models.TypeBreakdown, error) {
	return r.byType("strftime('%Y-%m', exited_at) = ? AND paid = 1", month)
}

func (r *ReportRepo) byType(cond string, arg any) ([]models.TypeBreakdown, error) {
	rows, err := DB.Query(`
		SELECT type, COUNT(*), COALESCE(SUM(amount), 0)
		FROM vehicles WHERE `+cond+`
		GROUP BY type
	`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breakdown []models.TypeBreakdown
	for rows.Next() {
		var b models.TypeBreakdown
		if err := rows.Scan(&b.Type, &b.Count, &b.Revenue); err != nil {
			return nil, err
		}
		breakdown = append(breakdown, b)
	}

	return breakdown, rows.Err()
}
