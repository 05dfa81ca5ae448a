package models

// TypeBreakdown aggregates stays per vehicle class
type TypeBreakdown struct {
	Type    VehicleType `json:"type"`
	Count   int         `json:"count"`
	Revenue float64     `json:"revenue"`
}

// MethodBreakdown aggregates revenue per payment method
type MethodBreakdown struct {
	Method  PaymentMethod `json:"method"`
	Count   int           `json:"count"`
	Revenue float64       `json:"revenue"`
}

// DayRevenue is one point of a per-day revenue series
type DayRevenue struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// DailyReport summarises one calendar day
type DailyReport struct {
	Date     string          `json:"date"`
	Entries  int             `json:"entries"`
	Exits    int             `json:"exits"`
	Revenue  float64         `json:"revenue"`
	Expenses float64         `json:"expenses"`
	Net      float64         `json:"net"`
	ByType   []TypeBreakdown `json:"by_type"`
}

// RangeReport summarises an arbitrary date range (weekly report)
type RangeReport struct {
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Entries  int     `json:"entries"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// MonthlyReport summarises one calendar month
type MonthlyReport struct {
	Month    string       `json:"month"` // YYYY-MM
	Entries  int          `json:"entries"`
	Revenue  float64      `json:"revenue"`
	Expenses float64      `json:"expenses"`
	Net      float64      `json:"net"`
	ByDay    []DayRevenue `json:"by_day"`
}

// Dashboard is the landing-page summary
type Dashboard struct {
	CurrentlyParked int             `json:"currently_parked"`
	EntriesToday    int             `json:"entries_today"`
	ExitsToday      int             `json:"exits_today"`
	RevenueToday    float64         `json:"revenue_today"`
	ExpensesToday   float64         `json:"expenses_today"`
	RevenueMonth    float64         `json:"revenue_month"`
	ExpensesMonth   float64         `json:"expenses_month"`
	ByType          []TypeBreakdown `json:"by_type"`
	RecentVehicles  []*Vehicle      `json:"recent_vehicles"`
	UnpaidSubs      []*Subscriber   `json:"unpaid_subscribers"`
}
