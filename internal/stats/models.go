// Package stats serves the dashboard aggregates: period sales, top sellers,
// and inventory counts. Reads go through a small Redis cache when one is
// configured; the database is always the fallback.
package stats

import "time"

// SalesData is the period summary shown on the dashboard.
type SalesData struct {
	PeriodSales    float64 `json:"periodSales"`
	TotalOrders    int     `json:"totalOrders"`
	TotalCustomers int     `json:"totalCustomers"`
}

// TopProduct is one row of the best-sellers widget.
type TopProduct struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	ImageURL string  `json:"image_url"`
	Rating   float64 `json:"rating"`
	Sold     int     `json:"sold"`
}

// TimeFrame is a dashboard period keyword.
type TimeFrame string

const (
	TimeFrameToday     TimeFrame = "today"
	TimeFrameYesterday TimeFrame = "yesterday"
	TimeFrameLastWeek  TimeFrame = "lastWeek"
	TimeFrameLastMonth TimeFrame = "lastMonth"
)

// ParseTimeFrame maps a raw keyword onto a TimeFrame, defaulting to today
// for anything unrecognized, matching the dashboard's lenient behavior.
func ParseTimeFrame(raw string) TimeFrame {
	switch TimeFrame(raw) {
	case TimeFrameYesterday, TimeFrameLastWeek, TimeFrameLastMonth:
		return TimeFrame(raw)
	default:
		return TimeFrameToday
	}
}

// Window resolves the half-open [from, to) interval covered by the keyword,
// relative to now in now's location.
func (tf TimeFrame) Window(now time.Time) (time.Time, time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := midnight.AddDate(0, 0, 1)

	switch tf {
	case TimeFrameYesterday:
		return midnight.AddDate(0, 0, -1), midnight
	case TimeFrameLastWeek:
		return midnight.AddDate(0, 0, -7), tomorrow
	case TimeFrameLastMonth:
		return midnight.AddDate(0, -1, 0), tomorrow
	default:
		return midnight, tomorrow
	}
}
