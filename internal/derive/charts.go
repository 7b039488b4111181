package derive

import (
	"fmt"
	"math"
	"sort"
	"time"

	"fintrack/internal/core"
)

// Chart view models. All values are sign-normalized via core.SignedAmount
// before aggregation: income categories positive, everything else negative.
type (
	// TimePoint is one entry in the today series.
	TimePoint struct {
		Time     string  `json:"time"`
		Value    float64 `json:"value"`
		Category string  `json:"category"`
	}

	// DayPoint is one slice of the current-month pie.
	DayPoint struct {
		Day   string  `json:"day"`
		Value float64 `json:"value"`
	}

	// DatePoint is one point of the lifetime series, bucketed by month-year.
	DatePoint struct {
		Date  string  `json:"date"`
		Value float64 `json:"value"`
	}

	// MonthPoint is one column of the yearly series.
	MonthPoint struct {
		Month string  `json:"month"`
		Value float64 `json:"value"`
	}
)

// TodaySeries returns the transactions of now's calendar day as
// (time-of-day, signed value, category) points, ascending by time label.
func TodaySeries(transactions []core.Transaction, now time.Time) []TimePoint {
	var out []TimePoint
	for _, tx := range transactions {
		if !core.SameDay(tx.Date, now) {
			continue
		}
		out = append(out, TimePoint{
			Time:     tx.Date.Format("15:04"),
			Value:    core.SignedAmount(tx),
			Category: tx.Category,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// MonthBreakdown groups now's calendar month by day of month, summing signed
// values per day. Days without transactions are omitted; slices come out in
// ascending day order.
func MonthBreakdown(transactions []core.Transaction, now time.Time) []DayPoint {
	sums := make(map[int]float64)
	for _, tx := range transactions {
		if tx.Date.Month() != now.Month() || tx.Date.Year() != now.Year() {
			continue
		}
		sums[tx.Date.Day()] += core.SignedAmount(tx)
	}

	days := make([]int, 0, len(sums))
	for day := range sums {
		days = append(days, day)
	}
	sort.Ints(days)

	out := make([]DayPoint, len(days))
	for i, day := range days {
		out[i] = DayPoint{Day: fmt.Sprintf("Day %d", day), Value: sums[day]}
	}
	return out
}

// LifetimeSeries buckets all transactions by month-year label ("Jan 25"),
// summing signed values. Records with a NaN amount are skipped. Buckets are
// emitted in first-occurrence order after sorting by date ascending, with
// values rounded to two decimal places.
func LifetimeSeries(transactions []core.Transaction) []DatePoint {
	sorted := make([]core.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if math.IsNaN(tx.Amount) {
			continue
		}
		sorted = append(sorted, tx)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	sums := make(map[string]float64)
	var order []string
	for _, tx := range sorted {
		label := tx.Date.Format("Jan 06")
		if _, seen := sums[label]; !seen {
			order = append(order, label)
		}
		sums[label] += core.SignedAmount(tx)
	}

	out := make([]DatePoint, len(order))
	for i, label := range order {
		out[i] = DatePoint{Date: label, Value: core.Round2(sums[label])}
	}
	return out
}

// YearlySeries returns a dense 12-bucket series (Jan..Dec) for now's calendar
// year. Months with no transactions stay at zero and are still emitted.
func YearlySeries(transactions []core.Transaction, now time.Time) []MonthPoint {
	var totals [12]float64
	for _, tx := range transactions {
		if tx.Date.Year() != now.Year() {
			continue
		}
		totals[int(tx.Date.Month())-1] += core.SignedAmount(tx)
	}

	out := make([]MonthPoint, 12)
	for i := range totals {
		out[i] = MonthPoint{
			Month: time.Month(i + 1).String()[:3],
			Value: totals[i],
		}
	}
	return out
}
