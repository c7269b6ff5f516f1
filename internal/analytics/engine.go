// Package analytics is the single home for the revenue and tank-level
// arithmetic every dashboard view shares. All functions are pure folds
// over in-memory slices; callers fetch the rows, this package does the math.
package analytics

import (
	"time"

	"nipco-portal/internal/models"
)

// SameDay reports whether two timestamps fall on the same calendar day
// in the timestamp's own location.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// TodaysSales filters a sale list down to the entries recorded on the
// given calendar day.
func TodaysSales(sales []models.Sale, date time.Time) []models.Sale {
	var out []models.Sale
	for _, s := range sales {
		if SameDay(s.SaleTime, date) {
			out = append(out, s)
		}
	}
	return out
}

// ShiftTotal sums the amount for sales matching the given shift.
// Unknown shift strings simply sum to zero.
func ShiftTotal(sales []models.Sale, shift string) float64 {
	var total float64
	for _, s := range sales {
		if s.Shift == shift {
			total += s.Amount
		}
	}
	return total
}

// Total sums the amount across every sale in the list.
func Total(sales []models.Sale) float64 {
	var total float64
	for _, s := range sales {
		total += s.Amount
	}
	return total
}

// VolumeTotal sums liters sold across every sale in the list.
func VolumeTotal(sales []models.Sale) float64 {
	var total float64
	for _, s := range sales {
		total += s.VolumeSold
	}
	return total
}

// RevenueProgress returns current/target as a percentage, clamped to 100.
// A zero or negative target yields 0 so dashboards never divide by zero.
func RevenueProgress(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := current / target * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// DailyTarget splits a station's monthly revenue target across the days
// of the month the date falls in.
func DailyTarget(station models.Station, date time.Time) float64 {
	days := time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, date.Location()).Day()
	if days == 0 {
		return 0
	}
	return station.ExpectedMonthlyRevenue / float64(days)
}

// TankPercent returns the fill level of a tank as a percentage of capacity.
func TankPercent(tank models.Tank) float64 {
	if tank.CapacityLiters <= 0 {
		return 0
	}
	return tank.CurrentLiters / tank.CapacityLiters * 100
}

// Performance statuses used by the admin revenue table
const (
	StatusNoData  = "No Data"
	StatusBelow   = "Below"
	StatusOnTrack = "On Track"
)

// RevenueRow is one station's line in the admin revenue table.
type RevenueRow struct {
	StationID      string  `json:"station_id"`
	StationName    string  `json:"station_name"`
	MorningTotal   float64 `json:"morning_total"`
	AfternoonTotal float64 `json:"afternoon_total"`
	DayTotal       float64 `json:"day_total"`
	VolumeSold     float64 `json:"volume_sold"`
	DailyTarget    float64 `json:"daily_target"`
	Progress       float64 `json:"progress"`
	Status         string  `json:"status"`
}

// StationRevenueTable builds one row per station for the given day.
// Stations with no sales on that day still get a row, zero-filled and
// tagged "No Data" - the admin table must always show every station.
func StationRevenueTable(stations []models.Station, sales []models.Sale, date time.Time) []RevenueRow {
	byStation := make(map[string][]models.Sale)
	for _, s := range TodaysSales(sales, date) {
		byStation[s.StationID] = append(byStation[s.StationID], s)
	}

	rows := make([]RevenueRow, 0, len(stations))
	for _, st := range stations {
		row := RevenueRow{
			StationID:   st.ID,
			StationName: st.Name,
			DailyTarget: DailyTarget(st, date),
			Status:      StatusNoData,
		}

		daySales, ok := byStation[st.ID]
		if ok && len(daySales) > 0 {
			row.MorningTotal = ShiftTotal(daySales, models.ShiftMorning)
			row.AfternoonTotal = ShiftTotal(daySales, models.ShiftAfternoon)
			row.DayTotal = Total(daySales)
			row.VolumeSold = VolumeTotal(daySales)
			row.Progress = RevenueProgress(row.DayTotal, row.DailyTarget)
			if row.DayTotal >= row.DailyTarget {
				row.Status = StatusOnTrack
			} else {
				row.Status = StatusBelow
			}
		}

		rows = append(rows, row)
	}
	return rows
}

// TankGauge is the per-tank readout on a station dashboard.
type TankGauge struct {
	TankID         uint    `json:"tank_id"`
	Name           string  `json:"name"`
	FuelType       string  `json:"fuel_type"`
	CapacityLiters float64 `json:"capacity_liters"`
	CurrentLiters  float64 `json:"current_liters"`
	Percent        float64 `json:"percent"`
}

// TankGauges converts raw tank rows into gauge readouts.
func TankGauges(tanks []models.Tank) []TankGauge {
	gauges := make([]TankGauge, 0, len(tanks))
	for _, t := range tanks {
		gauges = append(gauges, TankGauge{
			TankID:         t.ID,
			Name:           t.Name,
			FuelType:       t.FuelType,
			CapacityLiters: t.CapacityLiters,
			CurrentLiters:  t.CurrentLiters,
			Percent:        TankPercent(t),
		})
	}
	return gauges
}
