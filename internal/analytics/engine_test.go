package analytics

import (
	"testing"
	"time"

	"nipco-portal/internal/models"
)

func day(hour int) time.Time {
	return time.Date(2026, 3, 14, hour, 0, 0, 0, time.Local)
}

func sampleSales() []models.Sale {
	return []models.Sale{
		{StationID: "abk-001", Amount: 2075000, VolumeSold: 2500, Shift: models.ShiftMorning, SaleTime: day(9)},
		{StationID: "abk-001", Amount: 830000, VolumeSold: 1000, Shift: models.ShiftAfternoon, SaleTime: day(15)},
		{StationID: "ik-004", Amount: 415000, VolumeSold: 500, Shift: models.ShiftMorning, SaleTime: day(10)},
		// Previous day - must not count toward today's totals
		{StationID: "abk-001", Amount: 999999, VolumeSold: 1200, Shift: models.ShiftMorning, SaleTime: day(9).AddDate(0, 0, -1)},
	}
}

func TestTodaysSalesFiltersByCalendarDay(t *testing.T) {
	got := TodaysSales(sampleSales(), day(12))
	if len(got) != 3 {
		t.Fatalf("expected 3 sales on the reference day, got %d", len(got))
	}
}

func TestShiftTotalsSumToDayTotal(t *testing.T) {
	today := TodaysSales(sampleSales(), day(12))
	morning := ShiftTotal(today, models.ShiftMorning)
	afternoon := ShiftTotal(today, models.ShiftAfternoon)
	if morning+afternoon != Total(today) {
		t.Fatalf("morning %v + afternoon %v != total %v", morning, afternoon, Total(today))
	}
	if morning != 2490000 {
		t.Fatalf("expected morning total 2490000, got %v", morning)
	}
}

func TestShiftTotalUnknownShiftIsZero(t *testing.T) {
	if got := ShiftTotal(sampleSales(), "Night"); got != 0 {
		t.Fatalf("unknown shift should sum to 0, got %v", got)
	}
}

func TestEmptySaleListYieldsZeros(t *testing.T) {
	if got := Total(nil); got != 0 {
		t.Fatalf("empty total should be 0, got %v", got)
	}
	if got := ShiftTotal(nil, models.ShiftMorning); got != 0 {
		t.Fatalf("empty shift total should be 0, got %v", got)
	}
	if got := TodaysSales(nil, day(12)); len(got) != 0 {
		t.Fatalf("empty list should filter to empty, got %d", len(got))
	}
}

func TestRevenueProgressGuardsZeroTarget(t *testing.T) {
	if got := RevenueProgress(5000, 0); got != 0 {
		t.Fatalf("progress against zero target should be 0, got %v", got)
	}
	if got := RevenueProgress(5000, -10); got != 0 {
		t.Fatalf("progress against negative target should be 0, got %v", got)
	}
}

func TestRevenueProgressClampsAt100(t *testing.T) {
	if got := RevenueProgress(150, 100); got != 100 {
		t.Fatalf("expected clamp at 100, got %v", got)
	}
	if got := RevenueProgress(50, 100); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
}

func TestTankPercent(t *testing.T) {
	tank := models.Tank{CapacityLiters: 10000, CurrentLiters: 1800}
	if got := TankPercent(tank); got != 18 {
		t.Fatalf("expected 18%%, got %v", got)
	}
	empty := models.Tank{CapacityLiters: 0, CurrentLiters: 0}
	if got := TankPercent(empty); got != 0 {
		t.Fatalf("zero-capacity tank should read 0%%, got %v", got)
	}
}

func TestStationRevenueTablePlaceholderRow(t *testing.T) {
	stations := []models.Station{
		{ID: "abk-001", Name: "NIPCO Abak Road", ExpectedMonthlyRevenue: 45000000},
		{ID: "eket-005", Name: "NIPCO Eket", ExpectedMonthlyRevenue: 35000000},
	}

	rows := StationRevenueTable(stations, sampleSales(), day(12))
	if len(rows) != 2 {
		t.Fatalf("expected a row per station, got %d", len(rows))
	}

	// eket-005 has no sales: it must still appear, zero-filled and tagged
	var eket RevenueRow
	for _, r := range rows {
		if r.StationID == "eket-005" {
			eket = r
		}
	}
	if eket.Status != StatusNoData {
		t.Fatalf("expected No Data status for station without sales, got %q", eket.Status)
	}
	if eket.DayTotal != 0 || eket.Progress != 0 {
		t.Fatalf("placeholder row must be zero-filled, got total=%v progress=%v", eket.DayTotal, eket.Progress)
	}
	if eket.DailyTarget == 0 {
		t.Fatalf("placeholder row still carries the daily target")
	}
}

func TestStationRevenueTableBelowStatus(t *testing.T) {
	stations := []models.Station{{ID: "ik-004", Name: "NIPCO Ikot Ekpene", ExpectedMonthlyRevenue: 38000000}}
	rows := StationRevenueTable(stations, sampleSales(), day(12))
	if rows[0].Status != StatusBelow {
		t.Fatalf("415000 against a ~1.2M daily target should be Below, got %q", rows[0].Status)
	}
	if rows[0].DayTotal != 415000 {
		t.Fatalf("expected day total 415000, got %v", rows[0].DayTotal)
	}
}

func TestDailyTargetSplitsByDaysInMonth(t *testing.T) {
	st := models.Station{ExpectedMonthlyRevenue: 31000000}
	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.Local)
	if got := DailyTarget(st, jan); got != 1000000 {
		t.Fatalf("expected 1M/day for a 31-day month, got %v", got)
	}
}

func TestNegativeVolumeDoesNotPanic(t *testing.T) {
	// Upstream validation rejects these, but a slipped-through row must
	// still sum arithmetically rather than crash.
	sales := []models.Sale{
		{Amount: -100, VolumeSold: -5, Shift: models.ShiftMorning, SaleTime: day(9)},
		{Amount: 300, VolumeSold: 10, Shift: models.ShiftMorning, SaleTime: day(9)},
	}
	if got := ShiftTotal(sales, models.ShiftMorning); got != 200 {
		t.Fatalf("expected mathematically correct sum 200, got %v", got)
	}
}

// Scenario from the Abak Road station: 2500L PMS at 830/L
func TestSingleSaleScenario(t *testing.T) {
	sale := models.Sale{
		StationID:      "abk-001",
		FuelType:       models.FuelPMS,
		OpeningReading: 0,
		ClosingReading: 2500,
		VolumeSold:     2500,
		PricePerLiter:  830,
		Amount:         2075000,
		Shift:          models.ShiftMorning,
		Status:         models.SaleComplete,
		SaleTime:       day(8),
	}
	if got := ShiftTotal([]models.Sale{sale}, models.ShiftMorning); got != 2075000 {
		t.Fatalf("expected the sale to contribute exactly 2075000, got %v", got)
	}
}
