package database

import (
	"time"

	"nipco-portal/internal/models"
)

// SalesReportResult holds the rollup the chat assistant and admin view need
type SalesReportResult struct {
	TotalRevenue float64
	TotalCount   int64
	TotalVolume  float64
}

// GetSalesReport calculates network-wide sales within a date range.
// Pass stationID = "" for all stations.
func GetSalesReport(stationID string, start, end time.Time) (*SalesReportResult, error) {
	var result SalesReportResult

	q := DB.Model(&models.Sale{}).Where("sale_time BETWEEN ? AND ?", start, end)
	if stationID != "" {
		q = q.Where("station_id = ?", stationID)
	}

	// COALESCE ensures we get 0 instead of NULL if no sales exist
	err := q.Select("COALESCE(SUM(amount), 0)").Scan(&result.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	q = DB.Model(&models.Sale{}).Where("sale_time BETWEEN ? AND ?", start, end)
	if stationID != "" {
		q = q.Where("station_id = ?", stationID)
	}
	err = q.Select("COALESCE(SUM(volume_sold), 0)").Scan(&result.TotalVolume).Error
	if err != nil {
		return nil, err
	}

	q = DB.Model(&models.Sale{}).Where("sale_time BETWEEN ? AND ?", start, end)
	if stationID != "" {
		q = q.Where("station_id = ?", stationID)
	}
	err = q.Count(&result.TotalCount).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
