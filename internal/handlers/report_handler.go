package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"nipco-portal/internal/analytics"
	"nipco-portal/internal/cache"
	"nipco-portal/internal/database"
	"nipco-portal/internal/ledger"
	"nipco-portal/internal/models"

	"github.com/gin-gonic/gin"
)

// ReportCache is wired in main.go; defaults to a noop when Redis is off.
var ReportCache cache.ReportCache = cache.NoopCache{}

const revenueTableTTL = 30 * time.Second

// --- GET: /api/reports/revenue?date=YYYY-MM-DD ---
// One row per station, every station present even with zero sales.
// Cached briefly because the admin view polls it.
func GetRevenueTable(c *gin.Context) {
	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	cacheKey := "revenue_table:" + date.Format("2006-01-02")
	if rows, hit, err := ReportCache.Get(c.Request.Context(), cacheKey); err == nil && hit {
		c.JSON(http.StatusOK, gin.H{"date": date.Format("2006-01-02"), "rows": rows, "cached": true})
		return
	}

	rows, err := buildRevenueTable(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build revenue table"})
		return
	}

	if err := ReportCache.Set(c.Request.Context(), cacheKey, rows, revenueTableTTL); err != nil {
		log.Println("⚠️ Report cache write failed:", err)
	}

	c.JSON(http.StatusOK, gin.H{"date": date.Format("2006-01-02"), "rows": rows})
}

func buildRevenueTable(ctx context.Context, date time.Time) ([]analytics.RevenueRow, error) {
	var stations []models.Station
	if err := database.DB.Order("id").Find(&stations).Error; err != nil {
		return nil, err
	}

	sales, err := Ledger.List(ctx, ledger.Filter{Date: &date})
	if err != nil {
		return nil, err
	}

	return analytics.StationRevenueTable(stations, sales, date), nil
}

// --- GET: /api/reports/summary ---
// Network-wide rollup for the admin header cards.
func GetNetworkSummary(c *gin.Context) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := database.GetSalesReport("", start, start.AddDate(0, 0, 1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate today's sales"})
		return
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	month, err := database.GetSalesReport("", monthStart, start.AddDate(0, 0, 1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate monthly sales"})
		return
	}

	var stationCount int64
	database.DB.Model(&models.Station{}).Count(&stationCount)

	var pendingOrders int64
	database.DB.Model(&models.PurchaseOrder{}).Where("status = ?", models.OrderPending).Count(&pendingOrders)

	var expectedTotal float64
	database.DB.Model(&models.Station{}).Select("COALESCE(SUM(expected_monthly_revenue), 0)").Scan(&expectedTotal)

	c.JSON(http.StatusOK, gin.H{
		"todays_revenue":   today.TotalRevenue,
		"todays_volume":    today.TotalVolume,
		"todays_sales":     today.TotalCount,
		"month_revenue":    month.TotalRevenue,
		"month_progress":   analytics.RevenueProgress(month.TotalRevenue, expectedTotal),
		"expected_monthly": expectedTotal,
		"stations":         stationCount,
		"pending_orders":   pendingOrders,
	})
}
