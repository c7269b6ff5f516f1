package handlers

import (
	"net/http"
	"time"

	"nipco-portal/internal/analytics"
	"nipco-portal/internal/database"
	"nipco-portal/internal/ledger"
	"nipco-portal/internal/models"

	"github.com/gin-gonic/gin"
)

// --- GET: /api/stations ---
func GetStations(c *gin.Context) {
	var stations []models.Station
	if err := database.DB.Order("id").Find(&stations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stations"})
		return
	}
	c.JSON(http.StatusOK, stations)
}

// --- GET: /api/stations/:id ---
// Unknown ids get an explicit not-found payload, never a crash.
func GetStation(c *gin.Context) {
	id := c.Param("id")

	var station models.Station
	if err := database.DB.First(&station, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found", "station_id": id})
		return
	}

	var tanks []models.Tank
	if err := database.DB.Where("station_id = ?", id).Order("name").Find(&tanks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tanks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"station": station,
		"tanks":   analytics.TankGauges(tanks),
	})
}

// --- GET: /api/stations/:id/tanks ---
func GetStationTanks(c *gin.Context) {
	id := c.Param("id")

	var station models.Station
	if err := database.DB.First(&station, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found", "station_id": id})
		return
	}

	var tanks []models.Tank
	if err := database.DB.Where("station_id = ?", id).Order("name").Find(&tanks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tanks"})
		return
	}
	c.JSON(http.StatusOK, analytics.TankGauges(tanks))
}

// --- GET: /api/stations/:id/dashboard ---
// The station landing card: today's revenue, shift split, progress against
// the daily slice of the monthly target, and the tank gauges.
func GetStationDashboard(c *gin.Context) {
	id := c.Param("id")

	var station models.Station
	if err := database.DB.First(&station, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found", "station_id": id})
		return
	}

	now := time.Now()
	sales, err := Ledger.List(c.Request.Context(), ledger.Filter{StationID: id, Date: &now})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	var tanks []models.Tank
	if err := database.DB.Where("station_id = ?", id).Order("name").Find(&tanks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tanks"})
		return
	}

	dayTotal := analytics.Total(sales)
	target := analytics.DailyTarget(station, now)

	c.JSON(http.StatusOK, gin.H{
		"station":         station,
		"date":            now.Format("2006-01-02"),
		"todays_revenue":  dayTotal,
		"morning_total":   analytics.ShiftTotal(sales, models.ShiftMorning),
		"afternoon_total": analytics.ShiftTotal(sales, models.ShiftAfternoon),
		"volume_sold":     analytics.VolumeTotal(sales),
		"daily_target":    target,
		"progress":        analytics.RevenueProgress(dayTotal, target),
		"tanks":           analytics.TankGauges(tanks),
		"sales_count":     len(sales),
	})
}
