package handlers

import (
	"fmt"
	"net/http"
	"time"

	"nipco-portal/internal/database"
	"nipco-portal/internal/ledger"
	"nipco-portal/internal/models"
	"nipco-portal/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Ledger is the single authority for sale records, wired in main.go.
var Ledger ledger.SalesLedger

// --- POST: /api/stations/:id/sales ---
// Validation errors come back as a field-keyed map so the form can mark
// the offending inputs; the submit callback never fires on a bad payload.
func CreateSale(c *gin.Context) {
	stationID := c.Param("id")

	var station models.Station
	if err := database.DB.First(&station, "id = ?", stationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found", "station_id": stationID})
		return
	}

	var input validation.SaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errs := validation.ValidateSale(input); !errs.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	sale := validation.BuildSale(stationID, input)
	if err := Ledger.Append(c.Request.Context(), &sale); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sale"})
		return
	}

	// New-sale notification for the station feed
	note := models.Notification{
		ID:        uuid.NewString(),
		StationID: stationID,
		Type:      "sale",
		Title:     "New Sale Recorded",
		Message:   fmt.Sprintf("%s sold %.0fL of %s (₦%.2f) on the %s shift", sale.Attendant, sale.VolumeSold, sale.FuelType, sale.Amount, sale.Shift),
		Timestamp: time.Now(),
	}
	if err := database.DB.Create(&note).Error; err != nil {
		// The sale itself is committed; a lost feed entry is not fatal
		c.JSON(http.StatusCreated, sale)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// --- GET: /api/stations/:id/sales?date=YYYY-MM-DD&shift=Morning ---
// The source UI filtered in the browser; here the same predicates apply
// as query parameters.
func GetSales(c *gin.Context) {
	stationID := c.Param("id")

	var station models.Station
	if err := database.DB.First(&station, "id = ?", stationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found", "station_id": stationID})
		return
	}

	f := ledger.Filter{StationID: stationID, Shift: c.Query("shift")}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
			return
		}
		f.Date = &date
	}

	sales, err := Ledger.List(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	if sales == nil {
		sales = []models.Sale{}
	}
	c.JSON(http.StatusOK, sales)
}
