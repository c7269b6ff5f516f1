package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"nipco-portal/internal/database"
	"nipco-portal/internal/models"
	"nipco-portal/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// --- POST: /api/orders ---
func CreateOrder(c *gin.Context) {
	var input validation.PurchaseOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errs := validation.ValidatePurchaseOrder(input); !errs.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	var station models.Station
	if err := database.DB.First(&station, "id = ?", input.StationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found", "station_id": input.StationID})
		return
	}

	expected, err := time.ParseInLocation("2006-01-02", input.ExpectedDelivery, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"expectedDelivery": "Expected delivery must be YYYY-MM-DD"}})
		return
	}

	order := models.PurchaseOrder{
		ID:               "PO-" + strings.ToUpper(uuid.NewString()[:8]),
		StationID:        input.StationID,
		FuelType:         input.FuelType,
		Quantity:         input.Quantity,
		UnitPrice:        input.UnitPrice,
		TotalValue:       input.Quantity * input.UnitPrice,
		Status:           models.OrderPending,
		DateCreated:      time.Now(),
		ExpectedDelivery: &expected,
	}

	if err := database.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create purchase order"})
		return
	}

	note := models.Notification{
		ID:        uuid.NewString(),
		StationID: order.StationID,
		Type:      "order",
		Title:     "New Purchase Order",
		Message:   fmt.Sprintf("%s: %.0fL %s expected %s", order.ID, order.Quantity, order.FuelType, expected.Format("02 Jan")),
		Timestamp: time.Now(),
	}
	database.DB.Create(&note)

	c.JSON(http.StatusCreated, order)
}

// --- GET: /api/orders?stationId=&status= ---
func GetOrders(c *gin.Context) {
	q := database.DB.Model(&models.PurchaseOrder{}).Order("date_created desc")
	if stationID := c.Query("stationId"); stationID != "" {
		q = q.Where("station_id = ?", stationID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.PurchaseOrder
	if err := q.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	if orders == nil {
		orders = []models.PurchaseOrder{}
	}
	c.JSON(http.StatusOK, orders)
}

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- PUT: /api/orders/:id/status ---
// Transitions are manual admin actions; there is no automated lifecycle.
func UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")

	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}
	if req.Status != models.OrderPending && req.Status != models.OrderDelivered && req.Status != models.OrderCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be Pending, Delivered or Cancelled"})
		return
	}

	var order models.PurchaseOrder
	if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase order not found"})
		return
	}

	order.Status = req.Status
	if err := database.DB.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// --- POST: /api/orders/:id/driver-offload ---
// Records the tanker arriving. One delivery per order: a second attempt
// hits the unique index and is rejected.
func CreateDriverOffload(c *gin.Context) {
	id := c.Param("id")

	var order models.PurchaseOrder
	if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase order not found"})
		return
	}
	if order.Status == models.OrderCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot offload against a cancelled order"})
		return
	}

	var input validation.DriverOffloadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if errs := validation.ValidateDriverOffload(input); !errs.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	arrivedAt, err := time.Parse(time.RFC3339, input.DateTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"dateTime": "Arrival time must be RFC 3339"}})
		return
	}

	offload := models.DriverOffload{
		PurchaseOrderID: order.ID,
		DriverName:      input.DriverName,
		DateTime:        arrivedAt,
		VolumeArrived:   input.VolumeArrived,
	}
	if err := database.DB.Create(&offload).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A delivery is already recorded for this order"})
		return
	}

	c.JSON(http.StatusCreated, offload)
}

// --- POST: /api/orders/:id/tank-offload ---
// Moves the delivered volume into a tank inside one transaction: the tank
// row is locked, cross-checked against the order, and the level bumped.
// The level is also clamped at capacity as a last defense; validation
// should have rejected an overfill before we get here.
func CreateTankOffload(c *gin.Context) {
	id := c.Param("id")

	var order models.PurchaseOrder
	if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Purchase order not found"})
		return
	}

	var driverOffload models.DriverOffload
	if err := database.DB.First(&driverOffload, "purchase_order_id = ?", order.ID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No delivery recorded for this order yet"})
		return
	}

	var input validation.TankOffloadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	tx := database.DB.Begin()

	var tank models.Tank
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tank, input.TankID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Tank %d not found", input.TankID)})
		return
	}
	if tank.StationID != order.StationID {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"tankId": "Tank belongs to a different station"}})
		return
	}

	if errs := validation.ValidateTankOffload(input, order, tank); !errs.Valid() {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	tank.CurrentLiters += input.VolumeOffloaded
	if tank.CurrentLiters > tank.CapacityLiters {
		tank.CurrentLiters = tank.CapacityLiters
	}
	if err := tx.Save(&tank).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tank level"})
		return
	}

	offload := models.TankOffload{
		PurchaseOrderID: order.ID,
		TankID:          tank.ID,
		VolumeOffloaded: input.VolumeOffloaded,
		CreatedAt:       time.Now(),
	}
	if err := tx.Create(&offload).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record tank offload"})
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, gin.H{
		"offload": offload,
		"tank":    tank,
	})
}
