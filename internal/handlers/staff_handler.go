package handlers

import (
	"net/http"
	"strconv"

	"nipco-portal/internal/database"
	"nipco-portal/internal/models"
	"nipco-portal/internal/validation"

	"github.com/gin-gonic/gin"
)

// Staff and driver rosters are presentational records: list, create and
// edit in place. No lifecycle beyond that.

// --- GET: /api/stations/:id/staff ---
func GetStaff(c *gin.Context) {
	stationID := c.Param("id")

	var staff []models.StaffMember
	if err := database.DB.Where("station_id = ?", stationID).Order("name").Find(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch staff"})
		return
	}
	if staff == nil {
		staff = []models.StaffMember{}
	}
	c.JSON(http.StatusOK, staff)
}

// --- POST: /api/stations/:id/staff ---
func CreateStaff(c *gin.Context) {
	stationID := c.Param("id")

	var station models.Station
	if err := database.DB.First(&station, "id = ?", stationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Station not found", "station_id": stationID})
		return
	}

	var input validation.StaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if errs := validation.ValidateStaff(input); !errs.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	member := models.StaffMember{
		StationID: stationID,
		Name:      input.Name,
		Role:      input.Role,
		Phone:     input.Phone,
		Email:     input.Email,
		Guarantor: input.Guarantor,
	}
	if err := database.DB.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create staff member"})
		return
	}
	c.JSON(http.StatusCreated, member)
}

// --- PUT: /api/staff/:staffId ---
func UpdateStaff(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("staffId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff id"})
		return
	}

	var member models.StaffMember
	if err := database.DB.First(&member, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}

	var input validation.StaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if errs := validation.ValidateStaff(input); !errs.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	member.Name = input.Name
	member.Role = input.Role
	member.Phone = input.Phone
	member.Email = input.Email
	member.Guarantor = input.Guarantor

	if err := database.DB.Save(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update staff member"})
		return
	}
	c.JSON(http.StatusOK, member)
}

// --- GET: /api/drivers ---
func GetDrivers(c *gin.Context) {
	var drivers []models.Driver
	if err := database.DB.Order("name").Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch drivers"})
		return
	}
	if drivers == nil {
		drivers = []models.Driver{}
	}
	c.JSON(http.StatusOK, drivers)
}

type DriverInput struct {
	Name          string           `json:"name" binding:"required"`
	Phone         string           `json:"phone" binding:"required"`
	LicenseNumber string           `json:"license_number"`
	TruckPlate    string           `json:"truck_plate"`
	Guarantor     models.Guarantor `json:"guarantor"`
}

// --- POST: /api/drivers ---
func CreateDriver(c *gin.Context) {
	var input DriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and phone are required"})
		return
	}

	driver := models.Driver{
		Name:          input.Name,
		Phone:         input.Phone,
		LicenseNumber: input.LicenseNumber,
		TruckPlate:    input.TruckPlate,
		Guarantor:     input.Guarantor,
	}
	if err := database.DB.Create(&driver).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create driver"})
		return
	}
	c.JSON(http.StatusCreated, driver)
}

// --- PUT: /api/drivers/:driverId ---
func UpdateDriver(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("driverId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver id"})
		return
	}

	var driver models.Driver
	if err := database.DB.First(&driver, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		return
	}

	var input DriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and phone are required"})
		return
	}

	driver.Name = input.Name
	driver.Phone = input.Phone
	driver.LicenseNumber = input.LicenseNumber
	driver.TruckPlate = input.TruckPlate
	driver.Guarantor = input.Guarantor

	if err := database.DB.Save(&driver).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver"})
		return
	}
	c.JSON(http.StatusOK, driver)
}
