package models

import (
	"time"
)

// Shift - the two fixed daily work periods used to partition sales
const (
	ShiftMorning   = "Morning"
	ShiftAfternoon = "Afternoon"
)

// Fuel types sold across the NIPCO network
const (
	FuelPMS = "PMS" // Petrol
	FuelAGO = "AGO" // Diesel
	FuelDPK = "DPK" // Kerosene
)

// Sale statuses
const (
	SaleComplete    = "Complete"
	SaleDiscrepancy = "Discrepancy"
)

// PurchaseOrder statuses (manual transitions only, no automated lifecycle)
const (
	OrderPending   = "Pending"
	OrderDelivered = "Delivered"
	OrderCancelled = "Cancelled"
)

// User - portal login (admin sees every station, managers see their own)
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	Role         string    `json:"role"` // 'admin', 'manager'
	StationID    string    `gorm:"size:20" json:"station_id"` // empty for admin
	CreatedAt    time.Time `json:"created_at"`
}

// Station - immutable reference data, seeded at boot and never mutated
type Station struct {
	ID                     string  `gorm:"primaryKey;size:20" json:"id"` // e.g. "abk-001"
	Name                   string  `json:"name"`
	Location               string  `json:"location"`
	ManagerName            string  `json:"manager_name"`
	ColorTag               string  `json:"color_tag"`
	ExpectedMonthlyRevenue float64 `json:"expected_monthly_revenue"`
}

// Tank - underground storage, mutated only by completed tank offloads
type Tank struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	StationID      string  `gorm:"size:20;index" json:"station_id"`
	Name           string  `json:"name"` // e.g. "Tank 1"
	FuelType       string  `json:"fuel_type"`
	CapacityLiters float64 `json:"capacity_liters"`
	CurrentLiters  float64 `json:"current_liters"` // invariant: <= CapacityLiters
}

// Sale - one pump reading pair entered by a manager. Append-only:
// sales are never updated or deleted after creation.
type Sale struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StationID      string    `gorm:"size:20;index" json:"station_id"`
	Attendant      string    `json:"attendant"`
	Tank           string    `json:"tank"`
	Dispenser      string    `json:"dispenser"`
	Nozzle         string    `json:"nozzle"`
	FuelType       string    `json:"fuel_type"`
	OpeningReading float64   `json:"opening_reading"`
	ClosingReading float64   `json:"closing_reading"`
	VolumeSold     float64   `json:"volume_sold"` // closing - opening
	PricePerLiter  float64   `json:"price_per_liter"`
	Amount         float64   `json:"amount"` // volume * price
	Shift          string    `json:"shift"`
	Status         string    `json:"status"` // 'Complete' or 'Discrepancy'
	SaleTime       time.Time `gorm:"index" json:"sale_time"`
}

// PurchaseOrder - head office order for fuel delivery to a station
type PurchaseOrder struct {
	ID               string     `gorm:"primaryKey;size:40" json:"id"`
	StationID        string     `gorm:"size:20;index" json:"station_id"`
	FuelType         string     `json:"fuel_type"`
	Quantity         float64    `json:"quantity"` // liters ordered
	UnitPrice        float64    `json:"unit_price"`
	TotalValue       float64    `json:"total_value"` // quantity * unit price
	Status           string     `json:"status"`
	DateCreated      time.Time  `json:"date_created"`
	ExpectedDelivery *time.Time `json:"expected_delivery"`
}

// DriverOffload - the physical delivery event against a purchase order.
// Created once per delivery.
type DriverOffload struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PurchaseOrderID string    `gorm:"size:40;uniqueIndex" json:"purchase_order_id"`
	DriverName      string    `json:"driver_name"`
	DateTime        time.Time `json:"date_time"`
	VolumeArrived   float64   `json:"volume_arrived"`
}

// TankOffload - moves a driver-confirmed volume into a specific tank.
// Requires fuel-type compatibility between the order and the tank.
type TankOffload struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PurchaseOrderID string    `gorm:"size:40;index" json:"purchase_order_id"`
	TankID          uint      `json:"tank_id"`
	VolumeOffloaded float64   `json:"volume_offloaded"`
	CreatedAt       time.Time `json:"created_at"`
}

// Notification severities produced by the tank alert classifier
const (
	SeverityNone     = "none"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Notification - generated by user actions (new sale, new PO) or by the
// tank alert poller. AlertKey is the stable dedup id for tank alerts
// ("stationId-tankName-severity"); empty for user-action notifications.
type Notification struct {
	ID        string    `gorm:"primaryKey;size:40" json:"id"`
	StationID string    `gorm:"size:20;index" json:"station_id"`
	Type      string    `json:"type"` // 'sale', 'order', 'tank_alert'
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity,omitempty"`
	AlertKey  string    `gorm:"size:120;index" json:"-"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
}

// Guarantor - nested HR detail embedded in staff and driver records
type Guarantor struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Relationship string `json:"relationship"`
}

// StaffMember - presentational roster record, create/edit in place
type StaffMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StationID string    `gorm:"size:20;index" json:"station_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Guarantor Guarantor `gorm:"embedded;embeddedPrefix:guarantor_" json:"guarantor"`
	CreatedAt time.Time `json:"created_at"`
}

// Driver - tanker driver roster record
type Driver struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"license_number"`
	TruckPlate    string    `json:"truck_plate"`
	Guarantor     Guarantor `gorm:"embedded;embeddedPrefix:guarantor_" json:"guarantor"`
	CreatedAt     time.Time `json:"created_at"`
}

// ChatSession - persisted assistant conversation. Messages are stored as a
// serialized JSON array ({id, text, isUser, timestamp, context?, error?})
// so the frontend layout survives round trips unchanged.
type ChatSession struct {
	ID          string    `gorm:"primaryKey;size:40" json:"id"`
	Title       string    `json:"title"`
	Messages    string    `gorm:"type:longtext" json:"messages"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}
