// Package validation holds the pure field checks that gate every write.
// Each validator returns a field-keyed error map; an empty map means the
// submission may proceed.
package validation

import (
	"strings"

	"nipco-portal/internal/models"
)

// Errors maps field names to a human-readable problem with that field.
type Errors map[string]string

// Valid reports whether the map carries no errors.
func (e Errors) Valid() bool { return len(e) == 0 }

// SaleInput is everything the sales-entry form submits.
type SaleInput struct {
	FuelType       string  `json:"fuel_type"`
	Attendant      string  `json:"attendant"`
	Shift          string  `json:"shift"`
	Tank           string  `json:"tank"`
	Dispenser      string  `json:"dispenser"`
	Nozzle         string  `json:"nozzle"`
	OpeningReading float64 `json:"opening_reading"`
	ClosingReading float64 `json:"closing_reading"`
	PricePerLiter  float64 `json:"price_per_liter"`
	MoneySubmitted float64 `json:"money_submitted"`
}

// Sale form sections for the multi-step entry flow. "Next" validates only
// the active section; final submission validates both.
const (
	SaleSectionShift    = 1 // fuel type, attendant, shift
	SaleSectionReadings = 2 // dispenser, nozzle, readings, price
)

func validFuelType(ft string) bool {
	return ft == models.FuelPMS || ft == models.FuelAGO || ft == models.FuelDPK
}

func validShift(s string) bool {
	return s == models.ShiftMorning || s == models.ShiftAfternoon
}

// ValidateSaleSection checks only the fields belonging to one form section.
func ValidateSaleSection(in SaleInput, section int) Errors {
	errs := Errors{}
	switch section {
	case SaleSectionShift:
		if strings.TrimSpace(in.FuelType) == "" {
			errs["fuelType"] = "Fuel type is required"
		} else if !validFuelType(in.FuelType) {
			errs["fuelType"] = "Fuel type must be PMS, AGO or DPK"
		}
		if strings.TrimSpace(in.Attendant) == "" {
			errs["attendant"] = "Staff member is required"
		}
		if strings.TrimSpace(in.Shift) == "" {
			errs["shift"] = "Shift is required"
		} else if !validShift(in.Shift) {
			errs["shift"] = "Shift must be Morning or Afternoon"
		}
	case SaleSectionReadings:
		if strings.TrimSpace(in.Dispenser) == "" {
			errs["dispenser"] = "Dispenser is required"
		}
		if strings.TrimSpace(in.Nozzle) == "" {
			errs["nozzle"] = "Nozzle is required"
		}
		if in.ClosingReading <= in.OpeningReading {
			errs["readings"] = "Closing reading must be greater than opening reading"
		}
		if in.PricePerLiter <= 0 {
			errs["pricePerLiter"] = "Price per liter must be greater than zero"
		}
	}
	return errs
}

// ValidateSale runs every section, for final submission.
func ValidateSale(in SaleInput) Errors {
	errs := ValidateSaleSection(in, SaleSectionShift)
	for k, v := range ValidateSaleSection(in, SaleSectionReadings) {
		errs[k] = v
	}
	return errs
}

// BuildSale derives the computed fields and constructs the record.
// Volume and amount are never accepted from the client. A submitted cash
// figure that disagrees with the computed amount flags the sale for
// reconciliation.
func BuildSale(stationID string, in SaleInput) models.Sale {
	volume := in.ClosingReading - in.OpeningReading
	amount := volume * in.PricePerLiter

	status := models.SaleComplete
	if in.MoneySubmitted != 0 && in.MoneySubmitted != amount {
		status = models.SaleDiscrepancy
	}

	return models.Sale{
		StationID:      stationID,
		Attendant:      strings.TrimSpace(in.Attendant),
		Tank:           strings.TrimSpace(in.Tank),
		Dispenser:      strings.TrimSpace(in.Dispenser),
		Nozzle:         strings.TrimSpace(in.Nozzle),
		FuelType:       in.FuelType,
		OpeningReading: in.OpeningReading,
		ClosingReading: in.ClosingReading,
		VolumeSold:     volume,
		PricePerLiter:  in.PricePerLiter,
		Amount:         amount,
		Shift:          in.Shift,
		Status:         status,
	}
}

// PurchaseOrderInput is the admin order dialog payload.
type PurchaseOrderInput struct {
	StationID        string  `json:"station_id"`
	FuelType         string  `json:"fuel_type"`
	Quantity         float64 `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	ExpectedDelivery string  `json:"expected_delivery"` // YYYY-MM-DD
}

// ValidatePurchaseOrder checks the order dialog fields.
func ValidatePurchaseOrder(in PurchaseOrderInput) Errors {
	errs := Errors{}
	if strings.TrimSpace(in.StationID) == "" {
		errs["stationId"] = "Station is required"
	}
	if strings.TrimSpace(in.FuelType) == "" {
		errs["fuelType"] = "Fuel type is required"
	} else if !validFuelType(in.FuelType) {
		errs["fuelType"] = "Fuel type must be PMS, AGO or DPK"
	}
	if in.Quantity <= 0 {
		errs["quantity"] = "Quantity must be greater than zero"
	}
	if in.UnitPrice <= 0 {
		errs["unitPrice"] = "Unit price must be greater than zero"
	}
	if strings.TrimSpace(in.ExpectedDelivery) == "" {
		errs["expectedDelivery"] = "Expected delivery date is required"
	}
	return errs
}

// DriverOffloadInput records the tanker arriving at the station.
type DriverOffloadInput struct {
	DriverName    string  `json:"driver_name"`
	DateTime      string  `json:"date_time"` // RFC 3339
	VolumeArrived float64 `json:"volume_arrived"`
}

// ValidateDriverOffload checks the delivery confirmation fields.
func ValidateDriverOffload(in DriverOffloadInput) Errors {
	errs := Errors{}
	if strings.TrimSpace(in.DriverName) == "" {
		errs["driverName"] = "Driver name is required"
	}
	if strings.TrimSpace(in.DateTime) == "" {
		errs["dateTime"] = "Arrival date and time is required"
	}
	if in.VolumeArrived <= 0 {
		errs["volumeArrived"] = "Arrived volume must be greater than zero"
	}
	return errs
}

// TankOffloadInput moves a confirmed delivery into one tank.
type TankOffloadInput struct {
	TankID          uint    `json:"tank_id"`
	VolumeOffloaded float64 `json:"volume_offloaded"`
}

// ValidateTankOffload runs the cross-entity checks: the tank must take the
// same fuel as the order, and the volume must fit in the remaining
// capacity. Overfilling a tank is a validation error, not a silent clamp.
func ValidateTankOffload(in TankOffloadInput, order models.PurchaseOrder, tank models.Tank) Errors {
	errs := Errors{}
	if in.TankID == 0 {
		errs["tankId"] = "Tank is required"
	}
	if in.VolumeOffloaded <= 0 {
		errs["volumeOffloaded"] = "Offload volume must be greater than zero"
	}
	if tank.FuelType != order.FuelType {
		errs["compatibility"] = "Tank fuel type does not match the purchase order"
	}
	available := tank.CapacityLiters - tank.CurrentLiters
	if in.VolumeOffloaded > available {
		errs["capacity"] = "Offload volume exceeds the tank's available capacity"
	}
	return errs
}

// StaffInput covers the staff and driver roster forms.
type StaffInput struct {
	Name      string           `json:"name"`
	Role      string           `json:"role"`
	Phone     string           `json:"phone"`
	Email     string           `json:"email"`
	Guarantor models.Guarantor `json:"guarantor"`
}

// ValidateStaff checks the roster form's required fields.
func ValidateStaff(in StaffInput) Errors {
	errs := Errors{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(in.Phone) == "" {
		errs["phone"] = "Phone number is required"
	}
	if strings.TrimSpace(in.Guarantor.Name) == "" {
		errs["guarantorName"] = "Guarantor name is required"
	}
	if strings.TrimSpace(in.Guarantor.Phone) == "" {
		errs["guarantorPhone"] = "Guarantor phone is required"
	}
	return errs
}
