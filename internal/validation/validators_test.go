package validation

import (
	"testing"

	"nipco-portal/internal/models"
)

func validSale() SaleInput {
	return SaleInput{
		FuelType:       models.FuelPMS,
		Attendant:      "Mary Okon",
		Shift:          models.ShiftMorning,
		Tank:           "Tank 1",
		Dispenser:      "Dispenser 2",
		Nozzle:         "Nozzle A",
		OpeningReading: 0,
		ClosingReading: 2500,
		PricePerLiter:  830,
	}
}

func TestValidSalePasses(t *testing.T) {
	if errs := ValidateSale(validSale()); !errs.Valid() {
		t.Fatalf("expected valid sale, got %v", errs)
	}
}

func TestClosingMustExceedOpening(t *testing.T) {
	in := validSale()
	in.OpeningReading = 2500
	in.ClosingReading = 2500

	errs := ValidateSale(in)
	if errs.Valid() {
		t.Fatalf("equal readings must fail validation")
	}
	if _, ok := errs["readings"]; !ok {
		t.Fatalf("expected a readings error, got %v", errs)
	}
}

func TestSaleSectionOneOnly(t *testing.T) {
	// "Next" on section 1 must not complain about section 2 fields
	in := SaleInput{FuelType: models.FuelAGO, Attendant: "Mary Okon", Shift: models.ShiftAfternoon}
	if errs := ValidateSaleSection(in, SaleSectionShift); !errs.Valid() {
		t.Fatalf("section 1 should pass without readings, got %v", errs)
	}
	if errs := ValidateSaleSection(in, SaleSectionReadings); errs.Valid() {
		t.Fatalf("section 2 should fail with empty dispenser/nozzle")
	}
}

func TestSaleRequiredFields(t *testing.T) {
	errs := ValidateSale(SaleInput{})
	for _, field := range []string{"fuelType", "attendant", "shift", "dispenser", "nozzle", "readings", "pricePerLiter"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
}

func TestBuildSaleDerivedValues(t *testing.T) {
	sale := BuildSale("abk-001", validSale())
	if sale.VolumeSold != 2500 {
		t.Fatalf("expected volume 2500, got %v", sale.VolumeSold)
	}
	if sale.Amount != 2075000 {
		t.Fatalf("expected amount 2075000, got %v", sale.Amount)
	}
	if sale.Status != models.SaleComplete {
		t.Fatalf("expected Complete status, got %s", sale.Status)
	}
}

func TestBuildSaleDiscrepancy(t *testing.T) {
	in := validSale()
	in.MoneySubmitted = 2000000 // short of the computed 2,075,000
	sale := BuildSale("abk-001", in)
	if sale.Status != models.SaleDiscrepancy {
		t.Fatalf("short cash must flag Discrepancy, got %s", sale.Status)
	}
}

func TestValidatePurchaseOrder(t *testing.T) {
	errs := ValidatePurchaseOrder(PurchaseOrderInput{
		StationID:        "ik-004",
		FuelType:         models.FuelAGO,
		Quantity:         33000,
		UnitPrice:        790,
		ExpectedDelivery: "2026-03-20",
	})
	if !errs.Valid() {
		t.Fatalf("expected valid order, got %v", errs)
	}

	errs = ValidatePurchaseOrder(PurchaseOrderInput{FuelType: "LPG", Quantity: -1})
	for _, field := range []string{"stationId", "fuelType", "quantity", "unitPrice", "expectedDelivery"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
}

func TestValidateDriverOffload(t *testing.T) {
	errs := ValidateDriverOffload(DriverOffloadInput{})
	for _, field := range []string{"driverName", "dateTime", "volumeArrived"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
}

func TestTankOffloadFuelCompatibility(t *testing.T) {
	order := models.PurchaseOrder{FuelType: models.FuelPMS}
	tank := models.Tank{ID: 3, FuelType: models.FuelAGO, CapacityLiters: 20000, CurrentLiters: 5000}

	errs := ValidateTankOffload(TankOffloadInput{TankID: 3, VolumeOffloaded: 1000}, order, tank)
	if _, ok := errs["compatibility"]; !ok {
		t.Fatalf("mismatched fuel types must produce a compatibility error, got %v", errs)
	}
}

func TestTankOffloadCapacityCheck(t *testing.T) {
	order := models.PurchaseOrder{FuelType: models.FuelPMS}
	tank := models.Tank{ID: 1, FuelType: models.FuelPMS, CapacityLiters: 33000, CurrentLiters: 30000}

	// 3000L available, 5000L arriving: reject rather than overflow
	errs := ValidateTankOffload(TankOffloadInput{TankID: 1, VolumeOffloaded: 5000}, order, tank)
	if _, ok := errs["capacity"]; !ok {
		t.Fatalf("overfill must produce a capacity error, got %v", errs)
	}

	errs = ValidateTankOffload(TankOffloadInput{TankID: 1, VolumeOffloaded: 3000}, order, tank)
	if !errs.Valid() {
		t.Fatalf("an exact fill to capacity is allowed, got %v", errs)
	}
}

func TestValidateStaffGuarantor(t *testing.T) {
	errs := ValidateStaff(StaffInput{Name: "Mary Okon", Phone: "0803"})
	for _, field := range []string{"guarantorName", "guarantorPhone"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
}
