package database

import (
	"log"
	"os"

	"nipco-portal/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// SeedCatalog loads the fixed station registry and its tank layout.
// Stations are reference data: seeded once on an empty table, never
// mutated at runtime.
func SeedCatalog() {
	var count int64
	DB.Model(&models.Station{}).Count(&count)
	if count > 0 {
		return
	}

	stations := []models.Station{
		{ID: "abk-001", Name: "NIPCO Abak Road", Location: "Abak Road, Uyo", ManagerName: "Emmanuel Udo", ColorTag: "blue", ExpectedMonthlyRevenue: 45000000},
		{ID: "uyo-1-002", Name: "NIPCO Uyo 1", Location: "Ikot Ekpene Road, Uyo", ManagerName: "Grace Akpan", ColorTag: "green", ExpectedMonthlyRevenue: 52000000},
		{ID: "ik-004", Name: "NIPCO Ikot Ekpene", Location: "Aba Road, Ikot Ekpene", ManagerName: "Samuel Etuk", ColorTag: "purple", ExpectedMonthlyRevenue: 38000000},
		{ID: "uyo-2-003", Name: "NIPCO Uyo 2", Location: "Oron Road, Uyo", ManagerName: "Blessing Essien", ColorTag: "orange", ExpectedMonthlyRevenue: 41000000},
		{ID: "eket-005", Name: "NIPCO Eket", Location: "Marina Road, Eket", ManagerName: "Victor Bassey", ColorTag: "red", ExpectedMonthlyRevenue: 35000000},
	}
	if err := DB.Create(&stations).Error; err != nil {
		log.Println("⚠️ Warning: failed to seed stations:", err)
		return
	}

	var tanks []models.Tank
	for _, s := range stations {
		tanks = append(tanks,
			models.Tank{StationID: s.ID, Name: "Tank 1", FuelType: models.FuelPMS, CapacityLiters: 33000, CurrentLiters: 24000},
			models.Tank{StationID: s.ID, Name: "Tank 2", FuelType: models.FuelPMS, CapacityLiters: 33000, CurrentLiters: 18500},
			models.Tank{StationID: s.ID, Name: "Tank 3", FuelType: models.FuelAGO, CapacityLiters: 20000, CurrentLiters: 9000},
			models.Tank{StationID: s.ID, Name: "Tank 4", FuelType: models.FuelDPK, CapacityLiters: 10000, CurrentLiters: 4200},
		)
	}
	if err := DB.Create(&tanks).Error; err != nil {
		log.Println("⚠️ Warning: failed to seed tanks:", err)
		return
	}

	log.Printf("✅ Seeded %d stations with %d tanks", len(stations), len(tanks))
}

// SeedAdmin creates the first admin login from .env when no users exist.
func SeedAdmin() {
	var count int64
	DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Println("🔒 No ADMIN_USERNAME/ADMIN_PASSWORD in .env, skipping admin seed.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("⚠️ Warning: failed to hash admin password:", err)
		return
	}

	admin := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         "admin",
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Println("⚠️ Warning: failed to seed admin user:", err)
		return
	}
	log.Println("✅ Seeded initial admin user:", username)
}
