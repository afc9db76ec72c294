package main

import (
	"flag"
	"log"
	"os"

	"farmpanel/internal/config"
	"farmpanel/internal/models"
	"farmpanel/internal/services"
)

// seedFleet is the demo equipment inventory written by the initializer.
var seedFleet = []models.Equipment{
	{Name: "Combine Harvester 1", Type: "harvester", Status: models.StatusOperational, Location: "North field", LastService: "2024-05-12"},
	{Name: "Grain Dryer", Type: "dryer", Status: models.StatusOperational, Location: "Silo yard", LastService: "2024-03-02"},
	{Name: "Irrigation Pump A", Type: "pump", Status: models.StatusMaintenanceRequired, Location: "Well house", LastService: "2023-11-28", Notes: "Pressure drop reported"},
	{Name: "Irrigation Pump B", Type: "pump", Status: models.StatusOperational, Location: "Well house", LastService: "2024-04-19"},
	{Name: "Seed Drill", Type: "drill", Status: models.StatusOutOfService, Location: "Barn 2", LastService: "2023-09-14", Notes: "Awaiting replacement parts"},
	{Name: "Sprayer Rig", Type: "sprayer", Status: models.StatusOperational, Location: "Barn 1", LastService: "2024-06-01"},
	{Name: "Tractor 12", Type: "tractor", Status: models.StatusOperational, Location: "Barn 1", LastService: "2024-05-30"},
	{Name: "Tractor 7", Type: "tractor", Status: models.StatusMaintenanceRequired, Location: "Barn 2", LastService: "2024-01-15", Notes: "Hydraulics leak"},
}

// initdb recreates the store from scratch: any existing sqlite file is
// deleted, the schema is migrated and the default accounts plus a demo
// fleet are seeded. Run it before first server start; never at request
// time.
func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Database.Type == "sqlite" {
		if err := os.Remove(cfg.Database.SQLite.Path); err != nil && !os.IsNotExist(err) {
			log.Fatalf("Failed to remove existing database: %v", err)
		}
	}

	if err := models.InitDB(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	authService := services.NewAuthService(cfg)

	if _, err := authService.CreateUser(cfg.DefaultUser.Username, cfg.DefaultUser.Password, cfg.DefaultUser.Role); err != nil {
		log.Fatalf("Failed to create default user: %v", err)
	}

	if _, err := authService.CreateUser("farmmanager", "harvest2024", "manager"); err != nil {
		log.Fatalf("Failed to create manager user: %v", err)
	}

	for _, item := range seedFleet {
		if err := models.DB.Create(&item).Error; err != nil {
			log.Fatalf("Failed to seed equipment %q: %v", item.Name, err)
		}
	}

	log.Println("Database initialized successfully")
}
