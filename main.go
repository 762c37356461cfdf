package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"patient-registry-service/config"
	"patient-registry-service/internal/registry/controllers"
	"patient-registry-service/internal/registry/routes"
	"patient-registry-service/internal/registry/services"
	"patient-registry-service/pkg/storage/sqlitedb"
	"patient-registry-service/ws"
)

func main() {
	cfg := config.LoadConfig()

	store := sqlitedb.Open(cfg.DBPath)
	defer store.Close()

	hub := ws.NewHub()
	go hub.Run()

	cache := services.NewListingCache()
	registrationService := services.NewRegistrationService(store, cache)
	queryService := services.NewQueryService(store, cache)

	patientController := controllers.NewPatientController(registrationService, queryService, hub)

	e := echo.New()
	routes.RegisterPatientRoutes(e, patientController, hub)

	log.Printf("Patient registry listening on port %s...", cfg.Port)
	log.Fatal(e.Start(":" + cfg.Port))
}
