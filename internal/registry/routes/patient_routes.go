package routes

import (
	"github.com/labstack/echo/v4"

	"patient-registry-service/internal/registry/controllers"
	"patient-registry-service/ws"
)

// RegisterPatientRoutes wires the registry endpoints and the websocket
// channel attachment point.
func RegisterPatientRoutes(e *echo.Echo, pc *controllers.PatientController, hub *ws.Hub) {
	e.POST("/api/patients", pc.RegisterPatient)
	e.GET("/api/patients", pc.ListPatients)
	e.GET("/ws/:channel", ws.ServeWS(hub))
}
