package controllers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"patient-registry-service/internal/registry/models"
	"patient-registry-service/internal/registry/services"
	"patient-registry-service/ws"
)

// RegisterPatientRequest carries the validated form fields plus the free-text
// medical conditions and the caller-supplied registration timestamp.
type RegisterPatientRequest struct {
	models.PatientInput
	MedicalConditions string `json:"medicalConditions"`
	CreatedAt         string `json:"createdAt" validate:"required"`
}

type PatientController struct {
	Registration *services.RegistrationService
	Queries      *services.QueryService
	Hub          *ws.Hub
	Validate     *validator.Validate
}

func NewPatientController(registration *services.RegistrationService, queries *services.QueryService, hub *ws.Hub) *PatientController {
	return &PatientController{
		Registration: registration,
		Queries:      queries,
		Hub:          hub,
		Validate:     validator.New(),
	}
}

// RegisterPatient registers a new patient and notifies every connected view
// on the sync channel.
func (pc *PatientController) RegisterPatient(c echo.Context) error {
	var req RegisterPatientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload",
			"data":    nil,
		})
	}
	if err := pc.Validate.Struct(req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"status":  http.StatusUnprocessableEntity,
			"message": "Validation failed: " + err.Error(),
			"data":    nil,
		})
	}
	if _, err := time.Parse(time.RFC3339, req.CreatedAt); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"status":  http.StatusUnprocessableEntity,
			"message": "createdAt must be an ISO-8601 timestamp",
			"data":    nil,
		})
	}

	if err := pc.Registration.Register(c.Request().Context(), req.PatientInput, req.MedicalConditions, req.CreatedAt); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": err.Error(),
			"data":    nil,
		})
	}

	// Write is durable and the cache invalidated before the notification goes
	// out, so a view that re-fetches on receipt sees the new row.
	pc.Hub.Broadcast <- ws.BroadcastMessage{
		Topic:  ws.PatientsSyncChannel,
		Sender: uuid.Nil,
		Data:   ws.NewPatientRegisteredMessage(),
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"status":  http.StatusCreated,
		"message": "Patient registered successfully",
		"data":    nil,
	})
}

// ListPatients returns every patient, newest first.
func (pc *PatientController) ListPatients(c echo.Context) error {
	patients, err := pc.Queries.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "OK",
		"data":    patients,
	})
}
