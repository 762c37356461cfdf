package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patient-registry-service/internal/registry/models"
	"patient-registry-service/internal/registry/services"
	"patient-registry-service/pkg/storage/sqlitedb"
	"patient-registry-service/ws"
)

func newTestController(t *testing.T) (*PatientController, *ws.Hub) {
	t.Helper()
	store := sqlitedb.Open(filepath.Join(t.TempDir(), "patients.db"))
	t.Cleanup(func() { store.Close() })
	cache := services.NewListingCache()
	hub := ws.NewHub()
	go hub.Run()
	pc := NewPatientController(
		services.NewRegistrationService(store, cache),
		services.NewQueryService(store, cache),
		hub,
	)
	return pc, hub
}

func doRequest(t *testing.T, pc *PatientController, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if method == http.MethodPost {
		req = httptest.NewRequest(method, "/api/patients", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, "/api/patients", nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if method == http.MethodPost {
		require.NoError(t, pc.RegisterPatient(c))
	} else {
		require.NoError(t, pc.ListPatients(c))
	}
	return rec
}

const janeBody = `{
	"firstName": "Jane",
	"lastName": "Doe",
	"age": 30,
	"gender": "Female",
	"contactNumber": "555-0100",
	"medicalConditions": "Diabetes, , Hypertension ,",
	"createdAt": "2024-01-01T00:00:00Z"
}`

func TestRegisterPatientThenList(t *testing.T) {
	pc, hub := newTestController(t)

	// A subscribed view should be notified of the registration.
	subscriber := hub.Subscribe(ws.PatientsSyncChannel)
	t.Cleanup(func() { hub.Unsubscribe(subscriber) })

	rec := doRequest(t, pc, http.MethodPost, janeBody)
	assert.Equal(t, http.StatusCreated, rec.Code)

	select {
	case data := <-subscriber.Send:
		assert.JSONEq(t, `{"type":"New_Patient_Registered"}`, string(data))
	case <-time.After(time.Second):
		t.Fatal("expected a sync channel notification")
	}

	rec = doRequest(t, pc, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Patient `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Jane", resp.Data[0].FirstName)
	assert.Equal(t, []string{"Diabetes", "Hypertension"}, resp.Data[0].MedicalConditions)
	assert.Equal(t, "2024-01-01T00:00:00Z", resp.Data[0].CreatedAt)
}

func TestListPatientsEmpty(t *testing.T) {
	pc, _ := newTestController(t)

	rec := doRequest(t, pc, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Patient `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}

func TestRegisterPatientValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{
			name:     "invalid_json",
			body:     `{not json`,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "gender_outside_enumeration",
			body: `{"firstName":"Jane","lastName":"Doe","age":30,"gender":"Robot",
				"contactNumber":"555-0100","createdAt":"2024-01-01T00:00:00Z"}`,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "missing_first_name",
			body: `{"lastName":"Doe","age":30,"gender":"Female",
				"contactNumber":"555-0100","createdAt":"2024-01-01T00:00:00Z"}`,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "non_positive_age",
			body: `{"firstName":"Jane","lastName":"Doe","age":0,"gender":"Female",
				"contactNumber":"555-0100","createdAt":"2024-01-01T00:00:00Z"}`,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "malformed_email",
			body: `{"firstName":"Jane","lastName":"Doe","age":30,"gender":"Female",
				"contactNumber":"555-0100","email":"not-an-email","createdAt":"2024-01-01T00:00:00Z"}`,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "invalid_blood_group",
			body: `{"firstName":"Jane","lastName":"Doe","age":30,"gender":"Female",
				"contactNumber":"555-0100","bloodGroup":"C+","createdAt":"2024-01-01T00:00:00Z"}`,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "malformed_created_at",
			body: `{"firstName":"Jane","lastName":"Doe","age":30,"gender":"Female",
				"contactNumber":"555-0100","createdAt":"yesterday"}`,
			wantCode: http.StatusUnprocessableEntity,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc, _ := newTestController(t)
			rec := doRequest(t, pc, http.MethodPost, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)

			rec = doRequest(t, pc, http.MethodGet, "")
			var resp struct {
				Data []models.Patient `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Empty(t, resp.Data, "rejected registration must not be stored")
		})
	}
}
