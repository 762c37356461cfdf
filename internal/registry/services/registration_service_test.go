package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patient-registry-service/internal/registry/models"
	"patient-registry-service/pkg/storage/sqlitedb"
)

func newTestServices(t *testing.T) (*RegistrationService, *QueryService) {
	t.Helper()
	store := sqlitedb.Open(filepath.Join(t.TempDir(), "patients.db"))
	t.Cleanup(func() { store.Close() })
	cache := NewListingCache()
	return NewRegistrationService(store, cache), NewQueryService(store, cache)
}

func janeInput() models.PatientInput {
	return models.PatientInput{
		FirstName:     "Jane",
		LastName:      "Doe",
		Age:           30,
		Gender:        "Female",
		ContactNumber: "555-0100",
	}
}

func TestRegisterThenListAll(t *testing.T) {
	registration, queries := newTestServices(t)
	ctx := context.Background()

	err := registration.Register(ctx, janeInput(), "Diabetes, , Hypertension ,", "2024-01-01T00:00:00Z")
	require.NoError(t, err)

	patients, err := queries.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 1)

	got := patients[0]
	assert.NotZero(t, got.ID)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "Doe", got.LastName)
	assert.Equal(t, 30, got.Age)
	assert.Equal(t, "Female", got.Gender)
	assert.Equal(t, "555-0100", got.ContactNumber)
	assert.Equal(t, "2024-01-01T00:00:00Z", got.CreatedAt, "createdAt is caller-supplied, not store-derived")
	assert.Equal(t, []string{"Diabetes", "Hypertension"}, got.MedicalConditions)
}

func TestRegisterInvalidatesCachedListing(t *testing.T) {
	registration, queries := newTestServices(t)
	ctx := context.Background()

	require.NoError(t, registration.Register(ctx, janeInput(), "", "2024-01-01T00:00:00Z"))

	// Warm the cache.
	patients, err := queries.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 1)

	second := janeInput()
	second.FirstName = "John"
	require.NoError(t, registration.Register(ctx, second, "", "2024-01-02T00:00:00Z"))

	patients, err = queries.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 2, "a read after register must observe the new row")
	assert.Equal(t, "John", patients[0].FirstName)
}

func TestRegisterRejectsGenderOutsideEnumeration(t *testing.T) {
	registration, queries := newTestServices(t)
	ctx := context.Background()

	input := janeInput()
	input.Gender = "Robot"
	err := registration.Register(ctx, input, "", "2024-01-01T00:00:00Z")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrRegistration)

	patients, err := queries.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, patients, "rejected write must not be stored")
}

func TestRegisterGenericErrorWhenStoreUnavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	store := sqlitedb.Open(filepath.Join(blocker, "nested", "patients.db"))
	cache := NewListingCache()
	registration := NewRegistrationService(store, cache)

	err := registration.Register(context.Background(), janeInput(), "", "2024-01-01T00:00:00Z")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrRegistration)
	assert.Equal(t, models.ErrRegistration.Error(), err.Error(),
		"storage detail must not leak to the caller")
}
