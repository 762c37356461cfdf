package services

import (
	"context"
	"log"

	"patient-registry-service/internal/registry/models"
	"patient-registry-service/pkg/storage/sqlitedb"
)

// RegistrationService writes new patient records. Input is expected to have
// passed form validation already; the store enforces its constraints
// independently. Broadcasting the registration to other views is the
// caller's job, not this service's.
type RegistrationService struct {
	Store *sqlitedb.Store
	Cache *ListingCache
}

func NewRegistrationService(store *sqlitedb.Store, cache *ListingCache) *RegistrationService {
	return &RegistrationService{Store: store, Cache: cache}
}

// Register serializes the free-text medical conditions, inserts the record
// with the caller-supplied createdAt timestamp and invalidates the cached
// listing. Failures are logged here and surface as a generic ErrRegistration.
func (s *RegistrationService) Register(ctx context.Context, input models.PatientInput, medicalConditions string, createdAt string) error {
	record := models.Patient{
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Age:               input.Age,
		Gender:            input.Gender,
		ContactNumber:     input.ContactNumber,
		Email:             input.Email,
		Address:           input.Address,
		BloodGroup:        input.BloodGroup,
		MedicalConditions: models.SplitMedicalConditions(medicalConditions),
		CreatedAt:         createdAt,
	}
	if _, err := s.Store.Insert(ctx, record); err != nil {
		log.Printf("registration: insert failed: %v", err)
		return models.ErrRegistration
	}
	s.Cache.Invalidate()
	return nil
}
