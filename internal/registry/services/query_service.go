package services

import (
	"context"
	"log"

	"patient-registry-service/internal/registry/models"
	"patient-registry-service/pkg/storage/sqlitedb"
)

// QueryService serves the full patient listing, newest first, through the
// listing cache.
type QueryService struct {
	Store *sqlitedb.Store
	Cache *ListingCache
}

func NewQueryService(store *sqlitedb.Store, cache *ListingCache) *QueryService {
	return &QueryService{Store: store, Cache: cache}
}

// ListAll returns every patient ordered by createdAt descending. Store
// failures are logged and surface as a generic ErrQuery.
func (s *QueryService) ListAll(ctx context.Context) ([]models.Patient, error) {
	if cached, ok := s.Cache.Get(); ok {
		return cached, nil
	}
	patients, err := s.Store.ListAll(ctx)
	if err != nil {
		log.Printf("query: list failed: %v", err)
		return nil, models.ErrQuery
	}
	s.Cache.Set(patients)
	return patients, nil
}
