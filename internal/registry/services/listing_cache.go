package services

import (
	"sync"

	"patient-registry-service/internal/registry/models"
)

// ListingCache holds the last full patient listing. A successful registration
// invalidates it, so the next ListAll re-reads from the store and is
// guaranteed to observe the new row.
type ListingCache struct {
	mu       sync.Mutex
	patients []models.Patient
	valid    bool
}

func NewListingCache() *ListingCache {
	return &ListingCache{}
}

// Get returns the cached listing and whether it is still valid.
func (c *ListingCache) Get() ([]models.Patient, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid {
		return nil, false
	}
	out := make([]models.Patient, len(c.patients))
	copy(out, c.patients)
	return out, true
}

// Set replaces the cached listing.
func (c *ListingCache) Set(patients []models.Patient) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patients = make([]models.Patient, len(patients))
	copy(c.patients, patients)
	c.valid = true
}

// Invalidate marks the listing stale.
func (c *ListingCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patients = nil
	c.valid = false
}
