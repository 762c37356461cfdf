package models

import (
	"encoding/json"
	"strings"
)

// Fixed enumerations shared by the form boundary and the store boundary.
var (
	GenderOptions = []string{"Male", "Female", "Other"}
	BloodGroups   = []string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-"}
)

// Patient is a stored registry row. MedicalConditions is always a proper list
// in memory; the store keeps it as a single JSON-encoded text column.
type Patient struct {
	ID                int64    `json:"id"`
	FirstName         string   `json:"firstName"`
	LastName          string   `json:"lastName"`
	Age               int      `json:"age"`
	Gender            string   `json:"gender"`
	ContactNumber     string   `json:"contactNumber"`
	Email             string   `json:"email,omitempty"`
	Address           string   `json:"address,omitempty"`
	BloodGroup        string   `json:"bloodGroup,omitempty"`
	MedicalConditions []string `json:"medicalConditions,omitempty"`
	CreatedAt         string   `json:"createdAt"`
}

// PatientInput is the validated registration form object. Medical conditions
// arrive separately as free text and createdAt is supplied by the caller.
type PatientInput struct {
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	Age           int    `json:"age" validate:"required,gt=0"`
	Gender        string `json:"gender" validate:"required,oneof=Male Female Other"`
	ContactNumber string `json:"contactNumber" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
	BloodGroup    string `json:"bloodGroup" validate:"omitempty,oneof=A+ A- B+ B- O+ O- AB+ AB-"`
}

// ValidGender reports whether g belongs to the gender enumeration.
func ValidGender(g string) bool {
	for _, opt := range GenderOptions {
		if g == opt {
			return true
		}
	}
	return false
}

// ValidBloodGroup reports whether bg is empty or belongs to the blood group
// enumeration.
func ValidBloodGroup(bg string) bool {
	if bg == "" {
		return true
	}
	for _, opt := range BloodGroups {
		if bg == opt {
			return true
		}
	}
	return false
}

// SplitMedicalConditions turns the free-text form field into a list: split on
// commas, trim whitespace, drop empty fragments.
func SplitMedicalConditions(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EncodeMedicalConditions serializes a condition list for the single text
// column in the patients table.
func EncodeMedicalConditions(conditions []string) (string, error) {
	if len(conditions) == 0 {
		return "", nil
	}
	data, err := json.Marshal(conditions)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseMedicalConditions decodes the stored column back into a list. An empty
// or malformed column yields no conditions rather than an error; the listing
// must not fail on one bad row.
func ParseMedicalConditions(encoded string) []string {
	if encoded == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(encoded), &out); err != nil {
		return nil
	}
	return out
}
