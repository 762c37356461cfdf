package ws

import "encoding/json"

// Channel names. The two streams are fixed and distinct so registration
// notifications and filter updates never cross.
const (
	PatientsSyncChannel   = "patients_sync_channel"
	PatientsFilterChannel = "patients_filter_channel"
)

// Message types carried on the channels.
const (
	NewPatientRegistered = "New_Patient_Registered"
	FilterPatients       = "filter_patients"
)

// Message is the tagged payload exchanged between views.
type Message struct {
	Type    string `json:"type"`
	Payload string `json:"payload,omitempty"`
}

// NewPatientRegisteredMessage encodes the payload-free sync notification.
func NewPatientRegisteredMessage() []byte {
	data, _ := json.Marshal(Message{Type: NewPatientRegistered})
	return data
}

// FilterPatientsMessage encodes a filter update carrying the search text.
func FilterPatientsMessage(text string) []byte {
	data, _ := json.Marshal(Message{Type: FilterPatients, Payload: text})
	return data
}

// ValidChannel reports whether name is one of the two fixed channel names.
func ValidChannel(name string) bool {
	return name == PatientsSyncChannel || name == PatientsFilterChannel
}
