package viewsync

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"patient-registry-service/internal/registry/models"
	"patient-registry-service/internal/registry/services"
	"patient-registry-service/ws"
)

// View models one open table view of the registry. It subscribes to both
// channels: a registration notification makes it re-fetch the listing, a
// filter update makes it adopt the other view's search text. Local search
// edits are broadcast so every other view mirrors them.
type View struct {
	queries      *services.QueryService
	hub          *ws.Hub
	syncClient   *ws.Client
	filterClient *ws.Client
	mirror       *FilterMirror

	mu       sync.Mutex
	patients []models.Patient
	loadErr  bool
}

// NewView subscribes a view to the sync and filter channels. Callers should
// Refresh once on mount and then run Listen.
func NewView(hub *ws.Hub, queries *services.QueryService) *View {
	v := &View{
		queries:      queries,
		hub:          hub,
		syncClient:   hub.Subscribe(ws.PatientsSyncChannel),
		filterClient: hub.Subscribe(ws.PatientsFilterChannel),
	}
	v.mirror = NewFilterMirror(func(text string) {
		hub.Broadcast <- ws.BroadcastMessage{
			Topic:  ws.PatientsFilterChannel,
			Sender: v.filterClient.ID,
			Data:   ws.FilterPatientsMessage(text),
		}
	})
	return v
}

// Listen reacts to channel messages until ctx is done or the view is closed.
func (v *View) Listen(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-v.syncClient.Send:
			if !ok {
				return
			}
			var msg ws.Message
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			if msg.Type == ws.NewPatientRegistered {
				v.Refresh(ctx)
			}
		case data, ok := <-v.filterClient.Send:
			if !ok {
				return
			}
			var msg ws.Message
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			if msg.Type == ws.FilterPatients {
				v.mirror.ApplyRemote(msg.Payload)
			}
		}
	}
}

// Refresh re-fetches the listing. On failure the previous listing is kept
// and the view enters a non-fatal load-error state.
func (v *View) Refresh(ctx context.Context) {
	patients, err := v.queries.ListAll(ctx)
	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.loadErr = true
		return
	}
	v.loadErr = false
	v.patients = patients
}

// AnnounceRegistration posts the registration notification so every other
// view re-fetches. Called after a successful local registration; this view
// does not receive its own post.
func (v *View) AnnounceRegistration() {
	v.hub.Broadcast <- ws.BroadcastMessage{
		Topic:  ws.PatientsSyncChannel,
		Sender: v.syncClient.ID,
		Data:   ws.NewPatientRegisteredMessage(),
	}
}

// SetSearch applies a local search edit and broadcasts it to other views.
func (v *View) SetSearch(text string) {
	v.mirror.SetLocal(text)
}

// Search returns the current search text.
func (v *View) Search() string {
	return v.mirror.Text()
}

// LoadFailed reports whether the last refresh failed.
func (v *View) LoadFailed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loadErr
}

// Patients returns the listing filtered by the current search text: matches
// on full name, email or contact number.
func (v *View) Patients() []models.Patient {
	search := strings.ToLower(v.mirror.Text())
	v.mu.Lock()
	defer v.mu.Unlock()
	if search == "" {
		out := make([]models.Patient, len(v.patients))
		copy(out, v.patients)
		return out
	}
	var out []models.Patient
	for _, p := range v.patients {
		name := strings.ToLower(p.FirstName + " " + p.LastName)
		if strings.Contains(name, search) ||
			strings.Contains(strings.ToLower(p.Email), search) ||
			strings.Contains(p.ContactNumber, search) {
			out = append(out, p)
		}
	}
	return out
}

// Close detaches the view from both channels.
func (v *View) Close() {
	v.hub.Unsubscribe(v.syncClient)
	v.hub.Unsubscribe(v.filterClient)
}
