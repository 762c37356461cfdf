package viewsync

import "sync"

// mirrorState tracks whether the next filter application came from the
// channel and must not bounce back onto it.
type mirrorState int

const (
	stateIdle mirrorState = iota
	stateSuppressingEcho
)

// FilterMirror keeps one view's search text in step with every other view.
// Local edits are published on the filter channel; remote updates are applied
// without re-publishing. The suppression state is consumed exactly once, in
// the same critical section that applies the remote text, so a fast
// subsequent local edit can never observe a stale flag.
type FilterMirror struct {
	mu      sync.Mutex
	state   mirrorState
	text    string
	publish func(string)
}

// NewFilterMirror builds a mirror that announces local edits through publish.
func NewFilterMirror(publish func(string)) *FilterMirror {
	return &FilterMirror{publish: publish}
}

// SetLocal applies a user edit made in this view and publishes it.
func (m *FilterMirror) SetLocal(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apply(text)
}

// ApplyRemote applies a filter update received from another view. The
// would-be re-broadcast is skipped and the suppression state cleared before
// the lock is released.
func (m *FilterMirror) ApplyRemote(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = stateSuppressingEcho
	m.apply(text)
}

// Text returns the current search text.
func (m *FilterMirror) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

func (m *FilterMirror) apply(text string) {
	m.text = text
	if m.state == stateSuppressingEcho {
		m.state = stateIdle
		return
	}
	if m.publish != nil {
		m.publish(text)
	}
}
