package viewmodel

import (
	"context"
	"sync"

	"github.com/osariemen/comicbay/internal/auth"
)

// SessionManager caches the current session. It is the root of the layer:
// every session-dependent unit reads identity from here. Until Start's
// initial retrieval completes the session reads as nil, which callers
// treat as "not yet authenticated".
type SessionManager struct {
	auth auth.Service

	mu       sync.RWMutex
	phase    Phase
	session  *auth.Session
	err      error
	notified bool

	cancel func()
	done   chan struct{}
}

func NewSessionManager(auth auth.Service) *SessionManager {
	return &SessionManager{auth: auth}
}

// Start subscribes to change notifications, then performs the one initial
// retrieval. Subscribing first means a change racing the retrieval is never
// lost; a notification that lands before the retrieval resolves wins over
// the retrieved value.
func (m *SessionManager) Start(ctx context.Context) error {
	m.mu.Lock()
	m.phase = PhaseLoading
	m.mu.Unlock()

	ch, cancel := m.auth.Subscribe()

	m.cancel = cancel
	m.done = make(chan struct{})

	go m.listen(ch)

	session, err := m.auth.Session(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.err = err
		m.phase = PhaseError
		return err
	}

	if !m.notified {
		m.session = session
	}

	m.phase = PhaseReady

	return nil
}

func (m *SessionManager) listen(ch <-chan *auth.Session) {
	defer close(m.done)

	for session := range ch {
		m.mu.Lock()
		m.session = session
		m.notified = true
		m.phase = PhaseReady
		m.mu.Unlock()
	}
}

func (m *SessionManager) Phase() Phase {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.phase
}

func (m *SessionManager) Session() *auth.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.session
}

func (m *SessionManager) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.err
}

// Close unregisters from change notifications and waits for the listener
// to drain, after which the cached session no longer changes.
func (m *SessionManager) Close() {
	if m.cancel == nil {
		return
	}

	m.cancel()
	<-m.done
}
