package viewmodel

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/osariemen/comicbay/internal/auth"
	"github.com/osariemen/comicbay/internal/store"
)

// ProfileResolver derives the display name for the current session,
// lazily creating the profile row the first time a session is seen
// without one. A failed resolution keeps the previously exposed name.
type ProfileResolver struct {
	store store.Store

	mu     sync.Mutex
	phase  Phase
	name   *string
	err    error
	closed bool
	guard  guard
}

func NewProfileResolver(store store.Store) *ProfileResolver {
	return &ProfileResolver{store: store}
}

// Resolve re-runs whenever the session identity changes; the owner calls
// it with the latest session, nil included.
func (r *ProfileResolver) Resolve(ctx context.Context, session *auth.Session) error {
	r.mu.Lock()

	if r.closed {
		r.mu.Unlock()
		return nil
	}

	if session == nil {
		r.name = nil
		r.err = nil
		r.phase = PhaseReady
		r.mu.Unlock()
		return nil
	}

	user := session.User
	r.phase = PhaseLoading
	id := r.guard.next()
	r.mu.Unlock()

	name, err := r.resolve(ctx, user)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || !r.guard.current(id) {
		return nil
	}

	if err != nil {
		// keep the previously good name
		r.err = err
		r.phase = PhaseError
		return err
	}

	r.name = name
	r.err = nil
	r.phase = PhaseReady

	return nil
}

func (r *ProfileResolver) resolve(ctx context.Context, user auth.User) (*string, error) {
	profile, err := r.store.GetProfile(ctx, user.Id)

	if errors.Is(err, store.ErrProfileNotFound) {
		fallback := fallbackDisplayName(user.Email)

		// upsert, not insert: a concurrent resolution attempt may have
		// created the row already
		if err := r.store.UpsertProfile(ctx, user.Id, &fallback); err != nil {
			return nil, err
		}

		return &fallback, nil
	}

	if err != nil {
		return nil, err
	}

	return profile.Display_name, nil
}

// Save persists an edited display name for the session's user. A blank
// name clears the stored one.
func (r *ProfileResolver) Save(ctx context.Context, session *auth.Session, name string) error {
	if session == nil {
		return ErrSignInRequired
	}

	trimmed := strings.TrimSpace(name)

	var next *string
	if trimmed != "" {
		next = &trimmed
	}

	if err := r.store.UpsertProfile(ctx, session.User.Id, next); err != nil {
		r.mu.Lock()
		r.err = err
		r.mu.Unlock()
		return err
	}

	r.mu.Lock()
	r.name = next
	r.err = nil
	r.mu.Unlock()

	return nil
}

func (r *ProfileResolver) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.phase
}

func (r *ProfileResolver) DisplayName() *string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.name
}

func (r *ProfileResolver) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.err
}

func (r *ProfileResolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
}
