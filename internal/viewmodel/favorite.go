package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/osariemen/comicbay/internal/store"
)

type membership int

const (
	membershipUnknown membership = iota
	membershipFavorited
	membershipNot
)

// FavoriteToggle tracks whether the current user has favorited one comic.
// Membership is fetched once and trusted until the next full Load; a
// concurrent change from another session is only picked up then.
type FavoriteToggle struct {
	store store.Store

	mu         sync.Mutex
	phase      Phase
	comicId    uuid.UUID
	userId     *uuid.UUID
	state      membership
	favoriteId int64
	busy       bool
	err        error
	closed     bool
	guard      guard
}

func NewFavoriteToggle(store store.Store) *FavoriteToggle {
	return &FavoriteToggle{store: store}
}

// Load resolves membership for (comicId, userId). A nil userId disables
// the feature: membership resolves to "not favorited" and Toggle is a
// no-op.
func (t *FavoriteToggle) Load(ctx context.Context, comicId uuid.UUID, userId *uuid.UUID) error {
	t.mu.Lock()

	if t.closed {
		t.mu.Unlock()
		return nil
	}

	t.comicId = comicId
	t.userId = userId
	t.state = membershipUnknown
	t.favoriteId = 0
	t.phase = PhaseLoading
	id := t.guard.next()

	if userId == nil {
		t.state = membershipNot
		t.err = nil
		t.phase = PhaseReady
		t.mu.Unlock()
		return nil
	}

	t.mu.Unlock()

	favorite, err := t.store.GetFavorite(ctx, comicId, *userId)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || !t.guard.current(id) {
		return nil
	}

	if errors.Is(err, store.ErrFavoriteNotFound) {
		t.state = membershipNot
		t.err = nil
		t.phase = PhaseReady
		return nil
	}

	if err != nil {
		t.err = err
		t.phase = PhaseError
		return err
	}

	t.state = membershipFavorited
	t.favoriteId = favorite.Id
	t.err = nil
	t.phase = PhaseReady

	return nil
}

// Toggle flips membership based on the cached state: delete by row id when
// favorited, insert and capture the new row id when not. It rejects
// re-entry while a previous toggle is in flight and does nothing until
// membership has resolved.
func (t *FavoriteToggle) Toggle(ctx context.Context) error {
	t.mu.Lock()

	if t.closed || t.userId == nil || t.state == membershipUnknown {
		t.mu.Unlock()
		return nil
	}

	if t.busy {
		t.mu.Unlock()
		return ErrBusy
	}

	t.busy = true
	t.err = nil
	state := t.state
	favoriteId := t.favoriteId
	comicId := t.comicId
	userId := *t.userId
	t.mu.Unlock()

	var newId int64
	var err error

	if state == membershipFavorited {
		err = t.store.DeleteFavorite(ctx, favoriteId)
	} else {
		newId, err = t.store.InsertFavorite(ctx, comicId, userId)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.busy = false

	if t.closed {
		return nil
	}

	if err != nil {
		t.err = err
		return err
	}

	if state == membershipFavorited {
		t.state = membershipNot
		t.favoriteId = 0
	} else {
		t.state = membershipFavorited
		t.favoriteId = newId
	}

	return nil
}

func (t *FavoriteToggle) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.phase
}

func (t *FavoriteToggle) IsFavorite() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state == membershipFavorited
}

func (t *FavoriteToggle) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.busy
}

func (t *FavoriteToggle) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.err
}

func (t *FavoriteToggle) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
}
