package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/osariemen/comicbay/internal/store"
)

// RatingAggregator exposes the aggregate rating for a comic plus the
// current user's own value. The mean of zero ratings is nil, not zero.
// Load and SetRating errors live in separate slots: a failed submission
// must not look like a failed load.
type RatingAggregator struct {
	store store.Store

	mu         sync.Mutex
	phase      Phase
	comicId    uuid.UUID
	userId     *uuid.UUID
	average    *float64
	count      int
	userRating *int
	loadErr    error
	submitErr  error
	busy       bool
	closed     bool
	guard      guard
}

func NewRatingAggregator(store store.Store) *RatingAggregator {
	return &RatingAggregator{store: store}
}

func (a *RatingAggregator) Load(ctx context.Context, comicId uuid.UUID, userId *uuid.UUID) error {
	a.mu.Lock()

	if a.closed {
		a.mu.Unlock()
		return nil
	}

	a.comicId = comicId
	a.userId = userId
	id := a.guard.next()
	a.mu.Unlock()

	return a.refresh(ctx, id)
}

func (a *RatingAggregator) refresh(ctx context.Context, id uint64) error {
	a.mu.Lock()
	a.phase = PhaseLoading
	comicId := a.comicId
	userId := a.userId
	a.mu.Unlock()

	values, err := a.store.GetRatingValues(ctx, comicId)

	var average *float64
	var userRating *int

	if err == nil {
		if len(values) > 0 {
			sum := 0
			for _, v := range values {
				sum += v
			}
			mean := float64(sum) / float64(len(values))
			average = &mean
		}

		if userId != nil {
			own, ownErr := a.store.GetUserRating(ctx, comicId, *userId)

			if ownErr != nil && !errors.Is(ownErr, store.ErrRatingNotFound) {
				err = ownErr
			} else if own != nil {
				value := own.Rating
				userRating = &value
			}
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || !a.guard.current(id) {
		return nil
	}

	if err != nil {
		a.loadErr = err
		a.phase = PhaseError
		return err
	}

	a.average = average
	a.count = len(values)
	a.userRating = userRating
	a.loadErr = nil
	a.phase = PhaseReady

	return nil
}

// SetRating writes the user's rating with a read-check-then-write: update
// the existing row in place, otherwise insert. Uniqueness of the
// (comic, user) pair is the store's constraint; a racing duplicate insert
// surfaces as a store error. A successful write triggers a full refresh
// instead of patching the aggregate locally.
func (a *RatingAggregator) SetRating(ctx context.Context, value int) error {
	a.mu.Lock()

	if a.closed {
		a.mu.Unlock()
		return nil
	}

	if a.userId == nil {
		a.submitErr = ErrSignInRequired
		a.mu.Unlock()
		return ErrSignInRequired
	}

	if a.busy {
		a.mu.Unlock()
		return ErrBusy
	}

	a.busy = true
	a.submitErr = nil
	comicId := a.comicId
	userId := *a.userId
	a.mu.Unlock()

	err := a.write(ctx, comicId, userId, value)

	if err != nil {
		a.mu.Lock()
		a.busy = false
		a.submitErr = err
		a.mu.Unlock()
		return err
	}

	a.mu.Lock()
	id := a.guard.next()
	a.mu.Unlock()

	refreshErr := a.refresh(ctx, id)

	a.mu.Lock()
	a.busy = false
	a.mu.Unlock()

	return refreshErr
}

func (a *RatingAggregator) write(ctx context.Context, comicId uuid.UUID, userId uuid.UUID, value int) error {
	existing, err := a.store.GetUserRating(ctx, comicId, userId)

	if err != nil && !errors.Is(err, store.ErrRatingNotFound) {
		return err
	}

	if existing != nil {
		return a.store.UpdateRating(ctx, existing.Id, value)
	}

	return a.store.InsertRating(ctx, comicId, userId, value)
}

func (a *RatingAggregator) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.phase
}

func (a *RatingAggregator) Average() *float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.average
}

func (a *RatingAggregator) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.count
}

func (a *RatingAggregator) UserRating() *int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.userRating
}

func (a *RatingAggregator) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.busy
}

func (a *RatingAggregator) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.loadErr
}

func (a *RatingAggregator) SubmitErr() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.submitErr
}

func (a *RatingAggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
}
