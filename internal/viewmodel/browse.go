package viewmodel

import (
	"context"
	"sync"

	"github.com/osariemen/comicbay/internal/models"
	"github.com/osariemen/comicbay/internal/store"
)

// ComicsBrowser loads the full comic list for the browse view.
type ComicsBrowser struct {
	store store.Store

	mu     sync.Mutex
	phase  Phase
	comics []models.Comic
	err    error
	closed bool
	guard  guard
}

func NewComicsBrowser(store store.Store) *ComicsBrowser {
	return &ComicsBrowser{store: store}
}

func (b *ComicsBrowser) Load(ctx context.Context) error {
	b.mu.Lock()

	if b.closed {
		b.mu.Unlock()
		return nil
	}

	b.phase = PhaseLoading
	id := b.guard.next()
	b.mu.Unlock()

	comics, err := b.store.GetComics(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || !b.guard.current(id) {
		return nil
	}

	if err != nil {
		b.err = err
		b.phase = PhaseError
		return err
	}

	b.comics = comics
	b.err = nil
	b.phase = PhaseReady

	return nil
}

func (b *ComicsBrowser) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.phase
}

func (b *ComicsBrowser) Comics() []models.Comic {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.comics
}

func (b *ComicsBrowser) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.err
}

func (b *ComicsBrowser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
}
