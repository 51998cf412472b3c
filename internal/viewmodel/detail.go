package viewmodel

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/osariemen/comicbay/internal/models"
	"github.com/osariemen/comicbay/internal/store"
)

// ComicDetailLoader loads one comic and its ordered chapter list, keyed by
// the route's comic id. It does not depend on the session.
type ComicDetailLoader struct {
	store store.Store

	mu       sync.Mutex
	phase    Phase
	comic    *models.Comic
	chapters []models.Chapter
	err      error
	closed   bool
	guard    guard
}

func NewComicDetailLoader(store store.Store) *ComicDetailLoader {
	return &ComicDetailLoader{store: store}
}

func (l *ComicDetailLoader) Load(ctx context.Context, comicId uuid.UUID) error {
	l.mu.Lock()

	if l.closed {
		l.mu.Unlock()
		return nil
	}

	l.phase = PhaseLoading
	id := l.guard.next()
	l.mu.Unlock()

	comic, err := l.store.GetComic(ctx, comicId)

	var chapters []models.Chapter
	if err == nil {
		chapters, err = l.store.GetChapters(ctx, comicId)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || !l.guard.current(id) {
		return nil
	}

	if err != nil {
		l.phase = PhaseError
		l.err = err
		return err
	}

	l.comic = comic
	l.chapters = chapters
	l.err = nil
	l.phase = PhaseReady

	return nil
}

func (l *ComicDetailLoader) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.phase
}

func (l *ComicDetailLoader) Comic() *models.Comic {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.comic
}

func (l *ComicDetailLoader) Chapters() []models.Chapter {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.chapters
}

func (l *ComicDetailLoader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.err
}

func (l *ComicDetailLoader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
}
