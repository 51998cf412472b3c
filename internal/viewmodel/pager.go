package viewmodel

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/osariemen/comicbay/internal/models"
	"github.com/osariemen/comicbay/internal/store"
)

// ReaderPager materializes a chapter's page sequence and navigates it with
// an in-memory cursor. Chapter sizes are bounded, so the whole sequence is
// loaded up front.
type ReaderPager struct {
	store store.Store

	mu     sync.Mutex
	phase  Phase
	pages  []models.Page
	cursor int
	err    error
	closed bool
	guard  guard
}

func NewReaderPager(store store.Store) *ReaderPager {
	return &ReaderPager{store: store}
}

// SetChapter loads the page sequence, ordered by page number ascending,
// and resets the cursor to 0 — regardless of where the previous chapter's
// cursor was.
func (p *ReaderPager) SetChapter(ctx context.Context, chapterId uuid.UUID) error {
	p.mu.Lock()

	if p.closed {
		p.mu.Unlock()
		return nil
	}

	p.phase = PhaseLoading
	id := p.guard.next()
	p.mu.Unlock()

	pages, err := p.store.GetPages(ctx, chapterId)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || !p.guard.current(id) {
		return nil
	}

	if err != nil {
		p.err = err
		p.phase = PhaseError
		return err
	}

	p.pages = pages
	p.cursor = 0
	p.err = nil
	p.phase = PhaseReady

	return nil
}

func (p *ReaderPager) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.phase
}

// Current returns the page at the cursor, or nil for an empty sequence.
func (p *ReaderPager) Current() *models.Page {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.pages) == 0 {
		return nil
	}

	page := p.pages[p.cursor]
	return &page
}

// Prev moves the cursor back one page; at the first page it stays put.
func (p *ReaderPager) Prev() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cursor > 0 {
		p.cursor--
	}
}

// Next moves the cursor forward one page; at the last page it stays put.
func (p *ReaderPager) Next() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cursor < len(p.pages)-1 {
		p.cursor++
	}
}

// Pages returns the materialized sequence in reading order.
func (p *ReaderPager) Pages() []models.Page {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.pages
}

func (p *ReaderPager) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.cursor
}

func (p *ReaderPager) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.pages)
}

func (p *ReaderPager) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.err
}

func (p *ReaderPager) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
}
