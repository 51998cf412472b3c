package viewmodel

import (
	"context"
	"sync"

	"github.com/osariemen/comicbay/internal/auth"
	"github.com/osariemen/comicbay/internal/models"
	"github.com/osariemen/comicbay/internal/store"
)

// ActivityAggregator loads the current user's own ratings and comments
// across all comics, each joined with a comic summary, newest first. The
// two queries succeed or fail as one: the first error wins and no partial
// result is exposed.
type ActivityAggregator struct {
	store store.Store
	auth  auth.Service

	mu       sync.Mutex
	phase    Phase
	ratings  []models.RatingActivity
	comments []models.CommentActivity
	err      error
	closed   bool
	guard    guard
}

func NewActivityAggregator(store store.Store, auth auth.Service) *ActivityAggregator {
	return &ActivityAggregator{store: store, auth: auth}
}

func (a *ActivityAggregator) Load(ctx context.Context) error {
	user, err := a.auth.User(ctx)

	if err == nil && user == nil {
		err = ErrSignInRequired
	}

	a.mu.Lock()

	if a.closed {
		a.mu.Unlock()
		return nil
	}

	if err != nil {
		a.err = err
		a.phase = PhaseError
		a.mu.Unlock()
		return err
	}

	a.phase = PhaseLoading
	id := a.guard.next()
	a.mu.Unlock()

	ratings, err := a.store.GetUserRatingActivity(ctx, user.Id)

	var comments []models.CommentActivity
	if err == nil {
		comments, err = a.store.GetUserCommentActivity(ctx, user.Id)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || !a.guard.current(id) {
		return nil
	}

	if err != nil {
		a.err = err
		a.phase = PhaseError
		return err
	}

	a.ratings = ratings
	a.comments = comments
	a.err = nil
	a.phase = PhaseReady

	return nil
}

func (a *ActivityAggregator) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.phase
}

func (a *ActivityAggregator) Ratings() []models.RatingActivity {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.ratings
}

func (a *ActivityAggregator) Comments() []models.CommentActivity {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.comments
}

func (a *ActivityAggregator) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.err
}

func (a *ActivityAggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closed = true
}

// FavoritesCollectionLoader loads the user's favorited comics. A favorite
// whose comic has since been deleted is dropped from the list rather than
// surfaced as an error.
type FavoritesCollectionLoader struct {
	store store.Store
	auth  auth.Service

	mu        sync.Mutex
	phase     Phase
	favorites []models.FavoriteComic
	err       error
	closed    bool
	guard     guard
}

func NewFavoritesCollectionLoader(store store.Store, auth auth.Service) *FavoritesCollectionLoader {
	return &FavoritesCollectionLoader{store: store, auth: auth}
}

func (l *FavoritesCollectionLoader) Load(ctx context.Context) error {
	user, err := l.auth.User(ctx)

	if err == nil && user == nil {
		err = ErrSignInRequired
	}

	l.mu.Lock()

	if l.closed {
		l.mu.Unlock()
		return nil
	}

	if err != nil {
		l.err = err
		l.phase = PhaseError
		l.mu.Unlock()
		return err
	}

	l.phase = PhaseLoading
	id := l.guard.next()
	l.mu.Unlock()

	rows, err := l.store.GetFavoritesWithComics(ctx, user.Id)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || !l.guard.current(id) {
		return nil
	}

	if err != nil {
		l.err = err
		l.phase = PhaseError
		return err
	}

	favorites := make([]models.FavoriteComic, 0, len(rows))
	for _, row := range rows {
		if row.Comic == nil {
			continue
		}
		favorites = append(favorites, row)
	}

	l.favorites = favorites
	l.err = nil
	l.phase = PhaseReady

	return nil
}

func (l *FavoritesCollectionLoader) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.phase
}

func (l *FavoritesCollectionLoader) Favorites() []models.FavoriteComic {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.favorites
}

func (l *FavoritesCollectionLoader) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.err
}

func (l *FavoritesCollectionLoader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
}
