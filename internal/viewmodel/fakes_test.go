package viewmodel

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/osariemen/comicbay/internal/auth"
	"github.com/osariemen/comicbay/internal/models"
	"github.com/osariemen/comicbay/internal/store"
)

type fakeStore struct {
	getProfileFunc             func(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	getProfilesFunc            func(ctx context.Context, ids []uuid.UUID) ([]models.Profile, error)
	upsertProfileFunc          func(ctx context.Context, id uuid.UUID, displayName *string) error
	getComicFunc               func(ctx context.Context, id uuid.UUID) (*models.Comic, error)
	getComicsFunc              func(ctx context.Context) ([]models.Comic, error)
	getChaptersFunc            func(ctx context.Context, comicId uuid.UUID) ([]models.Chapter, error)
	getPagesFunc               func(ctx context.Context, chapterId uuid.UUID) ([]models.Page, error)
	getFavoriteFunc            func(ctx context.Context, comicId uuid.UUID, userId uuid.UUID) (*models.Favorite, error)
	insertFavoriteFunc         func(ctx context.Context, comicId uuid.UUID, userId uuid.UUID) (int64, error)
	deleteFavoriteFunc         func(ctx context.Context, id int64) error
	getFavoritesWithComicsFunc func(ctx context.Context, userId uuid.UUID) ([]models.FavoriteComic, error)
	getRatingValuesFunc        func(ctx context.Context, comicId uuid.UUID) ([]int, error)
	getUserRatingFunc          func(ctx context.Context, comicId uuid.UUID, userId uuid.UUID) (*models.Rating, error)
	insertRatingFunc           func(ctx context.Context, comicId uuid.UUID, userId uuid.UUID, value int) error
	updateRatingFunc           func(ctx context.Context, id int64, value int) error
	getUserRatingActivityFunc  func(ctx context.Context, userId uuid.UUID) ([]models.RatingActivity, error)
	getTopLevelCommentsFunc    func(ctx context.Context, comicId uuid.UUID) ([]models.Comment, error)
	insertCommentFunc          func(ctx context.Context, comicId uuid.UUID, userId uuid.UUID, content string) error
	getUserCommentActivityFunc func(ctx context.Context, userId uuid.UUID) ([]models.CommentActivity, error)

	mu             sync.Mutex
	profileLookups int
	commentInserts int
}

func (s *fakeStore) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	if s.getProfileFunc != nil {
		return s.getProfileFunc(ctx, id)
	}
	return nil, store.ErrProfileNotFound
}

func (s *fakeStore) GetProfiles(ctx context.Context, ids []uuid.UUID) ([]models.Profile, error) {
	s.mu.Lock()
	s.profileLookups++
	s.mu.Unlock()

	if s.getProfilesFunc != nil {
		return s.getProfilesFunc(ctx, ids)
	}
	return nil, nil
}

func (s *fakeStore) UpsertProfile(ctx context.Context, id uuid.UUID, displayName *string) error {
	if s.upsertProfileFunc != nil {
		return s.upsertProfileFunc(ctx, id, displayName)
	}
	return nil
}

func (s *fakeStore) GetComic(ctx context.Context, id uuid.UUID) (*models.Comic, error) {
	if s.getComicFunc != nil {
		return s.getComicFunc(ctx, id)
	}
	return &models.Comic{Id: id}, nil
}

func (s *fakeStore) GetComics(ctx context.Context) ([]models.Comic, error) {
	if s.getComicsFunc != nil {
		return s.getComicsFunc(ctx)
	}
	return nil, nil
}

func (s *fakeStore) GetChapters(ctx context.Context, comicId uuid.UUID) ([]models.Chapter, error) {
	if s.getChaptersFunc != nil {
		return s.getChaptersFunc(ctx, comicId)
	}
	return nil, nil
}

func (s *fakeStore) GetPages(ctx context.Context, chapterId uuid.UUID) ([]models.Page, error) {
	if s.getPagesFunc != nil {
		return s.getPagesFunc(ctx, chapterId)
	}
	return nil, nil
}

func (s *fakeStore) GetFavorite(ctx context.Context, comicId uuid.UUID, userId uuid.UUID) (*models.Favorite, error) {
	if s.getFavoriteFunc != nil {
		return s.getFavoriteFunc(ctx, comicId, userId)
	}
	return nil, store.ErrFavoriteNotFound
}

func (s *fakeStore) InsertFavorite(ctx context.Context, comicId uuid.UUID, userId uuid.UUID) (int64, error) {
	if s.insertFavoriteFunc != nil {
		return s.insertFavoriteFunc(ctx, comicId, userId)
	}
	return 1, nil
}

func (s *fakeStore) DeleteFavorite(ctx context.Context, id int64) error {
	if s.deleteFavoriteFunc != nil {
		return s.deleteFavoriteFunc(ctx, id)
	}
	return nil
}

func (s *fakeStore) GetFavoritesWithComics(ctx context.Context, userId uuid.UUID) ([]models.FavoriteComic, error) {
	if s.getFavoritesWithComicsFunc != nil {
		return s.getFavoritesWithComicsFunc(ctx, userId)
	}
	return nil, nil
}

func (s *fakeStore) GetRatingValues(ctx context.Context, comicId uuid.UUID) ([]int, error) {
	if s.getRatingValuesFunc != nil {
		return s.getRatingValuesFunc(ctx, comicId)
	}
	return nil, nil
}

func (s *fakeStore) GetUserRating(ctx context.Context, comicId uuid.UUID, userId uuid.UUID) (*models.Rating, error) {
	if s.getUserRatingFunc != nil {
		return s.getUserRatingFunc(ctx, comicId, userId)
	}
	return nil, store.ErrRatingNotFound
}

func (s *fakeStore) InsertRating(ctx context.Context, comicId uuid.UUID, userId uuid.UUID, value int) error {
	if s.insertRatingFunc != nil {
		return s.insertRatingFunc(ctx, comicId, userId, value)
	}
	return nil
}

func (s *fakeStore) UpdateRating(ctx context.Context, id int64, value int) error {
	if s.updateRatingFunc != nil {
		return s.updateRatingFunc(ctx, id, value)
	}
	return nil
}

func (s *fakeStore) GetUserRatingActivity(ctx context.Context, userId uuid.UUID) ([]models.RatingActivity, error) {
	if s.getUserRatingActivityFunc != nil {
		return s.getUserRatingActivityFunc(ctx, userId)
	}
	return nil, nil
}

func (s *fakeStore) GetTopLevelComments(ctx context.Context, comicId uuid.UUID) ([]models.Comment, error) {
	if s.getTopLevelCommentsFunc != nil {
		return s.getTopLevelCommentsFunc(ctx, comicId)
	}
	return nil, nil
}

func (s *fakeStore) InsertComment(ctx context.Context, comicId uuid.UUID, userId uuid.UUID, content string) error {
	s.mu.Lock()
	s.commentInserts++
	s.mu.Unlock()

	if s.insertCommentFunc != nil {
		return s.insertCommentFunc(ctx, comicId, userId, content)
	}
	return nil
}

func (s *fakeStore) GetUserCommentActivity(ctx context.Context, userId uuid.UUID) ([]models.CommentActivity, error) {
	if s.getUserCommentActivityFunc != nil {
		return s.getUserCommentActivityFunc(ctx, userId)
	}
	return nil, nil
}

func (s *fakeStore) profileLookupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileLookups
}

func (s *fakeStore) commentInsertCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commentInserts
}

type fakeAuth struct {
	sessionFunc func(ctx context.Context) (*auth.Session, error)

	mu          sync.Mutex
	subscribers []chan *auth.Session
}

func (a *fakeAuth) Session(ctx context.Context) (*auth.Session, error) {
	if a.sessionFunc != nil {
		return a.sessionFunc(ctx)
	}
	return nil, nil
}

func (a *fakeAuth) User(ctx context.Context) (*auth.User, error) {
	session, err := a.Session(ctx)

	if err != nil || session == nil {
		return nil, err
	}

	user := session.User
	return &user, nil
}

func (a *fakeAuth) SignIn(ctx context.Context, email string, password string) error {
	return nil
}

func (a *fakeAuth) SignUp(ctx context.Context, email string, password string) error {
	return nil
}

func (a *fakeAuth) SignOut(ctx context.Context) error {
	return nil
}

func (a *fakeAuth) Subscribe() (<-chan *auth.Session, func()) {
	ch := make(chan *auth.Session, 8)

	a.mu.Lock()
	a.subscribers = append(a.subscribers, ch)
	a.mu.Unlock()

	cancel := func() {
		a.mu.Lock()
		defer a.mu.Unlock()

		for i, sub := range a.subscribers {
			if sub == ch {
				a.subscribers = append(a.subscribers[:i], a.subscribers[i+1:]...)
				close(ch)
				return
			}
		}
	}

	return ch, cancel
}

func (a *fakeAuth) notify(session *auth.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, ch := range a.subscribers {
		ch <- session
	}
}

func sessionFor(email string) *auth.Session {
	e := email
	return &auth.Session{
		Token: "token",
		User:  auth.User{Id: uuid.New(), Email: &e},
	}
}
