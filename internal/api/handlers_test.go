package api

import (
	"context"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osariemen/comicbay/internal/auth"
	"github.com/osariemen/comicbay/internal/config"
	"github.com/osariemen/comicbay/internal/models"
	"github.com/osariemen/comicbay/internal/shared"
	"github.com/osariemen/comicbay/internal/store"
)

type testLogger struct{}

func (l *testLogger) Info(msg string, args ...any)  {}
func (l *testLogger) Warn(msg string, args ...any)  {}
func (l *testLogger) Error(msg string, args ...any) {}

type testStore struct {
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
}

func (s *testStore) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	if s.getProfileFunc != nil {
		return s.getProfileFunc(ctx, id)
	}
	return nil, store.ErrProfileNotFound
}

func (s *testStore) GetProfiles(ctx context.Context, ids []uuid.UUID) ([]models.Profile, error) {
	if s.getProfilesFunc != nil {
		return s.getProfilesFunc(ctx, ids)
	}
	return nil, nil
}

func (s *testStore) UpsertProfile(ctx context.Context, id uuid.UUID, displayName *string) error {
	if s.upsertProfileFunc != nil {
		return s.upsertProfileFunc(ctx, id, displayName)
	}
	return nil
}

func (s *testStore) GetComic(ctx context.Context, id uuid.UUID) (*models.Comic, error) {
	if s.getComicFunc != nil {
		return s.getComicFunc(ctx, id)
	}
	return &models.Comic{Id: id}, nil
}

func (s *testStore) GetComics(ctx context.Context) ([]models.Comic, error) {
	if s.getComicsFunc != nil {
		return s.getComicsFunc(ctx)
	}
	return nil, nil
}

func (s *testStore) GetChapters(ctx context.Context, comicId uuid.UUID) ([]models.Chapter, error) {
	if s.getChaptersFunc != nil {
		return s.getChaptersFunc(ctx, comicId)
	}
	return nil, nil
}

func (s *testStore) GetPages(ctx context.Context, chapterId uuid.UUID) ([]models.Page, error) {
	if s.getPagesFunc != nil {
		return s.getPagesFunc(ctx, chapterId)
	}
	return nil, nil
}

func (s *testStore) GetFavorite(ctx context.Context, comicId uuid.UUID, userId uuid.UUID) (*models.Favorite, error) {
	if s.getFavoriteFunc != nil {
		return s.getFavoriteFunc(ctx, comicId, userId)
	}
	return nil, store.ErrFavoriteNotFound
}

func (s *testStore) InsertFavorite(ctx context.Context, comicId uuid.UUID, userId uuid.UUID) (int64, error) {
	if s.insertFavoriteFunc != nil {
		return s.insertFavoriteFunc(ctx, comicId, userId)
	}
	return 1, nil
}

func (s *testStore) DeleteFavorite(ctx context.Context, id int64) error {
	if s.deleteFavoriteFunc != nil {
		return s.deleteFavoriteFunc(ctx, id)
	}
	return nil
}

func (s *testStore) GetFavoritesWithComics(ctx context.Context, userId uuid.UUID) ([]models.FavoriteComic, error) {
	if s.getFavoritesWithComicsFunc != nil {
		return s.getFavoritesWithComicsFunc(ctx, userId)
	}
	return nil, nil
}

func (s *testStore) GetRatingValues(ctx context.Context, comicId uuid.UUID) ([]int, error) {
	if s.getRatingValuesFunc != nil {
		return s.getRatingValuesFunc(ctx, comicId)
	}
	return nil, nil
}

func (s *testStore) GetUserRating(ctx context.Context, comicId uuid.UUID, userId uuid.UUID) (*models.Rating, error) {
	if s.getUserRatingFunc != nil {
		return s.getUserRatingFunc(ctx, comicId, userId)
	}
	return nil, store.ErrRatingNotFound
}

func (s *testStore) InsertRating(ctx context.Context, comicId uuid.UUID, userId uuid.UUID, value int) error {
	if s.insertRatingFunc != nil {
		return s.insertRatingFunc(ctx, comicId, userId, value)
	}
	return nil
}

func (s *testStore) UpdateRating(ctx context.Context, id int64, value int) error {
	if s.updateRatingFunc != nil {
		return s.updateRatingFunc(ctx, id, value)
	}
	return nil
}

func (s *testStore) GetUserRatingActivity(ctx context.Context, userId uuid.UUID) ([]models.RatingActivity, error) {
	if s.getUserRatingActivityFunc != nil {
		return s.getUserRatingActivityFunc(ctx, userId)
	}
	return nil, nil
}

func (s *testStore) GetTopLevelComments(ctx context.Context, comicId uuid.UUID) ([]models.Comment, error) {
	if s.getTopLevelCommentsFunc != nil {
		return s.getTopLevelCommentsFunc(ctx, comicId)
	}
	return nil, nil
}

func (s *testStore) InsertComment(ctx context.Context, comicId uuid.UUID, userId uuid.UUID, content string) error {
	if s.insertCommentFunc != nil {
		return s.insertCommentFunc(ctx, comicId, userId, content)
	}
	return nil
}

func (s *testStore) GetUserCommentActivity(ctx context.Context, userId uuid.UUID) ([]models.CommentActivity, error) {
	if s.getUserCommentActivityFunc != nil {
		return s.getUserCommentActivityFunc(ctx, userId)
	}
	return nil, nil
}

type testAuth struct {
	sessionFunc func(ctx context.Context) (*auth.Session, error)
	signInFunc  func(ctx context.Context, email string, password string) error
	signUpFunc  func(ctx context.Context, email string, password string) error
	signOutFunc func(ctx context.Context) error

	mu          sync.Mutex
	subscribers []chan *auth.Session
}

func (a *testAuth) Session(ctx context.Context) (*auth.Session, error) {
	if a.sessionFunc != nil {
		return a.sessionFunc(ctx)
	}
	return nil, nil
}

func (a *testAuth) User(ctx context.Context) (*auth.User, error) {
	session, err := a.Session(ctx)

	if err != nil || session == nil {
		return nil, err
	}

	user := session.User
	return &user, nil
}

func (a *testAuth) SignIn(ctx context.Context, email string, password string) error {
	if a.signInFunc != nil {
		return a.signInFunc(ctx, email, password)
	}
	return nil
}

func (a *testAuth) SignUp(ctx context.Context, email string, password string) error {
	if a.signUpFunc != nil {
		return a.signUpFunc(ctx, email, password)
	}
	return nil
}

func (a *testAuth) SignOut(ctx context.Context) error {
	if a.signOutFunc != nil {
		return a.signOutFunc(ctx)
	}
	return nil
}

func (a *testAuth) Subscribe() (<-chan *auth.Session, func()) {
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

func signedInSession(email string) *auth.Session {
	e := email
	return &auth.Session{
		Token: "token",
		User:  auth.User{Id: uuid.New(), Email: &e},
	}
}

func newTestApi(t *testing.T, s store.Store, service auth.Service) *Api {
	t.Helper()

	if s == nil {
		s = &testStore{}
	}

	if service == nil {
		service = &testAuth{}
	}

	a := New(&shared.Server{
		Router: chi.NewRouter(),
		Logger: &testLogger{},
		Store:  s,
		Auth:   service,
		Config: &config.Config{},
	})
	a.RegisterRoutes()

	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	t.Cleanup(a.Close)

	return a
}
