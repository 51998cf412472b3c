package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/osariemen/comicbay/internal/models"
)

// Store is the gateway to the remote relational store. Every read the
// client performs goes through one of these operations; consistency of the
// favorite and rating uniqueness rules is delegated to constraints on the
// store side.
type Store interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetProfiles(ctx context.Context, ids []uuid.UUID) ([]models.Profile, error)
	UpsertProfile(ctx context.Context, id uuid.UUID, displayName *string) error

	GetComic(ctx context.Context, id uuid.UUID) (*models.Comic, error)
	GetComics(ctx context.Context) ([]models.Comic, error)
	GetChapters(ctx context.Context, comicId uuid.UUID) ([]models.Chapter, error)
	GetPages(ctx context.Context, chapterId uuid.UUID) ([]models.Page, error)

	GetFavorite(ctx context.Context, comicId uuid.UUID, userId uuid.UUID) (*models.Favorite, error)
	InsertFavorite(ctx context.Context, comicId uuid.UUID, userId uuid.UUID) (int64, error)
	DeleteFavorite(ctx context.Context, id int64) error
	GetFavoritesWithComics(ctx context.Context, userId uuid.UUID) ([]models.FavoriteComic, error)

	GetRatingValues(ctx context.Context, comicId uuid.UUID) ([]int, error)
	GetUserRating(ctx context.Context, comicId uuid.UUID, userId uuid.UUID) (*models.Rating, error)
	InsertRating(ctx context.Context, comicId uuid.UUID, userId uuid.UUID, value int) error
	UpdateRating(ctx context.Context, id int64, value int) error
	GetUserRatingActivity(ctx context.Context, userId uuid.UUID) ([]models.RatingActivity, error)

	GetTopLevelComments(ctx context.Context, comicId uuid.UUID) ([]models.Comment, error)
	InsertComment(ctx context.Context, comicId uuid.UUID, userId uuid.UUID, content string) error
	GetUserCommentActivity(ctx context.Context, userId uuid.UUID) ([]models.CommentActivity, error)
}

type PostgresStore struct {
	*sql.DB
}

func NewPostgresStore(conn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", conn)

	if err != nil {
		return nil, fmt.Errorf("error connecting to db: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging db: %v", err)
	}

	return &PostgresStore{
		DB: db,
	}, nil
}
