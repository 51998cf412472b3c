package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/osariemen/comicbay/internal/models"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
)

func (s *PostgresStore) GetFavorite(ctx context.Context, comicId uuid.UUID, userId uuid.UUID) (*models.Favorite, error) {
	var favorite models.Favorite

	query := `
			SELECT id, comic_id, user_id FROM favorites WHERE comic_id = $1 AND user_id = $2;
	`

	if err := s.DB.QueryRowContext(ctx, query, comicId, userId).Scan(
		&favorite.Id,
		&favorite.Comic_id,
		&favorite.User_id,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrFavoriteNotFound
		}

		return nil, fmt.Errorf("error retrieving favorite: %v", err)
	}

	return &favorite, nil
}

func (s *PostgresStore) InsertFavorite(ctx context.Context, comicId uuid.UUID, userId uuid.UUID) (int64, error) {
	var id int64

	query := `
			INSERT INTO favorites(comic_id, user_id) VALUES ($1, $2) RETURNING id;
	`

	if err := s.DB.QueryRowContext(ctx, query, comicId, userId).Scan(&id); err != nil {
		return 0, fmt.Errorf("error inserting favorite: %v", err)
	}

	return id, nil
}

func (s *PostgresStore) DeleteFavorite(ctx context.Context, id int64) error {
	query := `
			DELETE FROM favorites WHERE id = $1;
	`

	if _, err := s.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("error deleting favorite: %v", err)
	}

	return nil
}

// GetFavoritesWithComics left-joins on comics so a favorite whose comic has
// been removed still comes back, with a nil Comic. Filtering those rows is
// the caller's concern.
func (s *PostgresStore) GetFavoritesWithComics(ctx context.Context, userId uuid.UUID) ([]models.FavoriteComic, error) {
	var favorites []models.FavoriteComic

	query := `
			SELECT f.id, c.id, c.title, c.cover_url
			FROM favorites f
			LEFT JOIN comics c ON (c.id = f.comic_id)
			WHERE f.user_id = $1
			ORDER BY f.id DESC;
	`

	rows, err := s.DB.QueryContext(ctx, query, userId)

	if err != nil {
		return nil, fmt.Errorf("error retrieving favorites: %v", err)
	}

	defer rows.Close()

	for rows.Next() {
		var favorite models.FavoriteComic
		var comicId uuid.NullUUID
		var title sql.NullString
		var coverUrl *string

		if err := rows.Scan(&favorite.Id, &comicId, &title, &coverUrl); err != nil {
			return nil, fmt.Errorf("error scanning favorite: %v", err)
		}

		if comicId.Valid {
			favorite.Comic = &models.ComicSummary{
				Id:        comicId.UUID,
				Title:     title.String,
				Cover_url: coverUrl,
			}
		}

		favorites = append(favorites, favorite)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %v", err)
	}

	return favorites, nil
}
