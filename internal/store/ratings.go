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
	ErrRatingNotFound = errors.New("rating not found")
)

func (s *PostgresStore) GetRatingValues(ctx context.Context, comicId uuid.UUID) ([]int, error) {
	var values []int

	query := `
			SELECT rating FROM ratings WHERE comic_id = $1;
	`

	rows, err := s.DB.QueryContext(ctx, query, comicId)

	if err != nil {
		return nil, fmt.Errorf("error retrieving ratings: %v", err)
	}

	defer rows.Close()

	for rows.Next() {
		var value int

		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("error scanning rating: %v", err)
		}

		values = append(values, value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ratings: %v", err)
	}

	return values, nil
}

func (s *PostgresStore) GetUserRating(ctx context.Context, comicId uuid.UUID, userId uuid.UUID) (*models.Rating, error) {
	var rating models.Rating

	query := `
			SELECT id, rating FROM ratings WHERE comic_id = $1 AND user_id = $2;
	`

	if err := s.DB.QueryRowContext(ctx, query, comicId, userId).Scan(&rating.Id, &rating.Rating); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRatingNotFound
		}

		return nil, fmt.Errorf("error retrieving user rating: %v", err)
	}

	return &rating, nil
}

func (s *PostgresStore) InsertRating(ctx context.Context, comicId uuid.UUID, userId uuid.UUID, value int) error {
	query := `
			INSERT INTO ratings(comic_id, user_id, rating) VALUES ($1, $2, $3);
	`

	if _, err := s.DB.ExecContext(ctx, query, comicId, userId, value); err != nil {
		return fmt.Errorf("error inserting rating: %v", err)
	}

	return nil
}

func (s *PostgresStore) UpdateRating(ctx context.Context, id int64, value int) error {
	query := `
			UPDATE ratings SET rating = $1 WHERE id = $2;
	`

	if _, err := s.DB.ExecContext(ctx, query, value, id); err != nil {
		return fmt.Errorf("error updating rating: %v", err)
	}

	return nil
}

func (s *PostgresStore) GetUserRatingActivity(ctx context.Context, userId uuid.UUID) ([]models.RatingActivity, error) {
	var activity []models.RatingActivity

	query := `
			SELECT r.id, r.rating, r.created_at, c.id, c.title, c.cover_url
			FROM ratings r
			LEFT JOIN comics c ON (c.id = r.comic_id)
			WHERE r.user_id = $1
			ORDER BY r.created_at DESC;
	`

	rows, err := s.DB.QueryContext(ctx, query, userId)

	if err != nil {
		return nil, fmt.Errorf("error retrieving rating activity: %v", err)
	}

	defer rows.Close()

	for rows.Next() {
		var entry models.RatingActivity
		var comicId uuid.NullUUID
		var title sql.NullString
		var coverUrl *string

		if err := rows.Scan(&entry.Id, &entry.Rating, &entry.Created_at, &comicId, &title, &coverUrl); err != nil {
			return nil, fmt.Errorf("error scanning rating activity: %v", err)
		}

		if comicId.Valid {
			entry.Comic = &models.ComicSummary{
				Id:        comicId.UUID,
				Title:     title.String,
				Cover_url: coverUrl,
			}
		}

		activity = append(activity, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rating activity: %v", err)
	}

	return activity, nil
}
