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
	ErrComicNotFound = errors.New("comic not found")
)

func (s *PostgresStore) GetComic(ctx context.Context, id uuid.UUID) (*models.Comic, error) {
	var comic models.Comic

	query := `
			SELECT id, title, author, description, cover_url FROM comics WHERE id = $1;
	`

	if err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&comic.Id,
		&comic.Title,
		&comic.Author,
		&comic.Description,
		&comic.Cover_url,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrComicNotFound
		}

		return nil, fmt.Errorf("error retrieving comic: %v", err)
	}

	return &comic, nil
}

func (s *PostgresStore) GetComics(ctx context.Context) ([]models.Comic, error) {
	var comics []models.Comic

	query := `
			SELECT id, title, author, description, cover_url FROM comics ORDER BY title ASC;
	`

	rows, err := s.DB.QueryContext(ctx, query)

	if err != nil {
		return nil, fmt.Errorf("error retrieving comics: %v", err)
	}

	defer rows.Close()

	for rows.Next() {
		var comic models.Comic

		if err := rows.Scan(
			&comic.Id,
			&comic.Title,
			&comic.Author,
			&comic.Description,
			&comic.Cover_url,
		); err != nil {
			return nil, fmt.Errorf("error scanning comic: %v", err)
		}

		comics = append(comics, comic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comics: %v", err)
	}

	return comics, nil
}
