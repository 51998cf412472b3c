package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/osariemen/comicbay/internal/models"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

func (s *PostgresStore) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile

	query := `
			SELECT id, display_name FROM profiles WHERE id = $1;
	`

	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&profile.Id, &profile.Display_name); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProfileNotFound
		}

		return nil, fmt.Errorf("error retrieving profile: %v", err)
	}

	return &profile, nil
}

// GetProfiles resolves the whole id set in one query. Ids without a profile
// row are simply absent from the result.
func (s *PostgresStore) GetProfiles(ctx context.Context, ids []uuid.UUID) ([]models.Profile, error) {
	var profiles []models.Profile

	query := `
			SELECT id, display_name FROM profiles WHERE id = ANY($1);
	`

	rows, err := s.DB.QueryContext(ctx, query, pq.Array(ids))

	if err != nil {
		return nil, fmt.Errorf("error retrieving profiles: %v", err)
	}

	defer rows.Close()

	for rows.Next() {
		var profile models.Profile

		if err := rows.Scan(&profile.Id, &profile.Display_name); err != nil {
			return nil, fmt.Errorf("error scanning profile: %v", err)
		}

		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %v", err)
	}

	return profiles, nil
}

func (s *PostgresStore) UpsertProfile(ctx context.Context, id uuid.UUID, displayName *string) error {
	query := `
			INSERT INTO profiles(id, display_name)
			VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name;
	`

	if _, err := s.DB.ExecContext(ctx, query, id, displayName); err != nil {
		return fmt.Errorf("error upserting profile: %v", err)
	}

	return nil
}
