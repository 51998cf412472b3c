package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/osariemen/comicbay/internal/models"
)

func (s *PostgresStore) GetTopLevelComments(ctx context.Context, comicId uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment

	query := `
			SELECT id, content, user_id, created_at
			FROM comments
			WHERE comic_id = $1 AND parent_id IS NULL
			ORDER BY created_at DESC;
	`

	rows, err := s.DB.QueryContext(ctx, query, comicId)

	if err != nil {
		return nil, fmt.Errorf("error retrieving comments: %v", err)
	}

	defer rows.Close()

	for rows.Next() {
		var comment models.Comment

		if err := rows.Scan(&comment.Id, &comment.Content, &comment.User_id, &comment.Created_at); err != nil {
			return nil, fmt.Errorf("error scanning comment: %v", err)
		}

		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %v", err)
	}

	return comments, nil
}

func (s *PostgresStore) InsertComment(ctx context.Context, comicId uuid.UUID, userId uuid.UUID, content string) error {
	query := `
			INSERT INTO comments(comic_id, user_id, content, parent_id) VALUES ($1, $2, $3, NULL);
	`

	if _, err := s.DB.ExecContext(ctx, query, comicId, userId, content); err != nil {
		return fmt.Errorf("error inserting comment: %v", err)
	}

	return nil
}

func (s *PostgresStore) GetUserCommentActivity(ctx context.Context, userId uuid.UUID) ([]models.CommentActivity, error) {
	var activity []models.CommentActivity

	query := `
			SELECT cm.id, cm.content, cm.created_at, c.id, c.title, c.cover_url
			FROM comments cm
			LEFT JOIN comics c ON (c.id = cm.comic_id)
			WHERE cm.user_id = $1
			ORDER BY cm.created_at DESC;
	`

	rows, err := s.DB.QueryContext(ctx, query, userId)

	if err != nil {
		return nil, fmt.Errorf("error retrieving comment activity: %v", err)
	}

	defer rows.Close()

	for rows.Next() {
		var entry models.CommentActivity
		var comicId uuid.NullUUID
		var title sql.NullString
		var coverUrl *string

		if err := rows.Scan(&entry.Id, &entry.Content, &entry.Created_at, &comicId, &title, &coverUrl); err != nil {
			return nil, fmt.Errorf("error scanning comment activity: %v", err)
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
		return nil, fmt.Errorf("error iterating comment activity: %v", err)
	}

	return activity, nil
}
