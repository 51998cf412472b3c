package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osariemen/comicbay/internal/models"
)

func (s *PostgresStore) GetChapters(ctx context.Context, comicId uuid.UUID) ([]models.Chapter, error) {
	var chapters []models.Chapter

	query := `
			SELECT id, title, number FROM chapters WHERE comic_id = $1 ORDER BY number ASC;
	`

	rows, err := s.DB.QueryContext(ctx, query, comicId)

	if err != nil {
		return nil, fmt.Errorf("error retrieving chapters: %v", err)
	}

	defer rows.Close()

	for rows.Next() {
		var chapter models.Chapter

		if err := rows.Scan(&chapter.Id, &chapter.Title, &chapter.Number); err != nil {
			return nil, fmt.Errorf("error scanning chapter: %v", err)
		}

		chapters = append(chapters, chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chapters: %v", err)
	}

	return chapters, nil
}

func (s *PostgresStore) GetPages(ctx context.Context, chapterId uuid.UUID) ([]models.Page, error) {
	var pages []models.Page

	query := `
			SELECT id, page_number, image_url FROM pages WHERE chapter_id = $1 ORDER BY page_number ASC;
	`

	rows, err := s.DB.QueryContext(ctx, query, chapterId)

	if err != nil {
		return nil, fmt.Errorf("error retrieving pages: %v", err)
	}

	defer rows.Close()

	for rows.Next() {
		var page models.Page

		if err := rows.Scan(&page.Id, &page.Page_number, &page.Image_url); err != nil {
			return nil, fmt.Errorf("error scanning page: %v", err)
		}

		pages = append(pages, page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pages: %v", err)
	}

	return pages, nil
}
