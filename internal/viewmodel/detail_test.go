package viewmodel

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/osariemen/comicbay/internal/models"
	"github.com/osariemen/comicbay/internal/store"
)

func TestComicDetailLoaderLoad(t *testing.T) {
	tests := []struct {
		name            string
		getComicFunc    func(ctx context.Context, id uuid.UUID) (*models.Comic, error)
		getChaptersFunc func(ctx context.Context, comicId uuid.UUID) ([]models.Chapter, error)
		expectPhase     Phase
		expectChapters  int
		expectErr       bool
	}{
		{
			name: "should expose the comic and its chapters",
			getComicFunc: func(ctx context.Context, id uuid.UUID) (*models.Comic, error) {
				return &models.Comic{Id: id, Title: "Moon Runners"}, nil
			},
			getChaptersFunc: func(ctx context.Context, comicId uuid.UUID) ([]models.Chapter, error) {
				return []models.Chapter{{Id: uuid.New()}, {Id: uuid.New()}}, nil
			},
			expectPhase:    PhaseReady,
			expectChapters: 2,
		},
		{
			name: "should enter the error phase when the comic is missing",
			getComicFunc: func(ctx context.Context, id uuid.UUID) (*models.Comic, error) {
				return nil, store.ErrComicNotFound
			},
			expectPhase: PhaseError,
			expectErr:   true,
		},
		{
			name: "should enter the error phase when the chapter query fails",
			getComicFunc: func(ctx context.Context, id uuid.UUID) (*models.Comic, error) {
				return &models.Comic{Id: id}, nil
			},
			getChaptersFunc: func(ctx context.Context, comicId uuid.UUID) ([]models.Chapter, error) {
				return nil, errors.New("gateway unreachable")
			},
			expectPhase: PhaseError,
			expectErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewComicDetailLoader(&fakeStore{
				getComicFunc:    tt.getComicFunc,
				getChaptersFunc: tt.getChaptersFunc,
			})

			if loader.Phase() != PhaseIdle {
				t.Errorf("expected idle phase before load, got %v", loader.Phase())
			}

			err := loader.Load(context.Background(), uuid.New())

			if tt.expectErr && err == nil {
				t.Error("expected an error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}

			if loader.Phase() != tt.expectPhase {
				t.Errorf("expected phase %v, got %v", tt.expectPhase, loader.Phase())
			}

			if len(loader.Chapters()) != tt.expectChapters {
				t.Errorf("expected %d chapters, got %d", tt.expectChapters, len(loader.Chapters()))
			}
		})
	}
}

func TestComicDetailLoaderDiscardsStaleLoad(t *testing.T) {
	comicA := uuid.New()
	comicB := uuid.New()

	started := make(chan struct{})
	release := make(chan struct{})

	s := &fakeStore{
		getComicFunc: func(ctx context.Context, id uuid.UUID) (*models.Comic, error) {
			if id == comicA {
				close(started)
				<-release
				return &models.Comic{Id: id, Title: "stale"}, nil
			}
			return &models.Comic{Id: id, Title: "fresh"}, nil
		},
	}

	loader := NewComicDetailLoader(s)

	done := make(chan struct{})
	go func() {
		defer close(done)
		loader.Load(context.Background(), comicA)
	}()

	<-started

	if err := loader.Load(context.Background(), comicB); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	close(release)
	<-done

	comic := loader.Comic()

	if comic == nil || comic.Title != "fresh" {
		t.Errorf("expected the newer load to win, got %v", comic)
	}
}

func TestComicsBrowserLoad(t *testing.T) {
	t.Run("should expose the comic list", func(t *testing.T) {
		s := &fakeStore{
			getComicsFunc: func(ctx context.Context) ([]models.Comic, error) {
				return []models.Comic{{Id: uuid.New()}, {Id: uuid.New()}}, nil
			},
		}

		browser := NewComicsBrowser(s)

		if err := browser.Load(context.Background()); err != nil {
			t.Fatalf("load failed: %v", err)
		}

		if len(browser.Comics()) != 2 {
			t.Errorf("expected 2 comics, got %d", len(browser.Comics()))
		}

		if browser.Phase() != PhaseReady {
			t.Errorf("expected phase %v, got %v", PhaseReady, browser.Phase())
		}
	})

	t.Run("should report a failed load", func(t *testing.T) {
		s := &fakeStore{
			getComicsFunc: func(ctx context.Context) ([]models.Comic, error) {
				return nil, errors.New("gateway unreachable")
			},
		}

		browser := NewComicsBrowser(s)

		if err := browser.Load(context.Background()); err == nil {
			t.Fatal("expected an error, got nil")
		}

		if browser.Err() == nil {
			t.Error("expected the error to be exposed")
		}

		if browser.Phase() != PhaseError {
			t.Errorf("expected phase %v, got %v", PhaseError, browser.Phase())
		}
	})
}
