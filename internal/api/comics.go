package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osariemen/comicbay/internal/models"
	"github.com/osariemen/comicbay/internal/store"
	"github.com/osariemen/comicbay/internal/viewmodel"
)

// currentUserId is nil when no one is signed in; session-optional
// handlers pass it straight through to the viewmodels.
func (a *Api) currentUserId() *uuid.UUID {
	session := a.session.Session()

	if session == nil {
		return nil
	}

	id := session.User.Id
	return &id
}

func parseIdParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))

	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}

	return id, nil
}

func (a *Api) HandleGetComics(w http.ResponseWriter, r *http.Request) {
	browser := viewmodel.NewComicsBrowser(a.store)
	defer browser.Close()

	if err := browser.Load(r.Context()); err != nil {
		a.logger.Error(fmt.Sprintf("error loading comics: %v", err), "service", "HandleGetComics")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, models.HandleGetComicsResponse{Comics: browser.Comics()})
}

func (a *Api) HandleGetComic(w http.ResponseWriter, r *http.Request) {
	comicId, err := parseIdParam(r, "comicId")

	if err != nil {
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	detail := viewmodel.NewComicDetailLoader(a.store)
	defer detail.Close()

	if err := detail.Load(r.Context(), comicId); err != nil {
		if errors.Is(err, store.ErrComicNotFound) {
			respondWithError(w, http.StatusNotFound, err)
			return
		}

		a.logger.Error(fmt.Sprintf("error loading comic: %v", err), "service", "HandleGetComic")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	favorite := viewmodel.NewFavoriteToggle(a.store)
	defer favorite.Close()

	if err := favorite.Load(r.Context(), comicId, a.currentUserId()); err != nil {
		a.logger.Warn(fmt.Sprintf("error loading favorite: %v", err), "service", "HandleGetComic")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, models.HandleComicDetailResponse{
		Comic:       detail.Comic(),
		Chapters:    detail.Chapters(),
		Is_favorite: favorite.IsFavorite(),
	})
}

func (a *Api) HandleGetPages(w http.ResponseWriter, r *http.Request) {
	chapterId, err := parseIdParam(r, "chapterId")

	if err != nil {
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	pager := viewmodel.NewReaderPager(a.store)
	defer pager.Close()

	if err := pager.SetChapter(r.Context(), chapterId); err != nil {
		a.logger.Error(fmt.Sprintf("error loading pages: %v", err), "service", "HandleGetPages")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, models.HandleGetPagesResponse{
		Pages:   pager.Pages(),
		Index:   pager.Index(),
		Total:   pager.Len(),
		Current: pager.Current(),
	})
}
