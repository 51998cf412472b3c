package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/osariemen/comicbay/internal/models"
	"github.com/osariemen/comicbay/internal/shared"
	"github.com/osariemen/comicbay/internal/viewmodel"
)

type handleToggleFavoriteResponse struct {
	Is_favorite bool `json:"is_favorite"`
}

func (a *Api) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	comicId, err := parseIdParam(r, "comicId")

	if err != nil {
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	toggle := viewmodel.NewFavoriteToggle(a.store)
	defer toggle.Close()

	if err := toggle.Load(r.Context(), comicId, a.currentUserId()); err != nil {
		a.logger.Warn(fmt.Sprintf("error loading favorite: %v", err), "service", "HandleToggleFavorite")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	if err := toggle.Toggle(r.Context()); err != nil {
		a.logger.Error(fmt.Sprintf("error toggling favorite: %v", err), "service", "HandleToggleFavorite")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, handleToggleFavoriteResponse{Is_favorite: toggle.IsFavorite()})
}

func (a *Api) HandleGetRatings(w http.ResponseWriter, r *http.Request) {
	comicId, err := parseIdParam(r, "comicId")

	if err != nil {
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	ratings := viewmodel.NewRatingAggregator(a.store)
	defer ratings.Close()

	if err := ratings.Load(r.Context(), comicId, a.currentUserId()); err != nil {
		a.logger.Error(fmt.Sprintf("error loading ratings: %v", err), "service", "HandleGetRatings")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, models.HandleRatingsResponse{
		Average:     ratings.Average(),
		Count:       ratings.Count(),
		User_rating: ratings.UserRating(),
	})
}

func (a *Api) HandleSetRating(w http.ResponseWriter, r *http.Request) {
	comicId, err := parseIdParam(r, "comicId")

	if err != nil {
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	var params models.HandleSetRatingRequest

	if err := a.decodeJson(w, r, &params, "HandleSetRating"); err != nil {
		return
	}

	if err := shared.Validate.Struct(&params); err != nil {
		a.logger.Warn(fmt.Sprintf("validation error: %v", err), "service", "HandleSetRating")
		respondWithError(w, http.StatusBadRequest, fmt.Errorf("validation error: %v", err))
		return
	}

	ratings := viewmodel.NewRatingAggregator(a.store)
	defer ratings.Close()

	if err := ratings.Load(r.Context(), comicId, a.currentUserId()); err != nil {
		a.logger.Error(fmt.Sprintf("error loading ratings: %v", err), "service", "HandleSetRating")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	if err := ratings.SetRating(r.Context(), params.Rating); err != nil {
		if errors.Is(err, viewmodel.ErrSignInRequired) {
			respondWithError(w, http.StatusUnauthorized, err)
			return
		}

		a.logger.Error(fmt.Sprintf("error setting rating: %v", err), "service", "HandleSetRating")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, models.HandleRatingsResponse{
		Average:     ratings.Average(),
		Count:       ratings.Count(),
		User_rating: ratings.UserRating(),
	})
}

type handleCommentsResponse struct {
	Comments []viewmodel.Comment `json:"comments"`
}

func (a *Api) HandleGetComments(w http.ResponseWriter, r *http.Request) {
	comicId, err := parseIdParam(r, "comicId")

	if err != nil {
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	thread := viewmodel.NewCommentThread(a.store, a.auth)
	defer thread.Close()

	if err := thread.Start(r.Context(), comicId); err != nil {
		a.logger.Error(fmt.Sprintf("error loading comments: %v", err), "service", "HandleGetComments")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, handleCommentsResponse{Comments: thread.Comments()})
}

func (a *Api) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	comicId, err := parseIdParam(r, "comicId")

	if err != nil {
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	var params models.HandleAddCommentRequest

	if err := a.decodeJson(w, r, &params, "HandleAddComment"); err != nil {
		return
	}

	if err := shared.Validate.Struct(&params); err != nil {
		a.logger.Warn(fmt.Sprintf("validation error: %v", err), "service", "HandleAddComment")
		respondWithError(w, http.StatusBadRequest, fmt.Errorf("validation error: %v", err))
		return
	}

	thread := viewmodel.NewCommentThread(a.store, a.auth)
	defer thread.Close()

	if err := thread.Start(r.Context(), comicId); err != nil {
		a.logger.Error(fmt.Sprintf("error loading comments: %v", err), "service", "HandleAddComment")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	if !thread.AddComment(r.Context(), params.Content) {
		submitErr := thread.SubmitErr()

		if submitErr == nil {
			submitErr = fmt.Errorf("error adding comment")
		}

		code := http.StatusInternalServerError
		if errors.Is(submitErr, viewmodel.ErrEmptyComment) {
			code = http.StatusBadRequest
		} else if errors.Is(submitErr, viewmodel.ErrSignInRequired) {
			code = http.StatusUnauthorized
		}

		respondWithError(w, code, submitErr)
		return
	}

	respondWithSuccess(w, http.StatusCreated, handleCommentsResponse{Comments: thread.Comments()})
}

func (a *Api) HandleGetActivity(w http.ResponseWriter, r *http.Request) {
	activity := viewmodel.NewActivityAggregator(a.store, a.auth)
	defer activity.Close()

	if err := activity.Load(r.Context()); err != nil {
		if errors.Is(err, viewmodel.ErrSignInRequired) {
			respondWithError(w, http.StatusUnauthorized, err)
			return
		}

		a.logger.Error(fmt.Sprintf("error loading activity: %v", err), "service", "HandleGetActivity")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, models.HandleActivityResponse{
		Ratings:  activity.Ratings(),
		Comments: activity.Comments(),
	})
}

func (a *Api) HandleGetFavorites(w http.ResponseWriter, r *http.Request) {
	favorites := viewmodel.NewFavoritesCollectionLoader(a.store, a.auth)
	defer favorites.Close()

	if err := favorites.Load(r.Context()); err != nil {
		if errors.Is(err, viewmodel.ErrSignInRequired) {
			respondWithError(w, http.StatusUnauthorized, err)
			return
		}

		a.logger.Error(fmt.Sprintf("error loading favorites: %v", err), "service", "HandleGetFavorites")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, models.HandleFavoritesResponse{Favorites: favorites.Favorites()})
}
