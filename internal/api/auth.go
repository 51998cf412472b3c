package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/osariemen/comicbay/internal/auth"
	"github.com/osariemen/comicbay/internal/models"
	"github.com/osariemen/comicbay/internal/shared"
)

func (a *Api) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var params models.HandleCredentialsRequest

	if err := a.decodeJson(w, r, &params, "HandleRegister"); err != nil {
		return
	}

	if err := shared.Validate.Struct(&params); err != nil {
		a.logger.Warn(fmt.Sprintf("validation error: %v", err), "service", "HandleRegister")
		respondWithError(w, http.StatusBadRequest, fmt.Errorf("validation error: %v", err))
		return
	}

	if err := a.auth.SignUp(r.Context(), params.Email, params.Password); err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			respondWithError(w, http.StatusConflict, err)
			return
		}

		a.logger.Error(fmt.Sprintf("error signing up: %v", err), "service", "HandleRegister")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	respondWithSuccess(w, http.StatusCreated, a.sessionResponse())
}

func (a *Api) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var params models.HandleCredentialsRequest

	if err := a.decodeJson(w, r, &params, "HandleLogin"); err != nil {
		return
	}

	if err := shared.Validate.Struct(&params); err != nil {
		a.logger.Warn(fmt.Sprintf("validation error: %v", err), "service", "HandleLogin")
		respondWithError(w, http.StatusBadRequest, fmt.Errorf("validation error: %v", err))
		return
	}

	if err := a.auth.SignIn(r.Context(), params.Email, params.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, err)
			return
		}

		a.logger.Error(fmt.Sprintf("error signing in: %v", err), "service", "HandleLogin")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, a.sessionResponse())
}

func (a *Api) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := a.auth.SignOut(r.Context()); err != nil {
		a.logger.Error(fmt.Sprintf("error signing out: %v", err), "service", "HandleLogout")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, a.sessionResponse())
}

func (a *Api) HandleSession(w http.ResponseWriter, r *http.Request) {
	if err := a.session.Err(); err != nil {
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, a.sessionResponse())
}

func (a *Api) sessionResponse() models.HandleSessionResponse {
	var response models.HandleSessionResponse

	if session := a.session.Session(); session != nil {
		id := session.User.Id
		response.User_id = &id
		response.Email = session.User.Email
	}

	response.Display_name = a.profile.DisplayName()

	return response
}

func (a *Api) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	if err := a.profile.Err(); err != nil {
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, a.sessionResponse())
}

func (a *Api) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var params models.HandleUpdateProfileRequest

	if err := a.decodeJson(w, r, &params, "HandleUpdateProfile"); err != nil {
		return
	}

	if err := shared.Validate.Struct(&params); err != nil {
		a.logger.Warn(fmt.Sprintf("validation error: %v", err), "service", "HandleUpdateProfile")
		respondWithError(w, http.StatusBadRequest, fmt.Errorf("validation error: %v", err))
		return
	}

	if err := a.profile.Save(r.Context(), a.session.Session(), params.Display_name); err != nil {
		a.logger.Error(fmt.Sprintf("error saving profile: %v", err), "service", "HandleUpdateProfile")
		respondWithError(w, http.StatusInternalServerError, err)
		return
	}

	respondWithSuccess(w, http.StatusOK, a.sessionResponse())
}
