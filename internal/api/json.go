package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osariemen/comicbay/internal/models"
)

func respondWithSuccess(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func respondWithError(w http.ResponseWriter, code int, error error) {
	respondWithSuccess(w, code, models.ErrorResponse{Error: error.Error()})
}

func (a *Api) decodeJson(w http.ResponseWriter, r *http.Request, params any, service string) error {
	err := json.NewDecoder(r.Body).Decode(&params)

	if err != nil {
		a.logger.Warn(fmt.Sprintf("error decoding json: %v", err), "service", service)
		respondWithError(w, http.StatusBadRequest, fmt.Errorf("error decoding json: %v", err))
	}

	return err
}
