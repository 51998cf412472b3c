package shared

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/osariemen/comicbay/internal/auth"
	"github.com/osariemen/comicbay/internal/config"
	"github.com/osariemen/comicbay/internal/logger"
	"github.com/osariemen/comicbay/internal/store"
)

type Server struct {
	Router *chi.Mux
	Logger logger.Logger
	Store  store.Store
	Auth   auth.Service
	Config *config.Config
}

var Validate = validator.New()
