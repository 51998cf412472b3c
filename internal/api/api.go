package api

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/osariemen/comicbay/internal/auth"
	"github.com/osariemen/comicbay/internal/config"
	"github.com/osariemen/comicbay/internal/logger"
	"github.com/osariemen/comicbay/internal/shared"
	"github.com/osariemen/comicbay/internal/store"
	"github.com/osariemen/comicbay/internal/viewmodel"
)

// Api is the thin surface the UI talks to. The long-lived units — the
// session manager, the profile resolver tied to it, and the websocket hub —
// live here for the process lifetime; everything keyed by a route param is
// built per request.
type Api struct {
	router  *chi.Mux
	logger  logger.Logger
	store   store.Store
	auth    auth.Service
	config  *config.Config
	session *viewmodel.SessionManager
	profile *viewmodel.ProfileResolver
	hub     *hub

	cancelWatch func()
	watchDone   chan struct{}
}

func New(server *shared.Server) *Api {
	return &Api{
		router:  server.Router,
		logger:  server.Logger,
		store:   server.Store,
		auth:    server.Auth,
		config:  server.Config,
		session: viewmodel.NewSessionManager(server.Auth),
		profile: viewmodel.NewProfileResolver(server.Store),
		hub:     newHub(),
	}
}

// Start brings up the session manager, begins re-resolving the profile on
// every session change, and starts the websocket hub.
func (a *Api) Start(ctx context.Context) error {
	go a.hub.run()

	if err := a.session.Start(ctx); err != nil {
		a.logger.Warn("session retrieval failed on startup", "error", err.Error())
	}

	if err := a.profile.Resolve(ctx, a.session.Session()); err != nil {
		a.logger.Warn("profile resolution failed on startup", "error", err.Error())
	}

	ch, cancel := a.auth.Subscribe()
	a.cancelWatch = cancel
	a.watchDone = make(chan struct{})

	go a.watchSessions(ctx, ch)

	return nil
}

func (a *Api) watchSessions(ctx context.Context, ch <-chan *auth.Session) {
	defer close(a.watchDone)

	for session := range ch {
		if err := a.profile.Resolve(ctx, session); err != nil {
			a.logger.Warn("profile resolution failed", "error", err.Error())
		}

		a.hub.broadcast <- sessionEventFrom(session)
	}
}

func (a *Api) Close() {
	if a.cancelWatch != nil {
		a.cancelWatch()
		<-a.watchDone
	}

	a.session.Close()
	a.profile.Close()
}

func (a *Api) RegisterRoutes() {
	a.router.Route("/api/v1", func(r chi.Router) {
		r.Use(a.LoggingMiddleware)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", a.HandleRegister)
			r.Post("/login", a.HandleLogin)
			r.Post("/logout", a.HandleLogout)
			r.Get("/session", a.HandleSession)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(a.RequireSession)
			r.Get("/", a.HandleGetProfile)
			r.Put("/", a.HandleUpdateProfile)
		})

		r.Route("/comics", func(r chi.Router) {
			r.Get("/", a.HandleGetComics)

			r.Route("/{comicId}", func(r chi.Router) {
				r.Get("/", a.HandleGetComic)
				r.With(a.RequireSession).Post("/favorite", a.HandleToggleFavorite)
				r.Get("/ratings", a.HandleGetRatings)
				r.With(a.RequireSession).Put("/ratings", a.HandleSetRating)
				r.Get("/comments", a.HandleGetComments)
				r.With(a.RequireSession).Post("/comments", a.HandleAddComment)
			})
		})

		r.Get("/chapters/{chapterId}/pages", a.HandleGetPages)

		r.With(a.RequireSession).Get("/activity", a.HandleGetActivity)
		r.With(a.RequireSession).Get("/favorites", a.HandleGetFavorites)

		r.Get("/ws", a.HandleWS)
	})
}
