package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/efectlabs/parentcoach/internal/api/handlers"
	"github.com/efectlabs/parentcoach/internal/api/middleware"
	"github.com/efectlabs/parentcoach/internal/audiostore"
	"github.com/efectlabs/parentcoach/internal/prefs"
)

type Router struct {
	mux       *chi.Mux
	generator handlers.TipGenerator
	prefStore *prefs.Store
	audio     *audiostore.Store
}

func NewRouter(generator handlers.TipGenerator, prefStore *prefs.Store, audio *audiostore.Store) *Router {
	return &Router{
		mux:       chi.NewRouter(),
		generator: generator,
		prefStore: prefStore,
		audio:     audio,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	health := handlers.NewHealthHandler()
	r.Get("/healthz", health.Healthz)

	tipsH := handlers.NewTipsHandler(rt.generator)
	r.Post("/generate-tips", tipsH.Generate)

	prefH := handlers.NewPreferencesHandler(rt.prefStore)
	r.Post("/rate", prefH.Rate)
	r.Post("/set-repeat-preference", prefH.SetRepeatPreference)
	r.Get("/tip-preferences", prefH.Preferences)

	audioH := handlers.NewAudioHandler(rt.audio)
	r.Get("/audio/{filename}", audioH.Serve)

	return r
}
