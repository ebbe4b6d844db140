package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/readlist/internal/api/handlers"
	"github.com/hoanghai1803/readlist/internal/browser"
	"github.com/hoanghai1803/readlist/internal/config"
	"github.com/hoanghai1803/readlist/internal/feeds"
	"github.com/hoanghai1803/readlist/internal/readinglist"
)

// NewRouter creates and configures the HTTP router with the JSON API under
// /api and the server-rendered popup at the root.
func NewRouter(svc *readinglist.Service, fetcher *feeds.Fetcher, opener browser.Opener, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()
	defaultSort := cfg.ReadingList.DefaultSort

	// Global middleware.
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS(cfg.Server.AllowedOrigins...))

	// API sub-router.
	r.Route("/api", func(api chi.Router) {
		api.Get("/reading-list", handlers.GetReadingList(svc, defaultSort))
		api.Post("/reading-list", handlers.AddToReadingList(svc))
		api.Post("/reading-list/current", handlers.AddCurrentPage(svc, fetcher))
		api.Post("/reading-list/import", handlers.ImportFeed(svc, fetcher))
		api.Get("/reading-list/export", handlers.ExportReadingList(svc))
		api.Patch("/reading-list/{id}/read", handlers.ToggleReadingListItem(svc))
		api.Post("/reading-list/{id}/open", handlers.OpenReadingListItem(svc, opener))
		api.Delete("/reading-list/{id}", handlers.DeleteReadingListItem(svc))
	})

	// Popup page and its form targets.
	r.Get("/", handlers.Popup(svc, defaultSort))
	r.Post("/add", handlers.PopupAdd(svc, defaultSort))
	r.Post("/add-current", handlers.PopupAddCurrent(svc, fetcher, defaultSort))
	r.Post("/items/{id}/toggle", handlers.PopupToggle(svc, defaultSort))
	r.Post("/items/{id}/delete", handlers.PopupDelete(svc, defaultSort))

	return r
}
