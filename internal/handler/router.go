package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	custommiddleware "github.com/mmeshcher/award-search/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса.
func (h *Handler) SetupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(h.clients.Middleware)

		r.Route("/airports", func(r chi.Router) {
			r.Get("/search", h.SearchAirports)
			r.Get("/distance", h.Distance)

			r.Get("/recent", h.RecentAirports)
			r.Post("/recent", h.RecordAirport)
			r.Delete("/recent", h.ClearRecentAirports)

			r.Get("/{code}", h.GetAirport)
		})

		r.Get("/search-awards", h.SearchAwards)

		r.Route("/history", func(r chi.Router) {
			r.Get("/searches", h.GetSearchHistory)
			r.Delete("/searches", h.ClearSearchHistory)
			r.Get("/searches/{id}", h.GetSearch)
			r.Post("/searches/{id}/repeat", h.RepeatSearch)

			r.Get("/results", h.GetLastResults)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	origins := h.corsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return corsHandler.Handler(r)
}
