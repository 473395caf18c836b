package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"eko_market/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			// unauthorized zone
			r.Route("/deals", func(r chi.Router) {
				r.Get("/", handler(s.getV1Deals))
				r.Post("/refresh", handler(s.postV1DealsRefresh))
				r.Get("/export", handler(s.getV1DealsExport))
			})
			r.Get("/stats", handler(s.getV1Stats))
			r.Route("/chat", func(r chi.Router) {
				r.Post("/", handler(s.postV1Chat))
				r.Get("/greeting", handler(s.getV1ChatGreeting))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
