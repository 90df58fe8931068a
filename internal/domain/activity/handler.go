package activity

import (
	"encoding/json"
	"errors"
	"net/http"

	"animal-shelter/internal/domain/users"
	"animal-shelter/internal/platform/supabase"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/actividades", listActivityHandler(svc))
}

func listActivityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := users.FromContext(r.Context())
		if !ok {
			http.Error(w, "no autenticado", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), actor)
		if err != nil {
			var reqErr *supabase.RequestError
			switch {
			case errors.Is(err, ErrForbidden):
				http.Error(w, "forbidden", http.StatusForbidden)
			case errors.As(err, &reqErr):
				http.Error(w, reqErr.Error(), http.StatusBadGateway)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
