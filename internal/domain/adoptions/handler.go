package adoptions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/domain/users"
	"animal-shelter/internal/platform/supabase"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/animales/{animalID}/adoptar", adoptHandler(svc))
	r.Get("/adopciones", listAdoptionsHandler(svc))
}

type adoptRequest struct {
	AdopterName  string `json:"adoptante_nombre"`
	AdopterPhone string `json:"adoptante_telefono"`
	AdopterEmail string `json:"adoptante_email"`
}

func adoptHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := users.FromContext(r.Context())
		if !ok {
			http.Error(w, "no autenticado", http.StatusUnauthorized)
			return
		}

		animalID, err := strconv.ParseInt(chi.URLParam(r, "animalID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid animal id", http.StatusBadRequest)
			return
		}

		var req adoptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		created, err := svc.Adopt(r.Context(), actor, animalID, AdoptInput{
			AdopterName:  req.AdopterName,
			AdopterPhone: req.AdopterPhone,
			AdopterEmail: req.AdopterEmail,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "Ingrese el nombre del adoptante", http.StatusBadRequest)
			case errors.Is(err, ErrForbidden):
				http.Error(w, "No tienes permisos para esta acción", http.StatusForbidden)
			case errors.Is(err, animals.ErrNotFound):
				http.Error(w, "animal not found", http.StatusNotFound)
			default:
				writeAdoptionError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func listAdoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := users.FromContext(r.Context()); !ok {
			http.Error(w, "no autenticado", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListDetailed(r.Context())
		if err != nil {
			writeAdoptionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func writeAdoptionError(w http.ResponseWriter, err error) {
	var reqErr *supabase.RequestError
	if errors.As(err, &reqErr) {
		http.Error(w, reqErr.Error(), http.StatusBadGateway)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
