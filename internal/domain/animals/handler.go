package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"animal-shelter/internal/domain/users"
	"animal-shelter/internal/platform/supabase"

	"github.com/go-chi/chi/v5"
)

// Rutas planas (sin Route/Mount) para que adopciones pueda colgar
// /animales/{animalID}/adoptar sin conflicto de patrones.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/animales", listAnimalsHandler(svc))
	r.Post("/animales", saveAnimalHandler(svc))
	r.Get("/animales/{animalID}", getAnimalHandler(svc))
	r.Patch("/animales/{animalID}", saveAnimalHandler(svc))
	r.Delete("/animales/{animalID}", deleteAnimalHandler(svc))

	r.Get("/catalogo/especies", listSpeciesHandler(svc))
	r.Get("/catalogo/razas", listBreedsHandler(svc))
	r.Get("/catalogo/estados-salud", listHealthStatusesHandler(svc))
}

type animalRequest struct {
	Name           string `json:"nombre"`
	SpeciesID      int64  `json:"especie_id"`
	BreedID        int64  `json:"raza_id"`
	Age            string `json:"edad"`
	Gender         string `json:"genero"`
	Color          string `json:"color"`
	State          string `json:"estado"`
	HealthStatusID int64  `json:"estado_salud_id"`
	Description    string `json:"descripcion"`
	Vaccinated     string `json:"vacunado"`
}

// animalResponse lleva además los nombres resueltos de los catálogos,
// que es lo que la vista original muestra en cada tarjeta.
type animalResponse struct {
	ID               int64      `json:"id"`
	Name             string     `json:"nombre"`
	SpeciesID        int64      `json:"especie_id"`
	SpeciesName      string     `json:"especie_nombre"`
	BreedID          int64      `json:"raza_id"`
	BreedName        string     `json:"raza_nombre"`
	Age              string     `json:"edad"`
	Gender           string     `json:"genero"`
	Color            string     `json:"color"`
	State            string     `json:"estado"`
	HealthStatusID   int64      `json:"estado_salud_id"`
	HealthStatusName string     `json:"estado_salud_nombre"`
	Description      string     `json:"descripcion"`
	Vaccinated       string     `json:"vacunado"`
	CreatorUserID    int64      `json:"usuario_creador_id"`
	IntakeAt         time.Time  `json:"fecha_ingreso"`
	UpdatedAt        *time.Time `json:"fecha_actualizacion,omitempty"`
}

func toAnimalResponse(a Animal, cat Catalog) animalResponse {
	return animalResponse{
		ID:               a.ID,
		Name:             a.Name,
		SpeciesID:        a.SpeciesID,
		SpeciesName:      cat.SpeciesName(a.SpeciesID),
		BreedID:          a.BreedID,
		BreedName:        cat.BreedName(a.BreedID),
		Age:              a.Age,
		Gender:           a.Gender,
		Color:            a.Color,
		State:            a.State,
		HealthStatusID:   a.HealthStatusID,
		HealthStatusName: cat.HealthStatusName(a.HealthStatusID),
		Description:      a.Description,
		Vaccinated:       a.Vaccinated,
		CreatorUserID:    a.CreatorUserID,
		IntakeAt:         a.IntakeAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// listAnimalsHandler refresca el snapshot y aplica los filtros de query:
// q (texto), especie (nombre) y estado.
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := users.FromContext(r.Context()); !ok {
			http.Error(w, "no autenticado", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			writeAnimalError(w, err)
			return
		}

		cat, err := svc.Catalog(r.Context())
		if err != nil {
			writeAnimalError(w, err)
			return
		}

		opts := FilterOptions{
			Text:    r.URL.Query().Get("q"),
			Species: strings.TrimSpace(r.URL.Query().Get("especie")),
			State:   strings.TrimSpace(r.URL.Query().Get("estado")),
		}
		filtered := Filter(items, cat, opts)

		out := make([]animalResponse, 0, len(filtered))
		for _, a := range filtered {
			out = append(out, toAnimalResponse(a, cat))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := users.FromContext(r.Context()); !ok {
			http.Error(w, "no autenticado", http.StatusUnauthorized)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "animalID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid animal id", http.StatusBadRequest)
			return
		}

		a, err := svc.Get(r.Context(), id)
		if err != nil {
			writeAnimalError(w, err)
			return
		}

		cat, err := svc.Catalog(r.Context())
		if err != nil {
			writeAnimalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a, cat))
	}
}

// saveAnimalHandler atiende el POST (crear) y el PATCH (editar): el id de
// la URL decide el modo, igual que editingAnimalId en el formulario
// original.
func saveAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := users.FromContext(r.Context())
		if !ok {
			http.Error(w, "no autenticado", http.StatusUnauthorized)
			return
		}

		var editingID int64
		if raw := chi.URLParam(r, "animalID"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				http.Error(w, "invalid animal id", http.StatusBadRequest)
				return
			}
			editingID = id
		}

		var req animalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		saved, err := svc.Save(r.Context(), actor, SaveInput{
			Name:           req.Name,
			SpeciesID:      req.SpeciesID,
			BreedID:        req.BreedID,
			Age:            req.Age,
			Gender:         req.Gender,
			Color:          req.Color,
			State:          req.State,
			HealthStatusID: req.HealthStatusID,
			Description:    req.Description,
			Vaccinated:     req.Vaccinated,
		}, editingID)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "Por favor completa todos los campos obligatorios", http.StatusBadRequest)
			case errors.Is(err, ErrForbidden):
				http.Error(w, "No tienes permisos para esta acción", http.StatusForbidden)
			default:
				writeAnimalError(w, err)
			}
			return
		}

		status := http.StatusOK
		if editingID == 0 {
			status = http.StatusCreated
		}

		cat, err := svc.Catalog(r.Context())
		if err != nil {
			writeAnimalError(w, err)
			return
		}
		writeJSON(w, status, toAnimalResponse(saved, cat))
	}
}

func deleteAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := users.FromContext(r.Context())
		if !ok {
			http.Error(w, "no autenticado", http.StatusUnauthorized)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "animalID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid animal id", http.StatusBadRequest)
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			switch {
			case errors.Is(err, ErrForbidden):
				http.Error(w, "Solo los administradores pueden eliminar animales", http.StatusForbidden)
			default:
				writeAnimalError(w, err)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func listSpeciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := users.FromContext(r.Context()); !ok {
			http.Error(w, "no autenticado", http.StatusUnauthorized)
			return
		}

		cat, err := svc.Catalog(r.Context())
		if err != nil {
			writeAnimalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cat.Species)
	}
}

// listBreedsHandler acepta ?especie_id= para el combo dependiente del
// formulario (razas de la especie elegida).
func listBreedsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := users.FromContext(r.Context()); !ok {
			http.Error(w, "no autenticado", http.StatusUnauthorized)
			return
		}

		cat, err := svc.Catalog(r.Context())
		if err != nil {
			writeAnimalError(w, err)
			return
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("especie_id")); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				http.Error(w, "invalid especie_id", http.StatusBadRequest)
				return
			}
			writeJSON(w, http.StatusOK, cat.BreedsBySpecies(id))
			return
		}

		writeJSON(w, http.StatusOK, cat.Breeds)
	}
}

func listHealthStatusesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := users.FromContext(r.Context()); !ok {
			http.Error(w, "no autenticado", http.StatusUnauthorized)
			return
		}

		cat, err := svc.Catalog(r.Context())
		if err != nil {
			writeAnimalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cat.Statuses)
	}
}

func writeAnimalError(w http.ResponseWriter, err error) {
	var reqErr *supabase.RequestError
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.As(err, &reqErr):
		http.Error(w, reqErr.Error(), http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos
// módulos para evitar crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
