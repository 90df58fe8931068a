package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"animal-shelter/internal/platform/supabase"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/auth/register", registerHandler(svc))
	r.Post("/auth/login", loginHandler(svc))
	r.Post("/auth/logout", logoutHandler(svc))
	r.Get("/auth/me", meHandler())

	// Administración de usuarios (solo rol administrador)
	r.Get("/usuarios", listUsersHandler(svc))
	r.Patch("/usuarios/{userID}/rol", changeRoleHandler(svc))
	r.Patch("/usuarios/{userID}/estado", toggleActiveHandler(svc))
}

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse nunca incluye la contraseña.
type userResponse struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         Role      `json:"rol"`
	Active       bool      `json:"activo"`
	RegisteredAt time.Time `json:"fecha_registro"`
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		Active:       u.Active,
		RegisteredAt: u.RegisteredAt,
	}
}

func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "Por favor completa todos los campos (contraseña mínimo 6 caracteres)", http.StatusBadRequest)
			case errors.Is(err, ErrDuplicateUsername):
				http.Error(w, "El nombre de usuario ya está en uso", http.StatusConflict)
			case errors.Is(err, ErrDuplicateEmail):
				http.Error(w, "El email ya está registrado", http.StatusConflict)
			default:
				writeUpstreamError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "Por favor completa todos los campos", http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "Usuario no encontrado", http.StatusUnauthorized)
			case errors.Is(err, ErrWrongPassword):
				http.Error(w, "Contraseña incorrecta", http.StatusUnauthorized)
			case errors.Is(err, ErrAccountDisabled):
				http.Error(w, "Usuario desactivado. Contacta al administrador", http.StatusForbidden)
			default:
				writeUpstreamError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func logoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.Logout(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}

func meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := FromContext(r.Context())
		if !ok {
			http.Error(w, "no autenticado", http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := FromContext(r.Context())
		if !ok {
			http.Error(w, "no autenticado", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), actor)
		if err != nil {
			if errors.Is(err, ErrForbidden) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			writeUpstreamError(w, err)
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type changeRoleRequest struct {
	Role Role `json:"rol"`
}

func changeRoleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := FromContext(r.Context())
		if !ok {
			http.Error(w, "no autenticado", http.StatusUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		var req changeRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.ChangeRole(r.Context(), actor, userID, req.Role); err != nil {
			writeUserOpError(w, err)
			return
		}

		// refresh completo tras la mutación, como la vista original
		items, err := svc.List(r.Context(), actor)
		if err != nil {
			writeUpstreamError(w, err)
			return
		}
		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toggleActiveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := FromContext(r.Context())
		if !ok {
			http.Error(w, "no autenticado", http.StatusUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		active, err := svc.ToggleActive(r.Context(), actor, userID)
		if err != nil {
			writeUserOpError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"id": userID, "activo": active})
	}
}

func writeUserOpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		http.Error(w, "No tienes permisos para esta acción", http.StatusForbidden)
	case errors.Is(err, ErrProtectedUser):
		http.Error(w, "Usuario protegido", http.StatusForbidden)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "Usuario no encontrado", http.StatusNotFound)
	default:
		writeUpstreamError(w, err)
	}
}

// writeUpstreamError distingue los fallos del servicio remoto (se muestran
// con su body, nunca se reintentan en silencio) de errores internos.
func writeUpstreamError(w http.ResponseWriter, err error) {
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
