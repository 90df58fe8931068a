package middleware

import (
	"net/http"

	"animal-shelter/internal/domain/users"
	"animal-shelter/internal/session"
)

// SessionContext:
// - Si el Store tiene un usuario autenticado, lo inyecta en el contexto.
// - Si no hay sesión, el request sigue igual; los handlers deciden si
//   exigen autenticación.
func SessionContext(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, ok := store.Current(); ok {
				next.ServeHTTP(w, r.WithContext(users.NewContext(r.Context(), u)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
