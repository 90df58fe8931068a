package users

import "context"

type ctxKey struct{}

// NewContext inyecta el usuario autenticado en el contexto del request.
func NewContext(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext devuelve el usuario autenticado del contexto, si hay uno.
func FromContext(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(ctxKey{}).(User)
	return u, ok
}
