package middleware

import (
	"context"
	"net/http"

	"github.com/vancomm/minesweeper/internal/config"
)

type CtxKey int

const (
	CtxPlayerClaims CtxKey = iota
	CtxLogger
)

// ClaimsParser reads player claims from a request.
type ClaimsParser interface {
	ParsePlayerClaims(r *http.Request) (*config.PlayerClaims, error)
}

// Auth stores valid player claims in the request context. Requests
// without valid claims pass through anonymously.
func Auth(parser ClaimsParser) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := parser.ParsePlayerClaims(r)
			if err != nil {
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxPlayerClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func PlayerClaims(ctx context.Context) (*config.PlayerClaims, bool) {
	claims, ok := ctx.Value(CtxPlayerClaims).(*config.PlayerClaims)
	return claims, ok
}
