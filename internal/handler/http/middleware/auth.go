package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type sessionKey struct{}

// WithSession stores the caller's session in ctx.
func WithSession(ctx context.Context, session user.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSession returns the caller's session, or the public session when none was resolved.
func GetSession(ctx context.Context) user.Session {
	if s, ok := ctx.Value(sessionKey{}).(user.Session); ok {
		return s
	}
	return user.PublicSession()
}

// GetCapabilities resolves the capabilities of the caller.
func GetCapabilities(ctx context.Context) user.Capabilities {
	return user.Resolve(GetSession(ctx))
}

// SessionRequired rejects requests without a valid, unrevoked access token and
// puts the session carried by the token into the request context.
func SessionRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if raw := jwtauth.TokenFromHeader(r); raw != "" && jwtService.IsTokenRevoked(raw) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			session, err := jwtService.SessionFromClaims(claims)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		}
		return http.HandlerFunc(hfn)
	}
}
