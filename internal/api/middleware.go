package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/teris-io/shortid"

	"courier/internal/apperrors"
	"courier/internal/types"
)

type contextKey string

const (
	currentUserKey contextKey = "current-user"
	requestIdKey   contextKey = "request-id"
)

const requestIdHeader = "X-Request-Id"

func WithCurrentUser(ctx context.Context, user types.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

func CurrentUser(ctx context.Context) (types.User, bool) {
	user, ok := ctx.Value(currentUserKey).(types.User)
	return user, ok
}

func RequestId(ctx context.Context) string {
	id, _ := ctx.Value(requestIdKey).(string)
	return id
}

func (a *CourierApp) recoveryHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				var panicError error
				switch e := err.(type) {
				case error:
					panicError = e
				default:
					panicError = fmt.Errorf("%v", e)
				}
				a.log.Printf("panic: %v", panicError)
				w.Header().Set("Connection", "close")
				a.writeJson(w, http.StatusInternalServerError, errorBody{Detail: errorDetail{
					Error:            "internal_error",
					ErrorDescription: "internal server error",
				}})
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requestIdHandler tags every request with a short id, echoed in the
// response header for log correlation.
func (a *CourierApp) requestIdHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := shortid.Generate()
		if err != nil {
			a.log.Printf("generate request id: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set(requestIdHeader, id)
		ctx := context.WithValue(r.Context(), requestIdKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authMiddleware resolves the Authorization bearer token to a user and
// stores it on the request context. A missing or malformed header is
// rejected the same way as an invalid token.
func (a *CourierApp) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			a.writeError(w, apperrors.NewInvalidToken())
			return
		}

		user, err := a.auth.ResolveIdentity(tokenString)
		if err != nil {
			a.log.Printf("resolve identity: %v", err)
			a.writeError(w, err)
			return
		}

		ctx := WithCurrentUser(r.Context(), user)
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")

		next(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
