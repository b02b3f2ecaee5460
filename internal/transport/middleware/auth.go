package middleware

import (
	"crypto/rsa"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hrops/backoffice/internal"
	"github.com/hrops/backoffice/pkg/logger"
)

// ActorContext identifies the calling HR user from a bearer token and puts
// the actor id on the request context. It verifies signature and expiry only;
// there is no role model, every authenticated user reaches every route.
func ActorContext(publicKey *rsa.PublicKey, lg *slog.Logger) func(http.Handler) http.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				writeUnauthorized(w, "missing bearer token")
				return
			}

			claims := jwt.RegisteredClaims{}
			_, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
				return publicKey, nil
			})
			if err != nil {
				lg.Warn("token rejected", "error", err)
				writeUnauthorized(w, "invalid token")
				return
			}

			actorID, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil || actorID <= 0 {
				lg.Warn("token subject is not an actor id", "subject", claims.Subject)
				writeUnauthorized(w, "invalid token")
				return
			}

			ctx := internal.ContextWithActor(r.Context(), actorID)
			ctx = logger.With(ctx, "actorID", actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    http.StatusUnauthorized,
		"message": message,
	})
}
