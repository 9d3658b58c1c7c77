package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/O-Gamal/FIlePlace/internal/ctxkeys"
	"github.com/O-Gamal/FIlePlace/internal/model"
)

// UserResolver maps a token identifier to the local user record.
type UserResolver interface {
	Resolve(tokenIdentifier string) (*model.User, error)
}

// AuthMiddleware verifies the bearer token issued by the identity provider
// and adds the resolved user to the request context. Requests without a
// valid token continue unauthenticated; handlers decide whether that is
// acceptable (reads degrade to empty results, writes require a user).
func AuthMiddleware(resolver UserResolver, jwtSecret, issuer string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				next.ServeHTTP(w, r)
				return
			}

			subject, err := verifyToken(parts[1], jwtSecret, issuer)
			if err != nil {
				// Invalid token, continue without auth
				next.ServeHTTP(w, r)
				return
			}

			// The token identifier is the external-facing join key to the
			// local user record: issuer + "|" + subject.
			user, err := resolver.Resolve(issuer + "|" + subject)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func verifyToken(tokenString, secret, issuer string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("token missing subject")
	}

	return subject, nil
}
