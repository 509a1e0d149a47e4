package server

import (
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"strings"

	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/golang-jwt/jwt/v5"
	"github.com/modu-soho/buzz_dashboard/internal/biz"
)

func writeMessage(w nethttp.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

// JWTAuth rejects requests without a valid bearer token and stores the token
// claims as a biz.Principal in the request context.
func JWTAuth(key string) khttp.FilterFunc {
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if header == "" || token == header {
				writeMessage(w, nethttp.StatusUnauthorized, "Authentication required")
				return
			}

			claims := jwt.MapClaims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(key), nil
			})
			if err != nil || !parsed.Valid {
				writeMessage(w, nethttp.StatusUnauthorized, "Invalid or expired token")
				return
			}

			p := &biz.Principal{}
			if sub, ok := claims["sub"].(string); ok {
				p.UserID = sub
			}
			if email, ok := claims["email"].(string); ok {
				p.Email = email
			}
			if role, ok := claims["role"].(string); ok {
				p.Role = role
			}

			next.ServeHTTP(w, r.WithContext(biz.WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireAdmin rejects authenticated requests whose principal lacks the
// admin role. It must run after JWTAuth.
func RequireAdmin() khttp.FilterFunc {
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			p, ok := biz.PrincipalFromContext(r.Context())
			if !ok || p.Role != biz.RoleAdmin {
				writeMessage(w, nethttp.StatusForbidden, "Admin role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
