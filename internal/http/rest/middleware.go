package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/lucsky/cuid"
	"github.com/odezzy/wall_api/util/tracing"
	"github.com/odezzy/wall_api/util/values"
)

// RequestTracing handles the request tracing context
func RequestTracing(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := r.Header.Get(values.HeaderRequestID)
		if requestID == "" {
			requestID = cuid.New()
		}

		tracingContext := tracing.Context{
			RequestID:     requestID,
			RequestSource: r.Header.Get(values.HeaderRequestSource),
		}

		ctx = context.WithValue(ctx, values.ContextTracingKey, tracingContext)
		next.ServeHTTP(w, r.WithContext(ctx))
	}

	return http.HandlerFunc(fn)
}

// RequireModerator gates the moderation surface. The check is a bearer
// token with a moderator role claim; how the token was issued is
// outside this service.
func (api *API) RequireModerator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization := strings.Split(r.Header.Get("Authorization"), " ")
		if len(authorization) != 2 || authorization[0] != "Bearer" {
			writeErrorResponse(w, errors.New(values.NotAuthorised), values.NotAuthorised, "not-authorized")
			return
		}

		moderatorID, err := api.verifyModeratorToken(authorization[1])
		if err != nil {
			if err.Error() == "token expired" {
				writeErrorResponse(w, err, values.TokenExpired, "token-expired")
				return
			}
			writeErrorResponse(w, err, values.NotAuthorised, "invalid-token")
			return
		}

		ctx := context.WithValue(r.Context(), values.ContextModeratorKey, moderatorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (api *API) verifyModeratorToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(api.Config.JwtSecret), nil
	})

	if ve, ok := err.(*jwt.ValidationError); ok {
		if ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", fmt.Errorf("token expired")
		}
	}

	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid claims")
	}

	role, _ := claims["role"].(string)
	if role != "moderator" {
		return "", fmt.Errorf("not a moderator token")
	}

	moderatorID, ok := claims["sub"].(string)
	if !ok || moderatorID == "" {
		return "", fmt.Errorf("invalid subject")
	}

	return moderatorID, nil
}
