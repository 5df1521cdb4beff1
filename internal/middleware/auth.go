package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"pokerpal/internal/auth"
)

// RequireAuth returns an interceptor that rejects calls without a valid
// bearer token. Procedures listed in exempt (e.g. the join call that hands
// out tokens in the first place) pass through unchecked.
func RequireAuth(jwtManager *auth.JWTManager, exempt ...string) connect.UnaryInterceptorFunc {
	exemptSet := make(map[string]struct{}, len(exempt))
	for _, p := range exempt {
		exemptSet[p] = struct{}{}
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if _, ok := exemptSet[req.Spec().Procedure]; ok {
				return next(ctx, req)
			}

			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			if err := jwtManager.Validate(parts[1]); err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(ctx, req)
		}
	}
}
