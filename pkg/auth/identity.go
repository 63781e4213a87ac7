package auth

import (
	"net/http"
	"strings"

	"github.com/awslabs/aws-lambda-go-api-proxy/core"
)

// Identity sources, recorded on UserContext.Source
const (
	SourceAPIGateway   = "apigateway"
	SourceAPIGatewayV2 = "apigateway-v2"
	SourceHeader       = "header"
	SourceBearer       = "bearer"
)

// IdentityResolver finds the caller of a request. It returns a nil user and
// nil error when its source carries no identity, and an error when a
// credential is present but cannot be trusted.
type IdentityResolver interface {
	Resolve(r *http.Request) (*UserContext, error)
}

// ResolverFunc adapts a function to IdentityResolver
type ResolverFunc func(r *http.Request) (*UserContext, error)

func (f ResolverFunc) Resolve(r *http.Request) (*UserContext, error) {
	return f(r)
}

// APIGatewayClaims reads the Cognito subject that a REST API (payload v1)
// authorizer placed in the proxied request context.
func APIGatewayClaims() IdentityResolver {
	return ResolverFunc(func(r *http.Request) (*UserContext, error) {
		reqCtx, ok := core.GetAPIGatewayContextFromContext(r.Context())
		if !ok || reqCtx.Authorizer == nil {
			return nil, nil
		}

		claims, ok := reqCtx.Authorizer["claims"].(map[string]interface{})
		if !ok {
			return nil, nil
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			return nil, nil
		}
		return &UserContext{UserID: sub, Source: SourceAPIGateway}, nil
	})
}

// APIGatewayV2Claims reads the JWT authorizer subject of an HTTP API
// (payload v2) request.
func APIGatewayV2Claims() IdentityResolver {
	return ResolverFunc(func(r *http.Request) (*UserContext, error) {
		reqCtx, ok := core.GetAPIGatewayV2ContextFromContext(r.Context())
		if !ok || reqCtx.Authorizer == nil || reqCtx.Authorizer.JWT == nil {
			return nil, nil
		}

		sub := reqCtx.Authorizer.JWT.Claims["sub"]
		if sub == "" {
			return nil, nil
		}
		return &UserContext{UserID: sub, Source: SourceAPIGatewayV2}, nil
	})
}

// TrustedHeader takes the caller from a header set by a fronting proxy
func TrustedHeader(name string) IdentityResolver {
	return ResolverFunc(func(r *http.Request) (*UserContext, error) {
		userID := strings.TrimSpace(r.Header.Get(name))
		if userID == "" {
			return nil, nil
		}
		return &UserContext{UserID: userID, Source: SourceHeader}, nil
	})
}

// BearerToken verifies the Authorization header with v. Both "Bearer <jwt>"
// and a bare token are accepted.
func BearerToken(v *JWTValidator) IdentityResolver {
	return ResolverFunc(func(r *http.Request) (*UserContext, error) {
		header := r.Header.Get("Authorization")
		if header == "" {
			return nil, nil
		}

		claims, err := v.ValidateToken(header)
		if err != nil {
			return nil, err
		}
		return &UserContext{UserID: claims.Subject, Source: SourceBearer}, nil
	})
}

// Chain tries each resolver in order and stops at the first identity or error
func Chain(resolvers ...IdentityResolver) IdentityResolver {
	return ResolverFunc(func(r *http.Request) (*UserContext, error) {
		for _, resolver := range resolvers {
			user, err := resolver.Resolve(r)
			if err != nil {
				return nil, err
			}
			if user != nil {
				return user, nil
			}
		}
		return nil, nil
	})
}
