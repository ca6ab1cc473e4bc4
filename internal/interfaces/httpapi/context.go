package httpapi

import (
	"context"
	"fmt"

	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/domain/user"
	"github.com/FRBCAPL/FrontRangeHub-sub000/internal/usecase"
)

type contextKey string

const principalContextKey contextKey = "auth_principal"

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	p, ok := principalFromContext(ctx)
	if !ok || p.UserID == "" {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return p, nil
}

// requireAdmin guards ladder-wide operations such as repairs and removals.
func requireAdmin(ctx context.Context) (user.Principal, error) {
	p, err := requirePrincipal(ctx)
	if err != nil {
		return user.Principal{}, err
	}
	if !p.IsAdmin() {
		return user.Principal{}, fmt.Errorf("%w: admin role required", usecase.ErrForbidden)
	}
	return p, nil
}
