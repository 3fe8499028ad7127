// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/polyladder/server/business/sdk/web"
	"github.com/polyladder/server/business/types/scope"
)

func checkIsError(e web.Encoder) error {
	err, hasError := e.(error)
	if hasError {
		return err
	}

	return nil
}

// =============================================================================

type ctxKey int

const (
	appIDKey ctxKey = iota + 1
	scopesKey
)

func setAppID(ctx context.Context, appID string) context.Context {
	return context.WithValue(ctx, appIDKey, appID)
}

// GetAppID returns the authenticated application id from the context.
func GetAppID(ctx context.Context) string {
	v, ok := ctx.Value(appIDKey).(string)
	if !ok {
		return ""
	}

	return v
}

func setScopes(ctx context.Context, scopes scope.Set) context.Context {
	return context.WithValue(ctx, scopesKey, scopes)
}

// GetScopes returns the granted scope set from the context.
func GetScopes(ctx context.Context) (scope.Set, error) {
	v, ok := ctx.Value(scopesKey).(scope.Set)
	if !ok {
		return nil, errors.New("scopes not found in context")
	}

	return v, nil
}
