// Package common holds what every controller needs to register its routes.
package common

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nerdwave-nick/counterdex/internal/pokemon"
)

type RouteCreationContext struct {
	API    huma.API
	Prefix string
}

type Controller interface {
	RegisterRoutes(rctx RouteCreationContext)
}

// AddHumaRoute registers handler under the context prefix.
func AddHumaRoute[I, O any](rctx RouteCreationContext, handler func(context.Context, *I) (*O, huma.StatusError), op huma.Operation) {
	op.Path = rctx.Prefix + op.Path
	if op.OperationID == "" {
		op.OperationID = huma.GenerateOperationID(op.Method, op.Path, new(O))
	}
	huma.Register(rctx.API, op, func(ctx context.Context, input *I) (*O, error) {
		out, err := handler(ctx, input)
		if err != nil {
			return nil, err
		}
		return out, nil
	})
}

// StatusFromError maps the domain error taxonomy onto http errors.
func StatusFromError(err error) huma.StatusError {
	switch {
	case errors.Is(err, pokemon.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, pokemon.ErrLookupFailure):
		slog.Error("upstream lookup failed", slog.Any("error", err))
		return huma.Error502BadGateway("upstream lookup failed", err)
	case errors.Is(err, pokemon.ErrComputationFailure):
		slog.Error("computation failed", slog.Any("error", err))
		return huma.Error500InternalServerError("computation failed", err)
	default:
		slog.Error("request failed", slog.Any("error", err))
		return huma.Error500InternalServerError("internal server error")
	}
}
