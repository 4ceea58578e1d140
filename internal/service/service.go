// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives validated
// data from the handler, calls repository methods, and turns store failures
// into the client-facing errors of each operation. The driver details of a
// failure are logged here and never leave the process.
package service

import (
	"context"

	"github.com/deppfellow/recipe-portal/internal/sqlerr"
	"github.com/rs/zerolog"
)

// Client messages of failed store operations.
const (
	MsgFetchRecipes      = "Failed to fetch recipes"
	MsgFetchRecipeDetail = "Failed to fetch recipe detail"
	MsgAddRecipe         = "Failed to add recipe"
	MsgFetchCountries    = "Failed to fetch countries"
	MsgRecipeNotFound    = "Recipe not found"
)

// requestLogger prefers the request-scoped logger stored on ctx by the
// context enhancer middleware.
func requestLogger(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	if fallback != nil {
		return fallback
	}
	nop := zerolog.Nop()
	return &nop
}

// storeFailure logs err with its database diagnostics and returns the
// generic client error for the operation.
func storeFailure(ctx context.Context, fallback *zerolog.Logger, err error, operation, message string) error {
	event := requestLogger(ctx, fallback).Error().
		Err(err).
		Str("operation", operation)

	sqlerr.LogFields(event, err).Msg(message)

	return sqlerr.HandleError(err, message)
}
