// Package app provides common decorators for use cases in the application layer.
package app

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/angoly-ara/inventory/alog"
)

// Request can produce side effects and return data.
type Request[Req any, Res any] interface {
	H(ctx context.Context, req Req) (Res, error)
}

// Command produces side effects, e.g. mutate state.
type Command[C any] interface {
	H(ctx context.Context, cmd C) error
}

// Query does not produce side effects and returns data.
type Query[Q any, Res any] interface {
	H(ctx context.Context, query Q) (Res, error)
}

// CommandFunc adapts a function to a Command.
type CommandFunc[C any] func(ctx context.Context, cmd C) error

func (f CommandFunc[C]) H(ctx context.Context, cmd C) error {
	return f(ctx, cmd)
}

// QueryFunc adapts a function to a Query.
type QueryFunc[Q any, Res any] func(ctx context.Context, query Q) (Res, error)

func (f QueryFunc[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn // valid use of generics
	return f(ctx, query)
}

// NewInstrumentedCommand is a convenience helper for easy dependency setup.
// The order of dependencies represents the order of calling:
// the command is logged first and validated second.
func NewInstrumentedCommand[C any](logger alog.Logger, validate *validator.Validate, cmd Command[C]) Command[C] {
	return NewLoggedCommand(logger, NewValidatedCommand(validate, cmd))
}

// NewInstrumentedQuery is a convenience helper for easy dependency setup.
// The order of dependencies represents the order of calling.
func NewInstrumentedQuery[Q any, Res any](logger alog.Logger, validate *validator.Validate, query Query[Q, Res]) Query[Q, Res] {
	return NewLoggedQuery(logger, NewValidatedQuery(validate, query))
}

// commandName extracts a printable name from cmd in the format of: packageName.structName.
// Type parameters are printed without their package path, e.g. catalog.AddCommand[Client].
func commandName(cmd any) string {
	t := reflect.TypeOf(cmd)
	if t == nil {
		return "<nil>"
	}

	name := fmt.Sprintf("%T", cmd)

	if pkgPath := t.PkgPath(); pkgPath != "" {
		name = strings.ReplaceAll(name, pkgPath+".", "")
	}

	return name
}
