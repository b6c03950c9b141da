package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	ctx2 "github.com/angoly-ara/inventory/ctx"
)

const CtxValidated ctx2.CTXKey = "inventory.validated"

// ErrInvalidInput wraps the validator.ValidationErrors of a rejected request.
var ErrInvalidInput = errors.New("invalid input")

// PassedValidation is a helper giving you feedback, if a request passed validation of this decorator.
// Use it in case you want to ensure that the decorator was called before continuing with your business logic.
func PassedValidation(ctx context.Context) bool {
	if v, ok := ctx.Value(CtxValidated).(bool); ok {
		return v
	}

	return false
}

func validate(v *validator.Validate, in any) error {
	if err := v.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return nil
}

func NewValidatedRequest[Req any, Res any](validate *validator.Validate, req Request[Req, Res]) Request[Req, Res] {
	if validate == nil {
		validate = validator.New()
	}

	return &requestValidatingDecorator[Req, Res]{
		validate: validate,
		base:     req,
	}
}

type requestValidatingDecorator[Req any, Res any] struct {
	validate *validator.Validate
	base     Request[Req, Res]
}

func (d *requestValidatingDecorator[Req, Res]) H(ctx context.Context, req Req) (Res, error) { //nolint:ireturn,lll // valid use of generics
	if err := validate(d.validate, req); err != nil {
		return *new(Res), err
	}

	return d.base.H(context.WithValue(ctx, CtxValidated, true), req) //nolint:wrapcheck // decorate but not change anything
}

func NewValidatedCommand[C any](validate *validator.Validate, cmd Command[C]) Command[C] {
	if validate == nil {
		validate = validator.New()
	}

	return &commandValidatingDecorator[C]{
		validate: validate,
		base:     cmd,
	}
}

type commandValidatingDecorator[C any] struct {
	validate *validator.Validate
	base     Command[C]
}

func (d *commandValidatingDecorator[C]) H(ctx context.Context, cmd C) error {
	if err := validate(d.validate, cmd); err != nil {
		return err
	}

	return d.base.H(context.WithValue(ctx, CtxValidated, true), cmd) //nolint:wrapcheck // decorate but not change anything
}

func NewValidatedQuery[Q any, Res any](validate *validator.Validate, query Query[Q, Res]) Query[Q, Res] {
	if validate == nil {
		validate = validator.New()
	}

	return &queryValidatingDecorator[Q, Res]{
		validate: validate,
		base:     query,
	}
}

type queryValidatingDecorator[Q any, Res any] struct {
	validate *validator.Validate
	base     Query[Q, Res]
}

func (d *queryValidatingDecorator[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn,lll // valid use of generics
	if err := validate(d.validate, query); err != nil {
		return *new(Res), err
	}

	return d.base.H(context.WithValue(ctx, CtxValidated, true), query) //nolint:wrapcheck // decorate but not change anything
}
