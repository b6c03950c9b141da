package app

import (
	"context"
	"errors"
)

//
// This file contains convenience helpers you can use to easier test
// your calling code relying on this use case pattern.
//

var ErrUseCaseFailed = errors.New("use case failed")

// TestRequestHandler turns f into a Request, so a test can assert on the ctx and req passed in.
func TestRequestHandler[Req any, Res any](f func(ctx context.Context, req Req) (Res, error)) Request[Req, Res] {
	return QueryFunc[Req, Res](f)
}

func TestSuccessCommandHandler[C any]() Command[C] {
	return CommandFunc[C](func(context.Context, C) error { return nil })
}

func TestFailureCommandHandler[C any]() Command[C] {
	return CommandFunc[C](func(context.Context, C) error { return ErrUseCaseFailed })
}

func TestSuccessQueryHandler[Q any, Res any]() Query[Q, Res] {
	return QueryFunc[Q, Res](func(context.Context, Q) (Res, error) {
		var result Res

		return result, nil
	})
}

func TestFailureQueryHandler[Q any, Res any]() Query[Q, Res] {
	return QueryFunc[Q, Res](func(context.Context, Q) (Res, error) {
		var result Res

		return result, ErrUseCaseFailed
	})
}
