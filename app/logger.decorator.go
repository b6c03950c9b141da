package app

import (
	"context"
	"log/slog"

	"github.com/angoly-ara/inventory/alog"
)

func NewLoggedRequest[Req any, Res any](logger alog.Logger, handler Request[Req, Res]) Request[Req, Res] {
	return &requestLoggingDecorator[Req, Res]{
		logger: logger,
		base:   handler,
	}
}

type requestLoggingDecorator[Req any, Res any] struct {
	logger alog.Logger
	base   Request[Req, Res]
}

func (d *requestLoggingDecorator[Req, Res]) H(ctx context.Context, req Req) (Res, error) { //nolint:ireturn,lll // valid use of generics
	name := commandName(req)

	d.logger.DebugContext(ctx, "executing request", slog.String("command", name))

	res, err := d.base.H(ctx, req)
	logResult(ctx, d.logger, "request", name, err)

	return res, err //nolint:wrapcheck // decorate but not change anything
}

func NewLoggedCommand[C any](logger alog.Logger, handler Command[C]) Command[C] {
	return &commandLoggingDecorator[C]{
		logger: logger,
		base:   handler,
	}
}

type commandLoggingDecorator[C any] struct {
	logger alog.Logger
	base   Command[C]
}

func (d *commandLoggingDecorator[C]) H(ctx context.Context, cmd C) error {
	name := commandName(cmd)

	d.logger.DebugContext(ctx, "executing command", slog.String("command", name))

	err := d.base.H(ctx, cmd)
	logResult(ctx, d.logger, "command", name, err)

	return err //nolint:wrapcheck // decorate but not change anything
}

func NewLoggedQuery[Q any, Res any](logger alog.Logger, handler Query[Q, Res]) Query[Q, Res] {
	return &queryLoggingDecorator[Q, Res]{
		logger: logger,
		base:   handler,
	}
}

type queryLoggingDecorator[Q any, Res any] struct {
	logger alog.Logger
	base   Query[Q, Res]
}

func (d *queryLoggingDecorator[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn,lll // valid use of generics
	name := commandName(query)

	d.logger.DebugContext(ctx, "executing query", slog.String("command", name))

	res, err := d.base.H(ctx, query)
	logResult(ctx, d.logger, "query", name, err)

	return res, err //nolint:wrapcheck // decorate but not change anything
}

func logResult(ctx context.Context, logger alog.Logger, kind string, name string, err error) {
	if err != nil {
		logger.InfoContext(ctx, "failed to execute "+kind,
			slog.String("command", name),
			alog.Error(err),
		)

		return
	}

	logger.DebugContext(ctx, kind+" executed successfully", slog.String("command", name))
}
