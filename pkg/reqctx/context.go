// Package reqctx carries the per-request values every store and resolver call
// needs: a request id for log correlation and the caller's credentials. The
// transport layer sets them once; services only read.
//
//	ctx = reqctx.With(ctx, reqctx.Request{ID: reqctx.NewID(), Token: bearer})
//	req := reqctx.From(ctx)
package reqctx

import (
	"context"

	"github.com/google/uuid"

	"taxidispatch/pkg/logger"
)

type requestKey struct{}

type Request struct {
	ID string
	// Token is the caller's bearer credential, already validated upstream.
	// The hosted backend gateway forwards it so row policies see the caller;
	// without it calls go out with the service key.
	Token string
	Actor string
}

func NewID() string {
	return uuid.NewString()
}

func With(ctx context.Context, req Request) context.Context {
	return context.WithValue(ctx, requestKey{}, req)
}

// From returns the request stored in ctx, or the zero Request.
func From(ctx context.Context) Request {
	if req, ok := ctx.Value(requestKey{}).(Request); ok {
		return req
	}
	return Request{}
}

// Ensure returns ctx unchanged when it already carries a request, otherwise a
// child context with a fresh request id.
func Ensure(ctx context.Context) context.Context {
	if From(ctx).ID != "" {
		return ctx
	}
	return With(ctx, Request{ID: NewID()})
}

// Fields are the log fields identifying the request in ctx.
func Fields(ctx context.Context) []logger.Field {
	req := From(ctx)
	if req.ID == "" {
		return nil
	}
	fields := []logger.Field{logger.String("request_id", req.ID)}
	if req.Actor != "" {
		fields = append(fields, logger.String("actor", req.Actor))
	}
	return fields
}
