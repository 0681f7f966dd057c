package middleware

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LogRequests logs every unary call at DEBUG. Calls failing with an internal or unknown
// code are logged at ERROR.
func LogRequests() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"client", req.Spec().IsClient,
				"peer", req.Peer().Addr,
			}

			slog.DebugContext(ctx, "got request", append(attrs, "req", req.Any())...)

			resp, err := next(ctx, req)
			attrs = append(attrs, "duration", time.Since(start))
			if err != nil {
				code := connect.CodeOf(err)

				level := slog.LevelDebug
				if code == connect.CodeInternal || code == connect.CodeUnknown {
					level = slog.LevelError
				}

				slog.Log(ctx, level, "request not processed", append(attrs, "code", code.String(), "error", err)...)
				return resp, err
			}

			slog.DebugContext(ctx, "request processed", append(attrs, "resp", resp.Any())...)
			return resp, nil
		}
	}
}
