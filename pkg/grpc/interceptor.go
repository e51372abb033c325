package grpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor 記錄每次呼叫的方法、結果與耗時
func LoggingInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		duration := time.Since(start).Milliseconds()

		if err != nil {
			slog.WarnContext(ctx, "RPC error",
				"method", method,
				"code", status.Code(err).String(),
				"error", status.Convert(err).Message(),
				"duration_ms", duration,
			)
			return err
		}
		slog.DebugContext(ctx, "RPC ok", "method", method, "duration_ms", duration)
		return nil
	}
}
