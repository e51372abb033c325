package grpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/JoeShih716/bill-splitz/internal/metrics"
)

// UnaryServerInterceptor 記錄每個請求的耗時與結果
//
// 參數:
//
//	m: 指標 (可為 nil)
func UnaryServerInterceptor(m *metrics.Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		elapsed := time.Since(start)

		code := status.Code(err)
		m.ObserveGRPC(info.FullMethod, code.String(), elapsed)

		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		slog.Log(ctx, level, "grpc request",
			"method", info.FullMethod,
			"code", code.String(),
			"duration", elapsed,
		)
		return resp, err
	}
}
