package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_adapter "github.com/JoeShih716/bill-splitz/internal/app/core/adapter/in/grpc"
	rest_adapter "github.com/JoeShih716/bill-splitz/internal/app/core/adapter/in/rest"
	memory_adapter "github.com/JoeShih716/bill-splitz/internal/app/core/adapter/out/memory"
	"github.com/JoeShih716/bill-splitz/internal/app/core/usecase"
	"github.com/JoeShih716/bill-splitz/internal/config"
	"github.com/JoeShih716/bill-splitz/internal/metrics"
	"github.com/JoeShih716/bill-splitz/pkg/journal"
	"github.com/JoeShih716/bill-splitz/pkg/logging"
	pb "github.com/JoeShih716/bill-splitz/proto"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("splitzd exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. 載入設定
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	cfg, err := config.Load(config.Path())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.Setup(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. 初始化 Ledger
	usedLedger, ledgerDone := newLedger(ctx, cfg.Ledger)

	// 3. 初始化 UseCase
	m := metrics.New()
	opts := []usecase.Option{usecase.WithMetrics(m)}
	if cfg.Journal.Path != "" {
		j, err := openJournal(cfg.Journal.Path)
		if err != nil {
			return err
		}
		// 程式結束時關閉 journal
		defer j.Close()
		opts = append(opts, usecase.WithJournal(j))
	}
	coreUseCase := usecase.NewCoreUseCase(usedLedger, opts...)

	if err := coreUseCase.Seed(ctx, cfg.SeedFriends()); err != nil {
		return err
	}

	// 4. 初始化 gRPC Adapter
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(grpc_adapter.UnaryServerInterceptor(m)))
	pb.RegisterLedgerServiceServer(grpcServer, grpc_adapter.NewGrpcServer(coreUseCase))
	reflection.Register(grpcServer) // 方便 grpcurl 測試
	healthServer := health.NewServer()
	healthServer.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		return fmt.Errorf("listen grpc %s: %w", cfg.GRPC.Addr, err)
	}

	// 5. 初始化 HTTP Adapter (h2c 讓同一個 port 也能走 HTTP/2)
	router := rest_adapter.NewRouter(rest_adapter.NewHandler(coreUseCase), m)
	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      h2c.NewHandler(router, &http2.Server{}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	// 6. 啟動並等待關閉信號
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("starting grpc server", "addr", cfg.GRPC.Addr, "engine", cfg.Ledger.Engine)
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		slog.Info("starting http server", "addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	// 伺服器異常結束時也要停止 ledger，並等它把剩下的寫入處理完
	stop()
	<-ledgerDone
	slog.Info("server exited")
	return err
}

// newLedger 依設定建立帳本，回傳的 channel 在帳本停止後關閉
func newLedger(ctx context.Context, cfg config.LedgerConfig) (usecase.Ledger, <-chan struct{}) {
	if cfg.Engine == config.EngineMutex {
		done := make(chan struct{})
		close(done)
		return memory_adapter.NewMutexLedger(), done
	}
	l := memory_adapter.NewSerialLedger(cfg.QueueSize)
	l.Start(ctx)
	return l, l.Done()
}

func openJournal(path string) (*journal.Journal, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory %s: %w", dir, err)
		}
	}
	j, err := journal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	slog.Info("journal opened", "path", j.Path())
	return j, nil
}
