package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/JoeShih716/bill-splitz/pkg/grpc"
	"github.com/JoeShih716/bill-splitz/pkg/logging"
	pb "github.com/JoeShih716/bill-splitz/proto"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("SPLITZ_GRPC_ADDR", "localhost:50051"), "ledger gRPC address")
	bench := flag.Int("bench", 0, "run N settlements against the first friend and report TPS")
	concurrency := flag.Int("concurrency", 100, "concurrent requests in bench mode")
	flag.Parse()

	logging.Setup(envOr("LOG_LEVEL", "warn"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := grpc.NewPool(grpc.WithInterceptor(grpc.LoggingInterceptor()))
	defer pool.Close()

	conn, err := pool.GetConnection(*addr)
	if err != nil {
		slog.Error("did not connect", "addr", *addr, "error", err)
		os.Exit(1)
	}
	client := pb.NewLedgerServiceClient(conn)

	if *bench > 0 {
		if err := runBench(ctx, client, *bench, *concurrency); err != nil {
			slog.Error("bench failed", "error", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("bill splitz @ %s, type help for commands\n", *addr)
	if err := newREPL(client, os.Stdout).run(ctx, os.Stdin); err != nil {
		slog.Error("read input", "error", err)
		os.Exit(1)
	}
}

// runBench 對第一位朋友送出 total 筆分帳並計算 TPS
// 每筆都是使用者代墊 2 元、各付 1 元，朋友餘額每筆 +1
func runBench(ctx context.Context, client pb.LedgerServiceClient, total, concurrency int) error {
	r := newREPL(client, os.Stdout)
	friends, err := r.friends(ctx)
	if err != nil {
		return err
	}
	if len(friends) == 0 {
		return fmt.Errorf("no friends to settle with")
	}
	target := friends[0]

	billTotal, paidByUser := int64(2), int64(1)
	req, err := pb.SettlementRequest{
		FriendID:   target.ID,
		BillTotal:  &billTotal,
		PaidByUser: &paidByUser,
		Payer:      "user",
	}.Struct()
	if err != nil {
		return err
	}

	var (
		wg     sync.WaitGroup
		failed atomic.Int64
	)
	sem := make(chan struct{}, max(concurrency, 1))
	startTime := time.Now()

	for i := 0; i < total; i++ {
		sem <- struct{}{}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			if _, err := client.SubmitSettlement(ctx, req); err != nil {
				failed.Add(1)
				if idx%10000 == 0 {
					slog.Warn("settlement failed", "index", idx, "error", err)
				}
			}
		}(i)
	}
	wg.Wait()

	elapsed := time.Since(startTime)
	fmt.Printf("Completed %d requests in %v (%d failed)\n", total, elapsed, failed.Load())
	fmt.Printf("TPS: %.2f\n", float64(total)/elapsed.Seconds())
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
