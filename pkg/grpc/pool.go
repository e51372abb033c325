// Package grpc 提供帳本客戶端使用的 gRPC 連線池與攔截器
package grpc

import (
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
)

// DefaultKeepalive 若無活動每 10 秒 Ping 一次，等待回應 1 秒
var DefaultKeepalive = keepalive.ClientParameters{
	Time:                10 * time.Second,
	Timeout:             time.Second,
	PermitWithoutStream: true,
}

// Pool 依目標地址快取 gRPC 連線，每個地址只維護一個連線實例 (Thread-safe)
type Pool struct {
	conns        map[string]*grpc.ClientConn
	mu           sync.Mutex
	keepalive    keepalive.ClientParameters
	interceptors []grpc.UnaryClientInterceptor
	dialOpts     []grpc.DialOption
}

// PoolOption 定義了 Pool 的配置選項函數
type PoolOption func(*Pool)

// WithInterceptor 加入 UnaryClientInterceptor，依加入順序串接
func WithInterceptor(interceptor grpc.UnaryClientInterceptor) PoolOption {
	return func(p *Pool) {
		p.interceptors = append(p.interceptors, interceptor)
	}
}

// WithKeepalive 覆寫預設的 keepalive 參數
func WithKeepalive(params keepalive.ClientParameters) PoolOption {
	return func(p *Pool) {
		p.keepalive = params
	}
}

// WithDialOptions 附加額外的連線選項 (例如測試用的 ContextDialer)
func WithDialOptions(opts ...grpc.DialOption) PoolOption {
	return func(p *Pool) {
		p.dialOpts = append(p.dialOpts, opts...)
	}
}

// NewPool 建立並回傳一個新的 gRPC 連線池
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{
		conns:     make(map[string]*grpc.ClientConn),
		keepalive: DefaultKeepalive,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetConnection 取得目標地址的連線，已關閉的連線會重新建立
//
// 參數:
//
//	target: 目標伺服器地址 (e.g., "localhost:50051")
//
// 回傳值:
//
//	*grpc.ClientConn: gRPC 客戶端連線物件
//	error: 若建立連線失敗則回傳錯誤
func (p *Pool) GetConnection(target string) (*grpc.ClientConn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if conn, ok := p.conns[target]; ok {
		if conn.GetState() != connectivity.Shutdown {
			return conn, nil
		}
		delete(p.conns, target)
	}

	// 帳本服務跑在本機或私有網路，不使用 TLS
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(p.keepalive),
	}
	if len(p.interceptors) > 0 {
		opts = append(opts, grpc.WithChainUnaryInterceptor(p.interceptors...))
	}
	opts = append(opts, p.dialOpts...)

	// NewClient 不會立即連線，第一次呼叫時才建立 (Lazy connection)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc client for target %s: %w", target, err)
	}
	p.conns[target] = conn
	return conn, nil
}

// Close 關閉連線池中的所有連線，回傳第一個發生的錯誤
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for target, conn := range p.conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.conns, target)
	}
	return firstErr
}
