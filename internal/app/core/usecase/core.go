package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JoeShih716/bill-splitz/internal/app/core/domain"
	"github.com/JoeShih716/bill-splitz/internal/metrics"
	"github.com/JoeShih716/bill-splitz/pkg/journal"
)

// journal 事件類型
const (
	EventFriendAdded       = "friend_added"
	EventSettlementApplied = "settlement_applied"
)

// 指標與日誌使用的操作名稱
const (
	opAddFriend        = "add_friend"
	opSubmitSettlement = "submit_settlement"
	opSeed             = "seed"
)

// Event 寫入 journal 的單筆紀錄
type Event struct {
	Type       string             `json:"type"`
	At         int64              `json:"at"`
	Friend     *domain.Friend     `json:"friend,omitempty"`
	Settlement *domain.Settlement `json:"settlement,omitempty"`
}

// SeedFriend 啟動時預先載入的朋友
type SeedFriend struct {
	Name           string
	ImageRef       string
	OpeningBalance int64
}

// CoreUseCase 是核心業務邏輯層，對呈現層提供所有入口
type CoreUseCase struct {
	ledger  Ledger
	journal *journal.Journal
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option 定義了 CoreUseCase 的配置選項函數
type Option func(*CoreUseCase)

// WithJournal 設定稽核紀錄
func WithJournal(j *journal.Journal) Option {
	return func(c *CoreUseCase) {
		c.journal = j
	}
}

// WithMetrics 設定 Prometheus 指標
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *CoreUseCase) {
		c.metrics = m
	}
}

// WithClock 替換時間來源 (測試用)
func WithClock(now func() time.Time) Option {
	return func(c *CoreUseCase) {
		c.now = now
	}
}

func NewCoreUseCase(ledger Ledger, opts ...Option) *CoreUseCase {
	c := &CoreUseCase{
		ledger: ledger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddFriend 新增朋友
func (c *CoreUseCase) AddFriend(ctx context.Context, name, imageRef string) (domain.Friend, error) {
	friend, err := c.ledger.AddFriend(ctx, name, imageRef)
	if err != nil {
		c.metrics.Rejected(opAddFriend, reason(err))
		slog.WarnContext(ctx, "add friend rejected", "name", name, "error", err)
		return domain.Friend{}, err
	}

	c.metrics.FriendAdded()
	c.record(ctx, Event{Type: EventFriendAdded, At: c.now().UnixMilli(), Friend: &friend})
	slog.InfoContext(ctx, "friend added", "friend_id", friend.ID, "name", friend.Name)
	return friend, nil
}

// ListFriends 依加入順序回傳朋友清單
func (c *CoreUseCase) ListFriends(ctx context.Context) ([]domain.Friend, error) {
	return c.ledger.ListFriends(ctx)
}

// GetFriend 取得單一朋友
func (c *CoreUseCase) GetFriend(ctx context.Context, friendID string) (domain.Friend, error) {
	return c.ledger.GetFriend(ctx, friendID)
}

// SubmitSettlement 計算分帳並套用到朋友餘額
//
// 參數:
//
//	ctx: 上下文
//	friendID: 目前選取的朋友
//	bill: 分帳輸入
//
// 回傳:
//
//	domain.Settlement: 套用結果
//	error: ErrValidation 類 (帳單不合法) 或 ErrFriendNotFound，失敗時狀態不變
func (c *CoreUseCase) SubmitSettlement(ctx context.Context, friendID string, bill domain.Bill) (domain.Settlement, error) {
	delta, err := bill.Delta()
	if err != nil {
		c.metrics.Rejected(opSubmitSettlement, reason(err))
		slog.WarnContext(ctx, "settlement rejected", "friend_id", friendID, "error", err)
		return domain.Settlement{}, err
	}

	friend, err := c.ledger.ApplyDelta(ctx, friendID, delta)
	if err != nil {
		c.metrics.Rejected(opSubmitSettlement, reason(err))
		slog.WarnContext(ctx, "settlement rejected", "friend_id", friendID, "delta", delta, "error", err)
		return domain.Settlement{}, err
	}

	settlement := domain.Settlement{
		ID:        uuid.New(),
		FriendID:  friend.ID,
		Bill:      bill,
		Delta:     delta,
		Friend:    friend,
		CreatedAt: c.now().UnixMilli(),
	}

	c.metrics.SettlementApplied(bill.Payer.String())
	c.record(ctx, Event{Type: EventSettlementApplied, At: settlement.CreatedAt, Settlement: &settlement})
	slog.InfoContext(ctx, "settlement applied",
		"settlement_id", settlement.ID,
		"friend_id", friend.ID,
		"payer", bill.Payer.String(),
		"delta", delta,
		"balance", friend.Balance,
	)
	return settlement, nil
}

// Seed 載入初始朋友
// 期初餘額以一次 ApplyDelta 帶入，維持「餘額只透過 delta 變動」
func (c *CoreUseCase) Seed(ctx context.Context, seeds []SeedFriend) error {
	for _, s := range seeds {
		friend, err := c.AddFriend(ctx, s.Name, s.ImageRef)
		if err != nil {
			return fmt.Errorf("seed friend %q: %w", s.Name, err)
		}
		if s.OpeningBalance == 0 {
			continue
		}
		if _, err := c.ledger.ApplyDelta(ctx, friend.ID, s.OpeningBalance); err != nil {
			c.metrics.Rejected(opSeed, reason(err))
			return fmt.Errorf("seed opening balance for %q: %w", s.Name, err)
		}
	}
	slog.InfoContext(ctx, "ledger seeded", "friends", len(seeds))
	return nil
}

// record 寫入 journal，失敗只記錄 log，不影響已完成的操作
func (c *CoreUseCase) record(ctx context.Context, ev Event) {
	if c.journal == nil {
		return
	}
	if err := c.journal.Write(ev); err != nil {
		slog.ErrorContext(ctx, "journal write failed", "type", ev.Type, "error", err)
	}
}

// reason 將錯誤歸類為指標 label
func reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal"
	}
}
