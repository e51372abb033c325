package memory

import (
	"context"
	"sync"

	"github.com/JoeShih716/bill-splitz/internal/app/core/domain"
	"github.com/JoeShih716/bill-splitz/internal/app/core/usecase"
)

// MutexLedger 是一個使用 Mutex 實現的帳本
//
// 結構:
//
//	mu: 寫入端互斥，讀取端共享
//	state: 目前的快照，每次寫入整個替換
type MutexLedger struct {
	mu    sync.RWMutex
	state *state
}

// NewMutexLedger 建立一個空的 MutexLedger
func NewMutexLedger() *MutexLedger {
	return &MutexLedger{state: newState()}
}

// AddFriend 新增朋友
//
// 參數:
//
//	ctx: 上下文
//	name: 朋友名稱
//	imageRef: 頭像
//
// 回傳:
//
//	domain.Friend: 新朋友 (餘額 0)
//	error: 驗證錯誤
func (m *MutexLedger) AddFriend(ctx context.Context, name, imageRef string) (domain.Friend, error) {
	// 驗證與產生 ID 不需要持有鎖
	friend, err := domain.NewFriend(name, imageRef)
	if err != nil {
		return domain.Friend{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	next, err := m.state.withFriend(friend)
	if err != nil {
		return domain.Friend{}, err
	}
	m.state = next
	return friend, nil
}

// ApplyDelta 調整朋友餘額
//
// 參數:
//
//	ctx: 上下文
//	friendID: 朋友 ID
//	delta: 餘額變動 (可正可負)
//
// 回傳:
//
//	domain.Friend: 更新後的朋友
//	error: ErrFriendNotFound / ErrBalanceOverflow
func (m *MutexLedger) ApplyDelta(ctx context.Context, friendID string, delta int64) (domain.Friend, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next, friend, err := m.state.withDelta(friendID, delta)
	if err != nil {
		return domain.Friend{}, err
	}
	m.state = next
	return friend, nil
}

// ListFriends 依加入順序回傳朋友快照
func (m *MutexLedger) ListFriends(ctx context.Context) ([]domain.Friend, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.list(), nil
}

// GetFriend 取得指定朋友
func (m *MutexLedger) GetFriend(ctx context.Context, friendID string) (domain.Friend, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.get(friendID)
}

var _ usecase.Ledger = (*MutexLedger)(nil)
