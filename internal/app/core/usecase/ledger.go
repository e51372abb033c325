package usecase

import (
	"context"

	"github.com/JoeShih716/bill-splitz/internal/app/core/domain"
)

// Ledger 是帳本的介面，唯一擁有朋友清單，也是唯一的修改入口
type Ledger interface {
	// AddFriend 新增朋友 (餘額為 0，排在清單最後)
	AddFriend(ctx context.Context, name, imageRef string) (domain.Friend, error)
	// ApplyDelta 將 delta 加到指定朋友的餘額
	ApplyDelta(ctx context.Context, friendID string, delta int64) (domain.Friend, error)
	// ListFriends 依加入順序回傳所有朋友的快照
	ListFriends(ctx context.Context) ([]domain.Friend, error)
	// GetFriend 取得單一朋友
	GetFriend(ctx context.Context, friendID string) (domain.Friend, error)
}
