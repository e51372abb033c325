package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Standing 使用者與朋友之間的帳務狀態
type Standing uint8

const (
	// 兩不相欠
	StandingEven Standing = iota
	// 朋友欠使用者 (Balance > 0)
	StandingFriendOwes
	// 使用者欠朋友 (Balance < 0)
	StandingUserOwes
)

func (s Standing) String() string {
	switch s {
	case StandingFriendOwes:
		return "friend_owes"
	case StandingUserOwes:
		return "user_owes"
	default:
		return "even"
	}
}

// Friend 朋友與其帳務餘額
//
// Balance 為負數代表使用者欠朋友，正數代表朋友欠使用者。
// Friend 以值傳遞，帳本內的資料只會被整筆替換，不會原地修改。
type Friend struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageRef string `json:"image_ref"`
	Balance  int64  `json:"balance"`
}

// NewFriend 建立一個新朋友，ID 由 UUID 產生，餘額固定為 0
//
// 參數:
//
//	name: 顯示名稱 (不可為空白)
//	imageRef: 頭像參考字串 (不可為空白)
//
// 回傳:
//
//	Friend: 新朋友
//	error: ErrEmptyName / ErrEmptyImageRef
func NewFriend(name, imageRef string) (Friend, error) {
	name = strings.TrimSpace(name)
	imageRef = strings.TrimSpace(imageRef)
	if name == "" {
		return Friend{}, ErrEmptyName
	}
	if imageRef == "" {
		return Friend{}, ErrEmptyImageRef
	}
	return Friend{
		ID:       uuid.NewString(),
		Name:     name,
		ImageRef: imageRef,
	}, nil
}

// WithDelta 回傳套用 delta 後的新 Friend，原值不變
func (f Friend) WithDelta(delta int64) (Friend, error) {
	if (delta > 0 && f.Balance > math.MaxInt64-delta) ||
		(delta < 0 && f.Balance < math.MinInt64-delta) {
		return f, ErrBalanceOverflow
	}
	f.Balance += delta
	return f, nil
}

// Standing 依照餘額正負判斷帳務狀態
func (f Friend) Standing() Standing {
	switch {
	case f.Balance > 0:
		return StandingFriendOwes
	case f.Balance < 0:
		return StandingUserOwes
	default:
		return StandingEven
	}
}

// Describe 以使用者視角描述目前餘額
func (f Friend) Describe() string {
	switch f.Standing() {
	case StandingUserOwes:
		return fmt.Sprintf("You owe %s $%d", f.Name, absBalance(f.Balance))
	case StandingFriendOwes:
		return fmt.Sprintf("%s owes you $%d", f.Name, f.Balance)
	default:
		return fmt.Sprintf("You and %s are even", f.Name)
	}
}

// absBalance 取絕對值，MinInt64 無法取負，以 uint64 表示
func absBalance(b int64) uint64 {
	if b < 0 {
		return uint64(-(b + 1)) + 1
	}
	return uint64(b)
}
