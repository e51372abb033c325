package memory

import (
	"maps"
	"slices"

	"github.com/JoeShih716/bill-splitz/internal/app/core/domain"
)

// state 帳本的不可變快照
//
// 每次寫入都產生新的 state (copy-on-write)，已交出去的快照永遠不會被修改，
// 因此讀取端不需要加鎖。
type state struct {
	// 依加入順序排列
	friends []domain.Friend
	// friend ID -> friends 的索引
	index map[string]int
}

func newState() *state {
	return &state{index: make(map[string]int)}
}

// withFriend 回傳多了一位朋友的新 state
func (s *state) withFriend(f domain.Friend) (*state, error) {
	if _, ok := s.index[f.ID]; ok {
		return nil, domain.ErrFriendAlreadyExists
	}
	friends := make([]domain.Friend, len(s.friends), len(s.friends)+1)
	copy(friends, s.friends)
	friends = append(friends, f)

	index := maps.Clone(s.index)
	index[f.ID] = len(friends) - 1
	return &state{friends: friends, index: index}, nil
}

// withDelta 回傳指定朋友餘額變動後的新 state
// 朋友集合不變，因此 index 可以直接共用
func (s *state) withDelta(friendID string, delta int64) (*state, domain.Friend, error) {
	i, ok := s.index[friendID]
	if !ok {
		return nil, domain.Friend{}, domain.ErrFriendNotFound
	}
	updated, err := s.friends[i].WithDelta(delta)
	if err != nil {
		return nil, domain.Friend{}, err
	}
	friends := slices.Clone(s.friends)
	friends[i] = updated
	return &state{friends: friends, index: s.index}, updated, nil
}

func (s *state) get(friendID string) (domain.Friend, error) {
	i, ok := s.index[friendID]
	if !ok {
		return domain.Friend{}, domain.ErrFriendNotFound
	}
	return s.friends[i], nil
}

// list 回傳副本，呼叫端可以任意修改
func (s *state) list() []domain.Friend {
	return append(make([]domain.Friend, 0, len(s.friends)), s.friends...)
}
