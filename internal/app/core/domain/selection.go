package domain

// SelectionState 選取狀態
type SelectionState uint8

const (
	SelectionNone SelectionState = iota
	SelectionFriend
)

func (s SelectionState) String() string {
	if s == SelectionFriend {
		return "friend_selected"
	}
	return "none_selected"
}

// Selection 呈現層持有的「目前選取的朋友」
//
// 只保存朋友 ID，餘額一律向帳本查詢，不作為第二份資料來源。
// 零值即為 SelectionNone。
type Selection struct {
	friendID string
}

// Toggle 選取朋友；再次選取同一位則取消，選取另一位則直接切換
func (s *Selection) Toggle(friendID string) SelectionState {
	if s.friendID == friendID {
		s.friendID = ""
	} else {
		s.friendID = friendID
	}
	return s.State()
}

// Clear 回到未選取狀態 (分帳送出成功後呼叫)
func (s *Selection) Clear() {
	s.friendID = ""
}

// Selected 回傳目前選取的朋友 ID
func (s *Selection) Selected() (string, bool) {
	return s.friendID, s.friendID != ""
}

// State 目前狀態
func (s *Selection) State() SelectionState {
	if s.friendID == "" {
		return SelectionNone
	}
	return SelectionFriend
}
