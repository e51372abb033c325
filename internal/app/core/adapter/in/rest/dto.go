package rest

import "github.com/JoeShih716/bill-splitz/internal/app/core/domain"

// AddFriendRequest 新增朋友的請求
type AddFriendRequest struct {
	Name     string `json:"name"`
	ImageRef string `json:"image_ref"`
}

// SettlementRequest 分帳請求
// 金額使用指標，nil 代表欄位缺漏 (與 0 區分)
type SettlementRequest struct {
	BillTotal  *int64 `json:"bill_total"`
	PaidByUser *int64 `json:"paid_by_user"`
	Payer      string `json:"payer"`
}

// FriendResponse 朋友與目前的帳務狀態
type FriendResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ImageRef    string `json:"image_ref"`
	Balance     int64  `json:"balance"`
	Standing    string `json:"standing"`
	Description string `json:"description"` // 例如 "You owe Sarah $7"
}

// SettlementResponse 已套用的分帳
type SettlementResponse struct {
	ID           string         `json:"id"`
	BillTotal    int64          `json:"bill_total"`
	PaidByUser   int64          `json:"paid_by_user"`
	PaidByFriend int64          `json:"paid_by_friend"`
	Payer        string         `json:"payer"`
	Delta        int64          `json:"delta"`
	Friend       FriendResponse `json:"friend"`
	CreatedAt    int64          `json:"created_at"`
}

func toFriendResponse(f domain.Friend) FriendResponse {
	return FriendResponse{
		ID:          f.ID,
		Name:        f.Name,
		ImageRef:    f.ImageRef,
		Balance:     f.Balance,
		Standing:    f.Standing().String(),
		Description: f.Describe(),
	}
}

func toSettlementResponse(s domain.Settlement) SettlementResponse {
	return SettlementResponse{
		ID:           s.ID.String(),
		BillTotal:    s.Bill.Total,
		PaidByUser:   s.Bill.PaidByUser,
		PaidByFriend: s.Bill.PaidByFriend(),
		Payer:        s.Bill.Payer.String(),
		Delta:        s.Delta,
		Friend:       toFriendResponse(s.Friend),
		CreatedAt:    s.CreatedAt,
	}
}
