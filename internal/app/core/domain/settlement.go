package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Payer 代墊帳單、需要被償還的一方
// 使用 uint8，0 保留為未設定
type Payer uint8

const (
	// 使用者代墊
	PayerUser Payer = 1
	// 朋友代墊
	PayerFriend Payer = 2
)

func (p Payer) String() string {
	switch p {
	case PayerUser:
		return "user"
	case PayerFriend:
		return "friend"
	default:
		return "unknown"
	}
}

// Valid 是否為已定義的付款人
func (p Payer) Valid() bool {
	return p == PayerUser || p == PayerFriend
}

// ParsePayer 將字串轉成 Payer，接受 user/you 與 friend (不分大小寫)
func ParsePayer(s string) (Payer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user", "you":
		return PayerUser, nil
	case "friend":
		return PayerFriend, nil
	default:
		return 0, ErrInvalidPayer
	}
}

// ComputeDelta 計算一次分帳對朋友餘額的影響 (純函式)
//
// 參數:
//
//	total: 帳單總額 (>= 0)
//	paidByUser: 使用者自己負擔的金額 (0 <= paidByUser <= total)
//	payer: 代墊的一方
//
// 回傳:
//
//	int64: PayerUser 時為 +(total - paidByUser)，PayerFriend 時為 -paidByUser
//	error: ErrNegativeAmount / ErrPaidExceedsTotal / ErrInvalidPayer
func ComputeDelta(total, paidByUser int64, payer Payer) (int64, error) {
	if total < 0 || paidByUser < 0 {
		return 0, ErrNegativeAmount
	}
	if paidByUser > total {
		return 0, ErrPaidExceedsTotal
	}
	switch payer {
	case PayerUser:
		return total - paidByUser, nil
	case PayerFriend:
		return -paidByUser, nil
	default:
		return 0, ErrInvalidPayer
	}
}

// ClampPaidByUser 輸入階段的限制：使用者金額不可超過帳單總額，也不可小於 0
func ClampPaidByUser(total, paidByUser int64) int64 {
	if paidByUser > total {
		paidByUser = total
	}
	if paidByUser < 0 {
		return 0
	}
	return paidByUser
}

// Bill 一次分帳的輸入
type Bill struct {
	Total      int64 `json:"total"`
	PaidByUser int64 `json:"paid_by_user"`
	Payer      Payer `json:"payer"`
}

// PaidByFriend 朋友負擔的金額
func (b Bill) PaidByFriend() int64 {
	return b.Total - b.PaidByUser
}

// Validate 送出分帳前的檢查，總額為 0 視為未填寫
func (b Bill) Validate() error {
	if b.Total == 0 {
		return ErrBillTotalRequired
	}
	_, err := ComputeDelta(b.Total, b.PaidByUser, b.Payer)
	return err
}

// NewBill 從傳輸層的原始欄位建立帳單，nil 代表欄位缺漏
func NewBill(total, paidByUser *int64, payer string) (Bill, error) {
	if total == nil {
		return Bill{}, ErrBillTotalRequired
	}
	if paidByUser == nil {
		return Bill{}, ErrPaidByUserRequired
	}
	p, err := ParsePayer(payer)
	if err != nil {
		return Bill{}, err
	}
	b := Bill{Total: *total, PaidByUser: *paidByUser, Payer: p}
	if err := b.Validate(); err != nil {
		return Bill{}, err
	}
	return b, nil
}

// Delta 驗證後計算餘額變動
func (b Bill) Delta() (int64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return ComputeDelta(b.Total, b.PaidByUser, b.Payer)
}

// Settlement 一筆已套用的分帳紀錄
type Settlement struct {
	// ID: 外部追蹤號 (UUID)
	ID uuid.UUID `json:"id"`
	// FriendID: 被調整餘額的朋友
	FriendID string `json:"friend_id"`
	Bill     Bill   `json:"bill"`
	// Delta: 實際套用到朋友餘額的變動
	Delta int64 `json:"delta"`
	// Friend: 套用後的朋友資料
	Friend Friend `json:"friend"`
	// CreatedAt: Unix 毫秒
	CreatedAt int64 `json:"created_at"`
}
