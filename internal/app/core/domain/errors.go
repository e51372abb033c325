package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation 輸入格式錯誤或超出範圍，操作被拒絕且狀態不變
	ErrValidation = errors.New("validation failed")

	// ErrNotFound 引用的資源不存在
	ErrNotFound = errors.New("not found")
)

var (
	// ErrEmptyName 朋友名稱不可為空
	ErrEmptyName = fmt.Errorf("%w: friend name must not be empty", ErrValidation)

	// ErrEmptyImageRef 朋友頭像不可為空
	ErrEmptyImageRef = fmt.Errorf("%w: friend image must not be empty", ErrValidation)

	// ErrBillTotalRequired 帳單總額未提供或為 0
	ErrBillTotalRequired = fmt.Errorf("%w: bill total is required", ErrValidation)

	// ErrPaidByUserRequired 使用者支付金額未提供
	ErrPaidByUserRequired = fmt.Errorf("%w: paid by user is required", ErrValidation)

	// ErrNegativeAmount 金額不可為負數
	ErrNegativeAmount = fmt.Errorf("%w: amount must not be negative", ErrValidation)

	// ErrPaidExceedsTotal 使用者支付金額大於帳單總額
	ErrPaidExceedsTotal = fmt.Errorf("%w: paid by user exceeds bill total", ErrValidation)

	// ErrInvalidPayer 付款人必須是 user 或 friend
	ErrInvalidPayer = fmt.Errorf("%w: payer must be user or friend", ErrValidation)

	// ErrBalanceOverflow 餘額超出 int64 範圍
	ErrBalanceOverflow = fmt.Errorf("%w: balance out of range", ErrValidation)

	// ErrFriendNotFound 找不到朋友
	ErrFriendNotFound = fmt.Errorf("friend %w", ErrNotFound)
)

var (
	// ErrFriendAlreadyExists 朋友 ID 已存在
	ErrFriendAlreadyExists = errors.New("friend already exists")

	// ErrLedgerClosed 帳本已關閉，不再接受寫入
	ErrLedgerClosed = errors.New("ledger closed")
)
