package proto

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"
)

// ErrMalformed 欄位型別錯誤或數值無法精確表示
var ErrMalformed = errors.New("malformed message")

// Struct 的數字是 float64，超過 2^53 的整數無法精確表示
// 因此金額一律以十進位字串送出；讀取時也接受 ±2^53 內的數字
const maxExactInt = 1 << 53

// 欄位名稱
const (
	fieldID           = "id"
	fieldName         = "name"
	fieldImageRef     = "image_ref"
	fieldBalance      = "balance"
	fieldStanding     = "standing"
	fieldDescription  = "description"
	fieldFriends      = "friends"
	fieldFriend       = "friend"
	fieldFriendID     = "friend_id"
	fieldBillTotal    = "bill_total"
	fieldPaidByUser   = "paid_by_user"
	fieldPaidByFriend = "paid_by_friend"
	fieldPayer        = "payer"
	fieldDelta        = "delta"
	fieldCreatedAt    = "created_at"
)

// AddFriendRequest AddFriend 的請求
type AddFriendRequest struct {
	Name     string
	ImageRef string
}

func (r AddFriendRequest) Struct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldName:     r.Name,
		fieldImageRef: r.ImageRef,
	})
}

func DecodeAddFriendRequest(s *structpb.Struct) (AddFriendRequest, error) {
	var (
		r   AddFriendRequest
		err error
	)
	if r.Name, err = stringField(s, fieldName); err != nil {
		return AddFriendRequest{}, err
	}
	if r.ImageRef, err = stringField(s, fieldImageRef); err != nil {
		return AddFriendRequest{}, err
	}
	return r, nil
}

// FriendRequest GetFriend 的請求
type FriendRequest struct {
	FriendID string
}

func (r FriendRequest) Struct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{fieldFriendID: r.FriendID})
}

func DecodeFriendRequest(s *structpb.Struct) (FriendRequest, error) {
	id, err := stringField(s, fieldFriendID)
	if err != nil {
		return FriendRequest{}, err
	}
	return FriendRequest{FriendID: id}, nil
}

// Friend 朋友的傳輸格式
// Standing 與 Description 由伺服端填入，方便客戶端直接顯示
type Friend struct {
	ID          string
	Name        string
	ImageRef    string
	Balance     int64
	Standing    string
	Description string
}

func (f Friend) fields() map[string]any {
	return map[string]any{
		fieldID:          f.ID,
		fieldName:        f.Name,
		fieldImageRef:    f.ImageRef,
		fieldBalance:     amount(f.Balance),
		fieldStanding:    f.Standing,
		fieldDescription: f.Description,
	}
}

func (f Friend) Struct() (*structpb.Struct, error) {
	return structpb.NewStruct(f.fields())
}

func DecodeFriend(s *structpb.Struct) (Friend, error) {
	var (
		f   Friend
		err error
	)
	if f.ID, err = stringField(s, fieldID); err != nil {
		return Friend{}, err
	}
	if f.Name, err = stringField(s, fieldName); err != nil {
		return Friend{}, err
	}
	if f.ImageRef, err = stringField(s, fieldImageRef); err != nil {
		return Friend{}, err
	}
	if f.Balance, err = requiredIntField(s, fieldBalance); err != nil {
		return Friend{}, err
	}
	if f.Standing, err = stringField(s, fieldStanding); err != nil {
		return Friend{}, err
	}
	if f.Description, err = stringField(s, fieldDescription); err != nil {
		return Friend{}, err
	}
	return f, nil
}

// FriendList ListFriends 的回應，依加入順序
type FriendList struct {
	Friends []Friend
}

func (l FriendList) Struct() (*structpb.Struct, error) {
	friends := make([]any, 0, len(l.Friends))
	for _, f := range l.Friends {
		friends = append(friends, f.fields())
	}
	return structpb.NewStruct(map[string]any{fieldFriends: friends})
}

func DecodeFriendList(s *structpb.Struct) (FriendList, error) {
	v, ok := s.GetFields()[fieldFriends]
	if !ok {
		return FriendList{Friends: []Friend{}}, nil
	}
	list := v.GetListValue()
	if list == nil {
		return FriendList{}, fmt.Errorf("%w: %s must be a list", ErrMalformed, fieldFriends)
	}
	out := FriendList{Friends: make([]Friend, 0, len(list.GetValues()))}
	for i, item := range list.GetValues() {
		fs := item.GetStructValue()
		if fs == nil {
			return FriendList{}, fmt.Errorf("%w: %s[%d] must be an object", ErrMalformed, fieldFriends, i)
		}
		f, err := DecodeFriend(fs)
		if err != nil {
			return FriendList{}, fmt.Errorf("%s[%d]: %w", fieldFriends, i, err)
		}
		out.Friends = append(out.Friends, f)
	}
	return out, nil
}

// SettlementRequest SubmitSettlement 的請求
// BillTotal / PaidByUser 為 nil 代表欄位缺漏
type SettlementRequest struct {
	FriendID   string
	BillTotal  *int64
	PaidByUser *int64
	Payer      string
}

func (r SettlementRequest) Struct() (*structpb.Struct, error) {
	m := map[string]any{
		fieldFriendID: r.FriendID,
		fieldPayer:    r.Payer,
	}
	if r.BillTotal != nil {
		m[fieldBillTotal] = amount(*r.BillTotal)
	}
	if r.PaidByUser != nil {
		m[fieldPaidByUser] = amount(*r.PaidByUser)
	}
	return structpb.NewStruct(m)
}

func DecodeSettlementRequest(s *structpb.Struct) (SettlementRequest, error) {
	var (
		r   SettlementRequest
		err error
	)
	if r.FriendID, err = stringField(s, fieldFriendID); err != nil {
		return SettlementRequest{}, err
	}
	if r.BillTotal, err = intField(s, fieldBillTotal); err != nil {
		return SettlementRequest{}, err
	}
	if r.PaidByUser, err = intField(s, fieldPaidByUser); err != nil {
		return SettlementRequest{}, err
	}
	if r.Payer, err = stringField(s, fieldPayer); err != nil {
		return SettlementRequest{}, err
	}
	return r, nil
}

// Settlement SubmitSettlement 的回應
type Settlement struct {
	ID           string
	BillTotal    int64
	PaidByUser   int64
	PaidByFriend int64
	Payer        string
	Delta        int64
	Friend       Friend
	CreatedAt    int64
}

func (st Settlement) Struct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldID:           st.ID,
		fieldBillTotal:    amount(st.BillTotal),
		fieldPaidByUser:   amount(st.PaidByUser),
		fieldPaidByFriend: amount(st.PaidByFriend),
		fieldPayer:        st.Payer,
		fieldDelta:        amount(st.Delta),
		fieldFriend:       st.Friend.fields(),
		fieldCreatedAt:    amount(st.CreatedAt),
	})
}

func DecodeSettlement(s *structpb.Struct) (Settlement, error) {
	var (
		st  Settlement
		err error
	)
	if st.ID, err = stringField(s, fieldID); err != nil {
		return Settlement{}, err
	}
	for key, dst := range map[string]*int64{
		fieldBillTotal:    &st.BillTotal,
		fieldPaidByUser:   &st.PaidByUser,
		fieldPaidByFriend: &st.PaidByFriend,
		fieldDelta:        &st.Delta,
		fieldCreatedAt:    &st.CreatedAt,
	} {
		if *dst, err = requiredIntField(s, key); err != nil {
			return Settlement{}, err
		}
	}
	if st.Payer, err = stringField(s, fieldPayer); err != nil {
		return Settlement{}, err
	}
	fs := s.GetFields()[fieldFriend].GetStructValue()
	if fs == nil {
		return Settlement{}, fmt.Errorf("%w: %s must be an object", ErrMalformed, fieldFriend)
	}
	if st.Friend, err = DecodeFriend(fs); err != nil {
		return Settlement{}, fmt.Errorf("%s: %w", fieldFriend, err)
	}
	return st, nil
}

// stringField 缺漏時回傳空字串
func stringField(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", nil
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", ErrMalformed, key)
	}
	return sv.StringValue, nil
}

// amount 將 int64 編碼成十進位字串，不經過 float64
func amount(n int64) string {
	return strconv.FormatInt(n, 10)
}

// intField 缺漏或 null 時回傳 nil，接受十進位字串或 ±2^53 內的整數
func intField(s *structpb.Struct, key string) (*int64, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil, nil
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_NumberValue:
		f := kind.NumberValue
		if f != math.Trunc(f) || math.Abs(f) > maxExactInt {
			return nil, fmt.Errorf("%w: %s must be a whole number within ±2^53", ErrMalformed, key)
		}
		n := int64(f)
		return &n, nil
	case *structpb.Value_StringValue:
		n, err := strconv.ParseInt(kind.StringValue, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a decimal int64", ErrMalformed, key)
		}
		return &n, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a number", ErrMalformed, key)
	}
}

func requiredIntField(s *structpb.Struct, key string) (int64, error) {
	n, err := intField(s, key)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return 0, fmt.Errorf("%w: %s is required", ErrMalformed, key)
	}
	return *n, nil
}
