package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/JoeShih716/bill-splitz/internal/app/core/domain"
	"github.com/JoeShih716/bill-splitz/internal/app/core/usecase"
	pb "github.com/JoeShih716/bill-splitz/proto"
)

type GrpcServer struct {
	core *usecase.CoreUseCase
}

func NewGrpcServer(core *usecase.CoreUseCase) *GrpcServer {
	return &GrpcServer{
		core: core,
	}
}

func (s *GrpcServer) AddFriend(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := pb.DecodeAddFriendRequest(req)
	if err != nil {
		return nil, toStatus(err)
	}
	friend, err := s.core.AddFriend(ctx, in.Name, in.ImageRef)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(toPBFriend(friend).Struct())
}

func (s *GrpcServer) ListFriends(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	friends, err := s.core.ListFriends(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	out := pb.FriendList{Friends: make([]pb.Friend, 0, len(friends))}
	for _, f := range friends {
		out.Friends = append(out.Friends, toPBFriend(f))
	}
	return encode(out.Struct())
}

func (s *GrpcServer) GetFriend(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := pb.DecodeFriendRequest(req)
	if err != nil {
		return nil, toStatus(err)
	}
	friend, err := s.core.GetFriend(ctx, in.FriendID)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(toPBFriend(friend).Struct())
}

func (s *GrpcServer) SubmitSettlement(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	// 1. 解析請求
	in, err := pb.DecodeSettlementRequest(req)
	if err != nil {
		return nil, toStatus(err)
	}

	// 2. 組裝帳單 (缺漏欄位在這裡擋下)
	bill, err := domain.NewBill(in.BillTotal, in.PaidByUser, in.Payer)
	if err != nil {
		return nil, toStatus(err)
	}

	// 3. 套用分帳
	settlement, err := s.core.SubmitSettlement(ctx, in.FriendID, bill)
	if err != nil {
		return nil, toStatus(err)
	}

	return encode(pb.Settlement{
		ID:           settlement.ID.String(),
		BillTotal:    bill.Total,
		PaidByUser:   bill.PaidByUser,
		PaidByFriend: bill.PaidByFriend(),
		Payer:        bill.Payer.String(),
		Delta:        settlement.Delta,
		Friend:       toPBFriend(settlement.Friend),
		CreatedAt:    settlement.CreatedAt,
	}.Struct())
}

func toPBFriend(f domain.Friend) pb.Friend {
	return pb.Friend{
		ID:          f.ID,
		Name:        f.Name,
		ImageRef:    f.ImageRef,
		Balance:     f.Balance,
		Standing:    f.Standing().String(),
		Description: f.Describe(),
	}
}

func encode(s *structpb.Struct, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return s, nil
}

// toStatus 將業務錯誤轉成 gRPC status
func toStatus(err error) error {
	var code codes.Code
	switch {
	case errors.Is(err, pb.ErrMalformed), errors.Is(err, domain.ErrValidation):
		code = codes.InvalidArgument
	case errors.Is(err, domain.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, domain.ErrFriendAlreadyExists):
		code = codes.AlreadyExists
	case errors.Is(err, domain.ErrLedgerClosed):
		code = codes.Unavailable
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		code = codes.Internal
	}
	return status.Error(code, err.Error())
}

var _ pb.LedgerServiceServer = (*GrpcServer)(nil)
