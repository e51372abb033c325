// Package proto 定義 splitz.v1.LedgerService 的 gRPC 服務描述
//
// 訊息本體使用 google.protobuf.Struct，欄位名稱與型別見 messages.go。
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "splitz.v1.LedgerService"

const (
	LedgerService_AddFriend_FullMethodName        = "/splitz.v1.LedgerService/AddFriend"
	LedgerService_ListFriends_FullMethodName      = "/splitz.v1.LedgerService/ListFriends"
	LedgerService_GetFriend_FullMethodName        = "/splitz.v1.LedgerService/GetFriend"
	LedgerService_SubmitSettlement_FullMethodName = "/splitz.v1.LedgerService/SubmitSettlement"
)

// LedgerServiceClient 是 LedgerService 的客戶端 API
type LedgerServiceClient interface {
	AddFriend(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListFriends(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetFriend(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SubmitSettlement(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type ledgerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerServiceClient(cc grpc.ClientConnInterface) LedgerServiceClient {
	return &ledgerServiceClient{cc}
}

func (c *ledgerServiceClient) AddFriend(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, LedgerService_AddFriend_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) ListFriends(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, LedgerService_ListFriends_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) GetFriend(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, LedgerService_GetFriend_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) SubmitSettlement(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, LedgerService_SubmitSettlement_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// LedgerServiceServer 是 LedgerService 的伺服端 API
type LedgerServiceServer interface {
	AddFriend(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListFriends(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetFriend(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SubmitSettlement(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerService_ServiceDesc, srv)
}

func _LedgerService_AddFriend_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).AddFriend(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LedgerService_AddFriend_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LedgerServiceServer).AddFriend(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _LedgerService_ListFriends_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).ListFriends(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LedgerService_ListFriends_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LedgerServiceServer).ListFriends(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _LedgerService_GetFriend_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).GetFriend(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LedgerService_GetFriend_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LedgerServiceServer).GetFriend(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _LedgerService_SubmitSettlement_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).SubmitSettlement(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LedgerService_SubmitSettlement_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LedgerServiceServer).SubmitSettlement(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// LedgerService_ServiceDesc 是 LedgerService 的 grpc.ServiceDesc
var LedgerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddFriend", Handler: _LedgerService_AddFriend_Handler},
		{MethodName: "ListFriends", Handler: _LedgerService_ListFriends_Handler},
		{MethodName: "GetFriend", Handler: _LedgerService_GetFriend_Handler},
		{MethodName: "SubmitSettlement", Handler: _LedgerService_SubmitSettlement_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "splitz/v1/ledger.proto",
}
