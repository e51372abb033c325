package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	grpc_adapter "github.com/JoeShih716/bill-splitz/internal/app/core/adapter/in/grpc"
	"github.com/JoeShih716/bill-splitz/internal/app/core/adapter/out/memory"
	"github.com/JoeShih716/bill-splitz/internal/app/core/usecase"
	pb "github.com/JoeShih716/bill-splitz/proto"
)

// localClient 直接呼叫 GrpcServer，不經過網路
type localClient struct {
	srv *grpc_adapter.GrpcServer
}

func (c localClient) AddFriend(ctx context.Context, in *structpb.Struct, _ ...grpc.CallOption) (*structpb.Struct, error) {
	return c.srv.AddFriend(ctx, in)
}

func (c localClient) ListFriends(ctx context.Context, in *emptypb.Empty, _ ...grpc.CallOption) (*structpb.Struct, error) {
	return c.srv.ListFriends(ctx, in)
}

func (c localClient) GetFriend(ctx context.Context, in *structpb.Struct, _ ...grpc.CallOption) (*structpb.Struct, error) {
	return c.srv.GetFriend(ctx, in)
}

func (c localClient) SubmitSettlement(ctx context.Context, in *structpb.Struct, _ ...grpc.CallOption) (*structpb.Struct, error) {
	return c.srv.SubmitSettlement(ctx, in)
}

func newTestREPL(t *testing.T, seeds ...usecase.SeedFriend) (*repl, *bytes.Buffer) {
	t.Helper()
	core := usecase.NewCoreUseCase(memory.NewMutexLedger())
	if err := core.Seed(context.Background(), seeds); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	var out bytes.Buffer
	return newREPL(localClient{srv: grpc_adapter.NewGrpcServer(core)}, &out), &out
}

func TestREPL_Session(t *testing.T) {
	r, out := newTestREPL(t,
		usecase.SeedFriend{Name: "James", ImageRef: "img", OpeningBalance: -10},
		usecase.SeedFriend{Name: "Sarah", ImageRef: "img", OpeningBalance: 10},
	)

	input := strings.Join([]string{
		"list",
		"select #1",
		"split 20 10 you",
		"list",
		"quit",
		"list",
	}, "\n")
	if err := r.run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"You owe James $10",
		"Sarah owes you $10",
		"selected James: You owe James $10",
		"split $20: you $10, James $10. You and James are even",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	// quit 之後的指令不執行
	if strings.Count(got, "Sarah owes you $10") != 2 {
		t.Errorf("expected exactly two listings:\n%s", got)
	}
	if _, ok := r.selection.Selected(); ok {
		t.Error("selection not cleared after split")
	}
}

func TestREPL_Commands(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"empty list", []string{"list"}, "no friends yet"},
		{"add with default image", []string{"add Anthony", "list"}, "You and Anthony are even"},
		{"add multi word name with image", []string{"add Mary Ann https://i.pravatar.cc/48?u=1", "list"}, "Mary Ann"},
		{"split without selection", []string{"add Anthony", "split 10 5 you"}, "error: select a friend first"},
		{"split with bad payer", []string{"add Anthony", "select #1", "split 10 5 nobody"}, "error: validation failed: payer must be user or friend"},
		{"split clamps your expense", []string{"add Anthony", "select #1", "split 10 50 friend"}, "split $10: you $10, Anthony $0. You owe Anthony $10"},
		{"split zero bill", []string{"add Anthony", "select #1", "split 0 0 you"}, "error: validation failed: bill total is required"},
		{"select toggles", []string{"add Anthony", "select #1", "select #1"}, "deselected Anthony"},
		{"select unknown", []string{"select #3"}, "error: no friend #3"},
		{"unknown command", []string{"dance"}, `error: unknown command "dance"`},
		{"help", []string{"help"}, "split <bill> <yours> <you|friend>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out := newTestREPL(t)
			if err := r.run(context.Background(), strings.NewReader(strings.Join(tt.lines, "\n"))); err != nil {
				t.Fatalf("run() error: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Fatalf("output missing %q:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestREPL_AddGivesDefaultImagesDistinctRefs(t *testing.T) {
	r, _ := newTestREPL(t)
	ctx := context.Background()
	for _, line := range []string{"add James", "add Sarah", "add Mary https://example.com/mary.png"} {
		if _, err := r.exec(ctx, line); err != nil {
			t.Fatalf("exec(%q) error: %v", line, err)
		}
	}

	friends, err := r.friends(ctx)
	if err != nil {
		t.Fatalf("friends() error: %v", err)
	}
	if len(friends) != 3 {
		t.Fatalf("got %d friends, want 3", len(friends))
	}
	for _, f := range friends[:2] {
		if !strings.HasPrefix(f.ImageRef, defaultImage+"?u=") {
			t.Errorf("%s image = %q, want default with unique suffix", f.Name, f.ImageRef)
		}
	}
	if friends[0].ImageRef == friends[1].ImageRef {
		t.Errorf("default images collide: %q", friends[0].ImageRef)
	}
	// 指定的頭像保持原樣
	if friends[2].ImageRef != "https://example.com/mary.png" {
		t.Errorf("explicit image = %q", friends[2].ImageRef)
	}
}

func TestFindFriend(t *testing.T) {
	friends := []pb.Friend{{ID: "a", Name: "James"}, {ID: "b", Name: "Sarah"}}

	if f, err := findFriend(friends, "#2"); err != nil || f.ID != "b" {
		t.Errorf("findFriend(#2) = %+v, %v", f, err)
	}
	if f, err := findFriend(friends, "a"); err != nil || f.Name != "James" {
		t.Errorf("findFriend(a) = %+v, %v", f, err)
	}
	for _, ref := range []string{"#0", "#x", "c"} {
		if _, err := findFriend(friends, ref); err == nil {
			t.Errorf("findFriend(%q) succeeded", ref)
		}
	}
}
