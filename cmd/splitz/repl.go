package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/JoeShih716/bill-splitz/internal/app/core/domain"
	pb "github.com/JoeShih716/bill-splitz/proto"
)

const defaultImage = "https://i.pravatar.cc/48"

const helpText = `commands:
  list                              show friends and balances
  add <name> [image]                add a friend (default image ` + defaultImage + `?u=<unique>)
  select <id|#n>                    select a friend, again to deselect
  split <bill> <yours> <you|friend> split a bill with the selected friend
  help                              show this help
  quit                              exit
`

// repl 互動式命令列，持有目前選取的朋友
type repl struct {
	client    pb.LedgerServiceClient
	out       io.Writer
	timeout   time.Duration
	selection domain.Selection
}

func newREPL(client pb.LedgerServiceClient, out io.Writer) *repl {
	return &repl{
		client:  client,
		out:     out,
		timeout: 5 * time.Second,
	}
}

// run 逐行讀取指令直到 quit 或 EOF
func (r *repl) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(r.out, "> ")
	for scanner.Scan() {
		quit, err := r.exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(r.out, "error: %s\n", message(err))
		}
		if quit {
			return nil
		}
		fmt.Fprint(r.out, "> ")
	}
	return scanner.Err()
}

func (r *repl) exec(ctx context.Context, line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	switch strings.ToLower(args[0]) {
	case "list", "ls":
		return false, r.list(ctx)
	case "add":
		return false, r.add(ctx, args[1:])
	case "select", "sel":
		return false, r.selectFriend(ctx, args[1:])
	case "split":
		return false, r.split(ctx, args[1:])
	case "help", "?":
		fmt.Fprint(r.out, helpText)
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q, try help", args[0])
	}
}

func (r *repl) friends(ctx context.Context) ([]pb.Friend, error) {
	resp, err := r.client.ListFriends(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, err
	}
	list, err := pb.DecodeFriendList(resp)
	if err != nil {
		return nil, err
	}
	return list.Friends, nil
}

func (r *repl) list(ctx context.Context) error {
	friends, err := r.friends(ctx)
	if err != nil {
		return err
	}
	if len(friends) == 0 {
		fmt.Fprintln(r.out, "no friends yet, try: add <name>")
		return nil
	}
	selected, _ := r.selection.Selected()
	for i, f := range friends {
		mark := " "
		if f.ID == selected {
			mark = "*"
		}
		fmt.Fprintf(r.out, "%s %d. %-12s %s\n", mark, i+1, f.Name, f.Description)
	}
	return nil
}

func (r *repl) add(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: add <name> [image]")
	}
	// 預設頭像加上唯一參數，每位朋友拿到不同的頭像
	image := defaultImage + "?u=" + uuid.NewString()
	if last := args[len(args)-1]; len(args) > 1 && strings.HasPrefix(last, "http") {
		image = last
		args = args[:len(args)-1]
	}

	req, err := pb.AddFriendRequest{Name: strings.Join(args, " "), ImageRef: image}.Struct()
	if err != nil {
		return err
	}
	resp, err := r.client.AddFriend(ctx, req)
	if err != nil {
		return err
	}
	f, err := pb.DecodeFriend(resp)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "added %s (%s)\n", f.Name, f.ID)
	return nil
}

func (r *repl) selectFriend(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: select <id|#n>")
	}
	friends, err := r.friends(ctx)
	if err != nil {
		return err
	}
	f, err := findFriend(friends, args[0])
	if err != nil {
		return err
	}

	switch r.selection.Toggle(f.ID) {
	case domain.SelectionFriend:
		fmt.Fprintf(r.out, "selected %s: %s\n", f.Name, f.Description)
	default:
		fmt.Fprintf(r.out, "deselected %s\n", f.Name)
	}
	return nil
}

func (r *repl) split(ctx context.Context, args []string) error {
	friendID, ok := r.selection.Selected()
	if !ok {
		return fmt.Errorf("select a friend first")
	}
	if len(args) != 3 {
		return fmt.Errorf("usage: split <bill> <yours> <you|friend>")
	}

	total, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || total < 0 {
		return fmt.Errorf("bill must be a non-negative whole number")
	}
	yours, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("your expense must be a whole number")
	}
	// 輸入階段先夾在 [0, bill]
	yours = domain.ClampPaidByUser(total, yours)

	payer, err := domain.ParsePayer(args[2])
	if err != nil {
		return err
	}

	req, err := pb.SettlementRequest{
		FriendID:   friendID,
		BillTotal:  &total,
		PaidByUser: &yours,
		Payer:      payer.String(),
	}.Struct()
	if err != nil {
		return err
	}
	resp, err := r.client.SubmitSettlement(ctx, req)
	if err != nil {
		return err
	}
	st, err := pb.DecodeSettlement(resp)
	if err != nil {
		return err
	}

	r.selection.Clear()
	fmt.Fprintf(r.out, "split $%d: you $%d, %s $%d. %s\n",
		st.BillTotal, st.PaidByUser, st.Friend.Name, st.PaidByFriend, st.Friend.Description)
	return nil
}

// findFriend 依 ID 或 #n (清單序號) 找朋友
func findFriend(friends []pb.Friend, ref string) (pb.Friend, error) {
	if n, ok := strings.CutPrefix(ref, "#"); ok {
		i, err := strconv.Atoi(n)
		if err != nil || i < 1 || i > len(friends) {
			return pb.Friend{}, fmt.Errorf("no friend %s", ref)
		}
		return friends[i-1], nil
	}
	for _, f := range friends {
		if f.ID == ref {
			return f, nil
		}
	}
	return pb.Friend{}, fmt.Errorf("no friend %s", ref)
}

func message(err error) string {
	if s, ok := status.FromError(err); ok {
		return s.Message()
	}
	return err.Error()
}
