package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/JoeShih716/bill-splitz/internal/app/core/domain"
	"github.com/JoeShih716/bill-splitz/internal/app/core/usecase"
)

// DefaultQueueSize 輸送帶預設容量
const DefaultQueueSize = 1000

type commandKind uint8

const (
	commandAddFriend commandKind = iota + 1
	commandApplyDelta
)

// command 的處理狀態，呼叫端放棄與核心取走之間以 CAS 決定勝負
const (
	commandPending int32 = iota
	commandTaken
	commandAbandoned
)

// command 寫入請求，Result 讓呼叫端可以等待結果
type command struct {
	kind     commandKind
	friend   domain.Friend
	friendID string
	delta    int64
	status   atomic.Int32
	result   chan commandResult
}

type commandResult struct {
	friend domain.Friend
	err    error
}

// SerialLedger 單一寫入者的帳本
//
// 所有寫入都排進 channel，由唯一的 run loop 依序套用，不會有更新遺失；
// 讀取直接載入 atomic 快照，不經過輸送帶。
//
// AddFriend/ApplyDelta(等待) -> Channel -> Run Loop -> 新快照 -> Result Channel -> 呼叫端
type SerialLedger struct {
	snapshot atomic.Pointer[state]
	// 輸送帶 負責接收寫入
	commands chan *command
	// Pool 減少 GC 壓力
	commandPool sync.Pool
	// run loop 結束時關閉
	done      chan struct{}
	startOnce sync.Once
}

// NewSerialLedger 建立一個新的 SerialLedger，需呼叫 Start 後才會處理寫入
//
// 參數:
//
//	queueSize: 輸送帶容量 (<= 0 時使用 DefaultQueueSize)
func NewSerialLedger(queueSize int) *SerialLedger {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	l := &SerialLedger{
		commands: make(chan *command, queueSize),
		done:     make(chan struct{}),
		commandPool: sync.Pool{
			New: func() any {
				return &command{result: make(chan commandResult, 1)}
			},
		},
	}
	l.snapshot.Store(newState())
	return l
}

// Start 啟動核心引擎 (非同步)，ctx 結束時處理完剩餘的寫入後停止
func (l *SerialLedger) Start(ctx context.Context) {
	l.startOnce.Do(func() {
		go l.run(ctx)
	})
}

// Done 在 run loop 結束後關閉
func (l *SerialLedger) Done() <-chan struct{} {
	return l.done
}

func (l *SerialLedger) run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			// 收到關閉信號，把剩下的寫入處理完
			l.drain()
			return
		case cmd := <-l.commands:
			l.process(cmd)
		}
	}
}

func (l *SerialLedger) drain() {
	for {
		select {
		case cmd := <-l.commands:
			l.process(cmd)
		default:
			return
		}
	}
}

// process 套用單筆寫入並回傳結果，只在 run loop 中執行
func (l *SerialLedger) process(cmd *command) {
	// 呼叫端已放棄，不套用
	if !cmd.status.CompareAndSwap(commandPending, commandTaken) {
		return
	}

	current := l.snapshot.Load()
	var (
		next   *state
		friend domain.Friend
		err    error
	)
	switch cmd.kind {
	case commandAddFriend:
		next, err = current.withFriend(cmd.friend)
		friend = cmd.friend
	case commandApplyDelta:
		next, friend, err = current.withDelta(cmd.friendID, cmd.delta)
	}

	if err == nil {
		l.snapshot.Store(next)
	} else {
		friend = domain.Friend{}
	}
	cmd.result <- commandResult{friend: friend, err: err}
}

// submit 將寫入放上輸送帶並等待結果
//
// ctx 在核心取走前結束時回傳 ctx.Err()，並保證這筆寫入不會被套用；
// 核心已取走則一定等到結果。
func (l *SerialLedger) submit(ctx context.Context, cmd *command) (domain.Friend, error) {
	select {
	case <-l.done:
		l.release(cmd)
		return domain.Friend{}, domain.ErrLedgerClosed
	case <-ctx.Done():
		l.release(cmd)
		return domain.Friend{}, ctx.Err()
	case l.commands <- cmd:
	}

	select {
	case res := <-cmd.result:
		l.release(cmd)
		return res.friend, res.err
	case <-ctx.Done():
		if cmd.status.CompareAndSwap(commandPending, commandAbandoned) {
			// 還在輸送帶上，不放回 Pool
			return domain.Friend{}, ctx.Err()
		}
		res := <-cmd.result
		l.release(cmd)
		return res.friend, res.err
	case <-l.done:
		// run loop 可能在結束前處理了這筆，結果先於 done 送出
		select {
		case res := <-cmd.result:
			l.release(cmd)
			return res.friend, res.err
		default:
		}
		cmd.status.Store(commandAbandoned)
		return domain.Friend{}, domain.ErrLedgerClosed
	}
}

func (l *SerialLedger) acquire(kind commandKind) *command {
	cmd := l.commandPool.Get().(*command)
	cmd.kind = kind
	cmd.status.Store(commandPending)
	// 清空 Channel (理論上應該是空的)
	select {
	case <-cmd.result:
	default:
	}
	return cmd
}

func (l *SerialLedger) release(cmd *command) {
	cmd.friend = domain.Friend{}
	cmd.friendID = ""
	cmd.delta = 0
	l.commandPool.Put(cmd)
}

// AddFriend 新增朋友
//
// 參數:
//
//	ctx: 上下文
//	name: 朋友名稱
//	imageRef: 頭像
//
// 回傳:
//
//	domain.Friend: 新朋友 (餘額 0)
//	error: 驗證錯誤 / ErrLedgerClosed / ctx.Err()
func (l *SerialLedger) AddFriend(ctx context.Context, name, imageRef string) (domain.Friend, error) {
	friend, err := domain.NewFriend(name, imageRef)
	if err != nil {
		return domain.Friend{}, err
	}
	cmd := l.acquire(commandAddFriend)
	cmd.friend = friend
	return l.submit(ctx, cmd)
}

// ApplyDelta 調整朋友餘額
//
// 參數:
//
//	ctx: 上下文
//	friendID: 朋友 ID
//	delta: 餘額變動 (可正可負)
//
// 回傳:
//
//	domain.Friend: 更新後的朋友
//	error: ErrFriendNotFound / ErrBalanceOverflow / ErrLedgerClosed / ctx.Err()
func (l *SerialLedger) ApplyDelta(ctx context.Context, friendID string, delta int64) (domain.Friend, error) {
	cmd := l.acquire(commandApplyDelta)
	cmd.friendID = friendID
	cmd.delta = delta
	return l.submit(ctx, cmd)
}

// ListFriends 依加入順序回傳朋友快照
func (l *SerialLedger) ListFriends(ctx context.Context) ([]domain.Friend, error) {
	return l.snapshot.Load().list(), nil
}

// GetFriend 取得指定朋友
func (l *SerialLedger) GetFriend(ctx context.Context, friendID string) (domain.Friend, error) {
	return l.snapshot.Load().get(friendID)
}

var _ usecase.Ledger = (*SerialLedger)(nil)
