package journal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

type entry struct {
	Seq  int    `json:"seq"`
	Type string `json:"type"`
}

func readEntries(t *testing.T, path string) []entry {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer f.Close()

	var out []entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("decode line %q: %v", sc.Text(), err)
		}
		out = append(out, e)
	}
	return out
}

func TestJournalWriteAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := j.Write(entry{Seq: 1, Type: "friend_added"}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	// 重新開啟後應接續寫在檔尾
	j, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	if j.Path() != path {
		t.Errorf("Path() = %q, want %q", j.Path(), path)
	}
	if err := j.Write(entry{Seq: 2, Type: "settlement_applied"}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	j.Close()

	got := readEntries(t, path)
	if len(got) != 2 || got[0].Seq != 1 || got[1].Type != "settlement_applied" {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestJournalConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer j.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(seq int) {
			defer wg.Done()
			if err := j.Write(entry{Seq: seq, Type: "settlement_applied"}); err != nil {
				t.Errorf("Write() error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if got := readEntries(t, path); len(got) != 50 {
		t.Fatalf("got %d entries, want 50", len(got))
	}
}

func TestOpenInvalidPath(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing", "journal.log")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
