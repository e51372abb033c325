// Package journal 提供 append-only 的 JSON Lines 稽核紀錄
//
// 每筆資料寫入後立即 fsync。紀錄只供事後查閱，程式啟動時不會重放。
package journal

import (
	"encoding/json"
	"io/fs"
	"os"
	"sync"
)

// rw-r--r-- (擁有者讀寫，其他人唯讀)
const FileMode fs.FileMode = 0644

type Journal struct {
	file *os.File
	mu   sync.Mutex
}

// Open 開啟或建立一個 journal 檔案
// O_APPEND 每次寫入時自動跳到文件末尾
// O_CREATE 如果文件不存在則建立
func Open(path string) (*Journal, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, FileMode)
	if err != nil {
		return nil, err
	}
	return &Journal{file: file}, nil
}

// Write 寫入一筆資料並刷入硬碟
func (j *Journal) Write(v any) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := json.NewEncoder(j.file).Encode(v); err != nil {
		return err
	}
	return j.file.Sync()
}

// Path 回傳檔案路徑
func (j *Journal) Path() string {
	return j.file.Name()
}

// Close 關閉檔案
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}
