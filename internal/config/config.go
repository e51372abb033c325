package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/JoeShih716/bill-splitz/internal/app/core/usecase"
)

// 帳本引擎
const (
	EngineSerial = "serial"
	EngineMutex  = "mutex"
)

const DefaultPath = "config/config.yaml"

type Config struct {
	Ledger  LedgerConfig  `yaml:"ledger"`
	GRPC    GRPCConfig    `yaml:"grpc"`
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
	Journal JournalConfig `yaml:"journal"`
	Seed    []SeedConfig  `yaml:"seed"`
}

type LedgerConfig struct {
	// serial | mutex
	Engine    string `yaml:"engine"`
	QueueSize int    `yaml:"queue_size"`
}

type GRPCConfig struct {
	Addr string `yaml:"addr"`
}

type HTTPConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type JournalConfig struct {
	// 空字串代表停用
	Path string `yaml:"path"`
}

// SeedConfig 啟動時載入的朋友
type SeedConfig struct {
	Name           string `yaml:"name"`
	Image          string `yaml:"image"`
	OpeningBalance int64  `yaml:"opening_balance"`
}

// Path 回傳設定檔路徑 (SPLITZ_CONFIG 可覆寫)
func Path() string {
	return getEnv("SPLITZ_CONFIG", DefaultPath)
}

// Load 讀取設定檔，套用環境變數與預設值
// 檔案不存在時只使用預設值
//
// 參數:
//
//	path: 設定檔路徑
//
// 回傳:
//
//	*Config: 設定 (尚未 Validate)
//	error: 讀檔或解析失敗
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.GRPC.Addr = getEnv("SPLITZ_GRPC_ADDR", c.GRPC.Addr)
	c.HTTP.Addr = getEnv("SPLITZ_HTTP_ADDR", c.HTTP.Addr)
	c.Ledger.Engine = getEnv("SPLITZ_LEDGER_ENGINE", c.Ledger.Engine)
	c.Ledger.QueueSize = getEnvInt("SPLITZ_LEDGER_QUEUE_SIZE", c.Ledger.QueueSize)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Journal.Path = getEnv("SPLITZ_JOURNAL_PATH", c.Journal.Path)
}

// 補全預設配置 (如果 yaml 沒寫)
func (c *Config) applyDefaults() {
	if c.Ledger.Engine == "" {
		c.Ledger.Engine = EngineSerial
	}
	if c.Ledger.QueueSize == 0 {
		c.Ledger.QueueSize = 1000
	}
	if c.GRPC.Addr == "" {
		c.GRPC.Addr = ":50051"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 5 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate 檢查設定，一次回報所有問題
func (c *Config) Validate() error {
	var errs []string

	if c.Ledger.Engine != EngineSerial && c.Ledger.Engine != EngineMutex {
		errs = append(errs, fmt.Sprintf("invalid ledger engine '%s': must be one of [%s %s]", c.Ledger.Engine, EngineSerial, EngineMutex))
	}
	if c.Ledger.QueueSize < 1 {
		errs = append(errs, fmt.Sprintf("invalid ledger queue size %d: must be at least 1", c.Ledger.QueueSize))
	}

	for name, addr := range map[string]string{"grpc": c.GRPC.Addr, "http": c.HTTP.Addr} {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s addr '%s': %v", name, addr, err))
		}
	}
	if c.HTTP.ReadTimeout < 0 || c.HTTP.WriteTimeout < 0 {
		errs = append(errs, "http timeouts must not be negative")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.Log.Level))
	}

	for i, s := range c.Seed {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Sprintf("seed[%d]: name cannot be empty", i))
		}
		if strings.TrimSpace(s.Image) == "" {
			errs = append(errs, fmt.Sprintf("seed[%d]: image cannot be empty", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// SeedFriends 轉成 usecase 的種子資料
func (c *Config) SeedFriends() []usecase.SeedFriend {
	seeds := make([]usecase.SeedFriend, 0, len(c.Seed))
	for _, s := range c.Seed {
		seeds = append(seeds, usecase.SeedFriend{
			Name:           s.Name,
			ImageRef:       s.Image,
			OpeningBalance: s.OpeningBalance,
		})
	}
	return seeds
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
