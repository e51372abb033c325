package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Ledger.Engine != EngineSerial || cfg.Ledger.QueueSize != 1000 {
		t.Errorf("ledger = %+v", cfg.Ledger)
	}
	if cfg.GRPC.Addr != ":50051" || cfg.HTTP.Addr != ":8080" {
		t.Errorf("addrs = %s %s", cfg.GRPC.Addr, cfg.HTTP.Addr)
	}
	if cfg.HTTP.ReadTimeout != 5*time.Second || cfg.HTTP.WriteTimeout != 10*time.Second {
		t.Errorf("timeouts = %v %v", cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)
	}
	if cfg.Log.Level != "info" || cfg.Journal.Path != "" || len(cfg.Seed) != 0 {
		t.Errorf("cfg = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
ledger:
  engine: mutex
grpc:
  addr: "127.0.0.1:6000"
http:
  addr: ":9000"
  read_timeout: 2s
journal:
  path: ./data/journal.log
seed:
  - name: James
    image: https://i.pravatar.cc/48?img=8
    opening_balance: -10
  - name: Anthony
    image: https://i.pravatar.cc/48?u=499476
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Ledger.Engine != EngineMutex || cfg.GRPC.Addr != "127.0.0.1:6000" || cfg.HTTP.Addr != ":9000" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.HTTP.ReadTimeout != 2*time.Second || cfg.HTTP.WriteTimeout != 10*time.Second {
		t.Errorf("timeouts = %v %v", cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)
	}
	if cfg.Journal.Path != "./data/journal.log" {
		t.Errorf("journal path = %q", cfg.Journal.Path)
	}

	seeds := cfg.SeedFriends()
	if len(seeds) != 2 || seeds[0].Name != "James" || seeds[0].OpeningBalance != -10 || seeds[1].OpeningBalance != 0 {
		t.Errorf("seeds = %+v", seeds)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "grpc:\n  addr: \":1111\"\nlog:\n  level: debug\n")
	t.Setenv("SPLITZ_GRPC_ADDR", ":2222")
	t.Setenv("SPLITZ_LEDGER_ENGINE", "mutex")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.GRPC.Addr != ":2222" || cfg.Ledger.Engine != EngineMutex || cfg.Log.Level != "warn" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeFile(t, "ledger: [")); err == nil {
		t.Fatal("Load() succeeded on invalid yaml")
	}
}

func TestPath(t *testing.T) {
	if got := Path(); got != DefaultPath {
		t.Errorf("Path() = %q, want %q", got, DefaultPath)
	}
	t.Setenv("SPLITZ_CONFIG", "/etc/splitz.yaml")
	if got := Path(); got != "/etc/splitz.yaml" {
		t.Errorf("Path() = %q", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Ledger: LedgerConfig{Engine: EngineSerial, QueueSize: 10},
			GRPC:   GRPCConfig{Addr: ":50051"},
			HTTP:   HTTPConfig{Addr: ":8080", ReadTimeout: time.Second, WriteTimeout: time.Second},
			Log:    LogConfig{Level: "info"},
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		errorString string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:        "invalid engine",
			mutate:      func(c *Config) { c.Ledger.Engine = "lmax" },
			errorString: "invalid ledger engine 'lmax': must be one of [serial mutex]",
		},
		{
			name:        "invalid queue size",
			mutate:      func(c *Config) { c.Ledger.QueueSize = 0 },
			errorString: "invalid ledger queue size 0: must be at least 1",
		},
		{
			name:        "invalid grpc addr",
			mutate:      func(c *Config) { c.GRPC.Addr = "50051" },
			errorString: "invalid grpc addr '50051'",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.Log.Level = "loud" },
			errorString: "invalid log level 'loud'",
		},
		{
			name:        "seed without image",
			mutate:      func(c *Config) { c.Seed = []SeedConfig{{Name: "James"}} },
			errorString: "seed[0]: image cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errorString == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errorString) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.errorString)
			}
		})
	}

	t.Run("aggregates every problem", func(t *testing.T) {
		cfg := valid()
		cfg.Ledger.Engine = "x"
		cfg.Log.Level = "y"
		err := cfg.Validate()
		if err == nil || strings.Count(err.Error(), "\n- ") != 2 {
			t.Fatalf("Validate() error = %v", err)
		}
	})
}
