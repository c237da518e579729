package config

import (
	"flag"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the command-line configuration. Flags win over the
// environment, which wins over the defaults.
type Config struct {
	DataRoot     string
	Workers      int
	CacheEntries int
	JSON         bool
	Serial       bool
	NoValidate   bool
}

// Load reads an optional .env file, then parses args. It returns the
// configuration and the arguments left after the flags.
func Load(args []string) (*Config, []string, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataRoot:     firstNonEmpty(strings.TrimSpace(os.Getenv("DLG3_DATA_ROOT")), "."),
		Workers:      envInt("DLG3_WORKERS", runtime.NumCPU()),
		CacheEntries: envInt("DLG3_CACHE_ENTRIES", 64),
		JSON:         envBool("DLG3_JSON", false),
	}

	fs := flag.NewFlagSet("dlg3", flag.ContinueOnError)
	fs.StringVar(&cfg.DataRoot, "root", cfg.DataRoot, "directory holding the DLG-3 category directories")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel parse workers")
	fs.IntVar(&cfg.CacheEntries, "cache", cfg.CacheEntries, "parsed files kept in memory")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "write JSON instead of text")
	fs.BoolVar(&cfg.Serial, "serial", false, "load files one at a time")
	fs.BoolVar(&cfg.NoValidate, "no-validate", false, "skip id and linkage validation")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.CacheEntries <= 0 {
		cfg.CacheEntries = 64
	}
	return cfg, fs.Args(), nil
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
