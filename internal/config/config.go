package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/emurenMRz/list-unsubscribe/internal/logger"
)

// Environment keys
const (
	EnvFile    = "LIST_UNSUBSCRIBE_ENV"
	EnvMailto  = "LIST_UNSUBSCRIBE_MAILTO"
	EnvBrowser = "LIST_UNSUBSCRIBE_BROWSER"
	EnvLevel   = "LOG_LEVEL"
)

// Config holds the settings that do not come from the command line.
type Config struct {
	LogLevel       zapcore.Level
	AcceptMailto   bool
	BrowserCommand []string // empty means the platform default
	EnvFile        string   // env file that was loaded, if any
	Warnings       []string // problems worth logging once a logger exists
}

// Lookup has the signature of os.LookupEnv
type Lookup func(key string) (string, bool)

// Load reads settings from the environment, filling in gaps from an optional
// env file. Variables already set in the environment win over the file.
func Load(lookup Lookup) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	path := envFilePath(lookup)
	fileValues := map[string]string{}
	cfg := &Config{}
	if path != "" {
		values, err := godotenv.Read(path)
		switch {
		case err == nil:
			fileValues = values
			cfg.EnvFile = path
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read env file %s: %w", path, err)
		}
	}

	get := func(key string) string {
		if v, ok := lookup(key); ok {
			return v
		}
		return fileValues[key]
	}

	level, ok := logger.ParseLevel(get(EnvLevel))
	if !ok {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid %s %q, using %s", EnvLevel, get(EnvLevel), level))
	}
	cfg.LogLevel = level

	if v := get(EnvMailto); v != "" {
		mailto, err := strconv.ParseBool(v)
		if err != nil {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("invalid %s %q, ignoring", EnvMailto, v))
		}
		cfg.AcceptMailto = mailto
	}

	cfg.BrowserCommand = browserCommand(get(EnvBrowser), get("BROWSER"))
	return cfg, nil
}

func envFilePath(lookup Lookup) string {
	if v, ok := lookup(EnvFile); ok {
		return v
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "list-unsubscribe", "env")
}

// browserCommand prefers our own setting over $BROWSER. $BROWSER may list
// several commands separated by ":"; only the first is used.
func browserCommand(own, browser string) []string {
	if fields := strings.Fields(own); len(fields) > 0 {
		return fields
	}
	first, _, _ := strings.Cut(browser, string(os.PathListSeparator))
	return strings.Fields(first)
}
