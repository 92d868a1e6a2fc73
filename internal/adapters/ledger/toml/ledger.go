// Package toml persists the daily usage and client ledgers as whole-record
// TOML files. A missing or unparsable file always reads as "zero calls used
// today", so a torn write can at worst lose the latest increments, never
// overstate them.
package toml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName     = "config"
	configType     = "toml"
	configDir      = ".makemefly"
	ledgerFileMode = 0o600
	ledgerDirMode  = 0o700

	usagePathKey     = "usage.path"
	usageCapKey      = "usage.daily_cap"
	usageFile        = "api_usage.toml"
	defaultUsageCap  = 1000
	clientsPathKey   = "clients.path"
	clientsCapKey    = "clients.daily_cap"
	clientsFile      = "client_limits.toml"
	defaultClientCap = 10

	tempFilePattern = ".ledger-*.toml.tmp"
	dayLayout       = "2006-01-02"
)

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.Mutex{}
)

// LoadConfig reads ~/.makemefly/config.toml (if present) and applies ledger
// defaults. Both ledger constructors accept the returned viper.
func LoadConfig(cfg *viper.Viper) (*viper.Viper, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetDefault(usagePathKey, filepath.Join(homeDir, configDir, usageFile))
	cfg.SetDefault(usageCapKey, defaultUsageCap)
	cfg.SetDefault(clientsPathKey, filepath.Join(homeDir, configDir, clientsFile))
	cfg.SetDefault(clientsCapKey, defaultClientCap)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

func dayKey(now time.Time) string {
	return now.UTC().Format(dayLayout)
}

func normalizeLedgerPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve ledger path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.Mutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.Mutex{}
	pathLockMap[path] = mu
	return mu
}

// readRecord decodes the whole ledger file into out. Missing and corrupt
// files leave out at its zero value: the fallback the persistence contract
// requires.
func readRecord(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read ledger file: %w", err)
	}

	if err := toml.Unmarshal(data, out); err != nil {
		// Unparsable state reads as a fresh ledger rather than failing the
		// batch; the next write replaces it.
		return nil
	}

	return nil
}

func writeRecord(path string, record any) error {
	if err := os.MkdirAll(filepath.Dir(path), ledgerDirMode); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}

	data, err := toml.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode ledger file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp ledger file: %w", err)
	}

	if err := tempFile.Chmod(ledgerFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp ledger file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp ledger file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace ledger file: %w", err)
	}

	cleanup = false

	return nil
}
