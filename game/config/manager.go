package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pomistea/turtle-escape/game/engine"
	"github.com/pomistea/turtle-escape/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Manager loads board configurations from a directory of JSON files
// and caches them by config ID (the filename without extension). Every
// board passes engine validation before it is served.
type Manager struct {
	configDir     string
	defaultConfig *engine.BoardConfig
	configs       map[string]*engine.BoardConfig
	mu            sync.RWMutex
}

// NewManager creates a manager over the given directory. The directory
// must exist; the default board is resolved immediately.
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.BoardConfig),
	}
	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}
	return m, nil
}

// LoadConfig returns the board with the given config ID, reading and
// validating its file on first use and serving the cache afterwards
func (m *Manager) LoadConfig(name string) (*engine.BoardConfig, error) {
	m.mu.RLock()
	if config, ok := m.configs[name]; ok {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have loaded it between the locks.
	if config, ok := m.configs[name]; ok {
		return config, nil
	}

	config, err := m.readConfigFile(name)
	if err != nil {
		return nil, err
	}

	m.configs[name] = config
	return config, nil
}

// readConfigFile reads, parses and validates one board file
func (m *Manager) readConfigFile(name string) (*engine.BoardConfig, error) {
	data, err := os.ReadFile(filepath.Join(m.configDir, jsonFilename(name)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config engine.BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := engine.ValidateBoardConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &config, nil
}

// ListConfigs describes every loadable board in the directory. Files
// that fail to parse or validate are skipped, not reported.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		configID := strings.TrimSuffix(entry.Name(), ".json")
		config, err := m.LoadConfig(configID)
		if err != nil {
			continue
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    configID,
			Name:        config.Name,
			Description: config.Description,
			Columns:     config.Columns,
			Rows:        config.Rows,
			MineCount:   engine.CountMines(config),
		})
	}
	return configs, nil
}

// GetDefault returns the board used when a session names no config
func (m *Manager) GetDefault() *engine.BoardConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault switches the default board to the named config
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops every cached board and re-resolves the default,
// picking up edits made to the files on disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.BoardConfig)
	m.mu.Unlock()

	// loadDefaultConfig takes the lock itself.
	return m.loadDefaultConfig()
}

// loadDefaultConfig resolves the default board: classic.json if
// present, else the first loadable board in the directory, else the
// built-in classic minefield
func (m *Manager) loadDefaultConfig() error {
	config, err := m.LoadConfig("classic")
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			m.setDefaultLocked(engine.DefaultBoardConfig())
			return nil
		}

		config, err = m.LoadConfig(configs[0].ConfigID)
		if err != nil {
			m.setDefaultLocked(engine.DefaultBoardConfig())
			return nil
		}
	}

	m.setDefaultLocked(config)
	return nil
}

func (m *Manager) setDefaultLocked(config *engine.BoardConfig) {
	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

// SaveConfig validates a board and writes it to the directory under
// the given config ID, updating the cache
func (m *Manager) SaveConfig(name string, config *engine.BoardConfig) error {
	if err := engine.ValidateBoardConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(m.configDir, jsonFilename(name))
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[name] = config
	m.mu.Unlock()
	return nil
}

// jsonFilename appends .json unless the name already carries it
func jsonFilename(name string) string {
	if strings.HasSuffix(name, ".json") {
		return name
	}
	return name + ".json"
}
