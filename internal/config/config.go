package config

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/zhubert/chatpane/internal/errors"
)

const (
	// DefaultBaseURL is the chat API the viewer talks to out of the box
	DefaultBaseURL = "https://devapi.beyondchats.com"

	// DefaultMaxPage is the last page the pager will advance to.
	// The API reports no page count, so this is a fixed upper bound.
	DefaultMaxPage = 10

	// DefaultRequestTimeout bounds every API request
	DefaultRequestTimeout = 30 * time.Second

	// DefaultSlowLoadSeconds is how long a load may take before a desktop notification is sent
	DefaultSlowLoadSeconds = 5

	// EnvPrefix is the prefix of environment overrides, e.g. CHATPANE_BASE_URL
	EnvPrefix = "CHATPANE"
)

// Config holds the application configuration
type Config struct {
	BaseURL               string `json:"base_url" validate:"required,url"`
	MaxPage               int    `json:"max_page" validate:"min=1,max=10000"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds" validate:"min=1,max=600"`
	Theme                 string `json:"theme,omitempty"`                 // UI theme name (e.g., "dark-purple", "nord")
	NotificationsEnabled  bool   `json:"notifications_enabled,omitempty"` // Desktop notifications for slow loads
	SlowLoadSeconds       int    `json:"slow_load_seconds" validate:"min=0,max=600"`

	mu       sync.RWMutex
	filePath string
}

// envOverrides are read from CHATPANE_* environment variables.
// Unset variables leave the file value in place.
type envOverrides struct {
	BaseURL               string `envconfig:"BASE_URL"`
	MaxPage               *int   `envconfig:"MAX_PAGE"`
	RequestTimeoutSeconds *int   `envconfig:"REQUEST_TIMEOUT_SECONDS"`
	Theme                 string `envconfig:"THEME"`
	NotificationsEnabled  *bool  `envconfig:"NOTIFICATIONS"`
	SlowLoadSeconds       *int   `envconfig:"SLOW_LOAD_SECONDS"`
}

var validate = validator.New()

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".chatpane"), nil
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Default returns a config populated with defaults and no backing file.
func Default() *Config {
	return &Config{
		BaseURL:               DefaultBaseURL,
		MaxPage:               DefaultMaxPage,
		RequestTimeoutSeconds: int(DefaultRequestTimeout / time.Second),
		SlowLoadSeconds:       DefaultSlowLoadSeconds,
	}
}

// Load reads the config file, applies environment overrides, and validates the result.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, errors.ConfigLoadFailed("~/.chatpane", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the config at path, or returns defaults if it doesn't exist.
// Environment overrides are not applied, so the result is safe to Save.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	cfg.filePath = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Missing files are skipped; existing variables are not overwritten.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return errors.ConfigLoadFailed(p, err)
		}
	}
	return nil
}

// ApplyEnv overlays CHATPANE_* environment variables onto the config.
func (c *Config) ApplyEnv() error {
	var ov envOverrides
	if err := envconfig.Process(EnvPrefix, &ov); err != nil {
		return errors.E(errors.Op("config.ApplyEnv"), errors.KindConfig, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ov.BaseURL != "" {
		c.BaseURL = ov.BaseURL
	}
	if ov.MaxPage != nil {
		c.MaxPage = *ov.MaxPage
	}
	if ov.RequestTimeoutSeconds != nil {
		c.RequestTimeoutSeconds = *ov.RequestTimeoutSeconds
	}
	if ov.Theme != "" {
		c.Theme = ov.Theme
	}
	if ov.NotificationsEnabled != nil {
		c.NotificationsEnabled = *ov.NotificationsEnabled
	}
	if ov.SlowLoadSeconds != nil {
		c.SlowLoadSeconds = *ov.SlowLoadSeconds
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) {
			reasons := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				reasons = append(reasons, describeFieldError(fe))
			}
			return errors.ConfigInvalid(strings.Join(reasons, "; "))
		}
		return errors.ConfigInvalid(err.Error())
	}
	return nil
}

// ValidateBaseURL checks a base URL against the same rule as the base_url field.
func ValidateBaseURL(raw string) error {
	if err := validate.Var(strings.TrimSpace(raw), "required,url"); err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("base_url must be an absolute URL, got %q", raw))
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	name := jsonFieldNames[fe.StructField()]
	if name == "" {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "url":
		return fmt.Sprintf("%s must be an absolute URL, got %q", name, fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", name, fe.Tag())
	}
}

var jsonFieldNames = map[string]string{
	"BaseURL":               "base_url",
	"MaxPage":               "max_page",
	"RequestTimeoutSeconds": "request_timeout_seconds",
	"SlowLoadSeconds":       "slow_load_seconds",
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return errors.ConfigSaveFailed("", fmt.Errorf("config has no file path"))
	}

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// FilePath returns the path the config is loaded from and saved to
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// SetFilePath sets the path used by Save
func (c *Config) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filePath = path
}

// GetBaseURL returns the API base URL
func (c *Config) GetBaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.BaseURL
}

// SetBaseURL sets the API base URL
func (c *Config) SetBaseURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.BaseURL = strings.TrimRight(url, "/")
}

// GetMaxPage returns the pager's upper bound
func (c *Config) GetMaxPage() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.MaxPage < 1 {
		return DefaultMaxPage
	}
	return c.MaxPage
}

// SetMaxPage sets the pager's upper bound
func (c *Config) SetMaxPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.MaxPage = n
}

// GetRequestTimeout returns the per-request timeout
func (c *Config) GetRequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.RequestTimeoutSeconds < 1 {
		return DefaultRequestTimeout
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// SetRequestTimeoutSeconds sets the per-request timeout
func (c *Config) SetRequestTimeoutSeconds(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.RequestTimeoutSeconds = n
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetSlowLoadThreshold returns how long a load may take before it counts as slow.
// Zero disables slow-load notifications.
func (c *Config) GetSlowLoadThreshold() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.SlowLoadSeconds) * time.Second
}

// SetSlowLoadSeconds sets the slow-load threshold
func (c *Config) SetSlowLoadSeconds(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SlowLoadSeconds = n
}
