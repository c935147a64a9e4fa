// Package config resolves runtime settings from flags, the environment,
// a .env file and <config-dir>/config.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitflow/internal/constants"
)

// Source tells where a setting came from
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// Config is the resolved configuration
type Config struct {
	ConfigDir         string
	APIURL            string
	Debug             bool
	CredentialBackend constants.CredentialBackend
	NotificationMS    int

	sources map[string]Source
}

// Overrides are the values given on the command line. Zero values mean
// "not given".
type Overrides struct {
	ConfigDir         string
	APIURL            string
	Debug             bool
	CredentialBackend string

	// EnvFile is the dotenv file to load, ".env" when empty
	EnvFile string
}

// fileConfig mirrors config.yaml. Pointers distinguish absent keys.
type fileConfig struct {
	APIURL            *string `yaml:"api_url"`
	Debug             *bool   `yaml:"debug"`
	CredentialBackend *string `yaml:"credential_backend"`
	NotificationMS    *int    `yaml:"notification_ms"`
}

// Load resolves the configuration. Precedence is flag, then environment,
// then config file, then default.
func Load(o Overrides) (*Config, error) {
	dir := o.ConfigDir
	dirSource := SourceFlag
	if dir == "" {
		dir = constants.DefaultConfigDir
		dirSource = SourceDefault
	}
	dir, err := ExpandPath(dir)
	if err != nil {
		return nil, err
	}

	envFile := o.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	fc, err := readFile(filepath.Join(dir, constants.ConfigFileName))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ConfigDir:         dir,
		CredentialBackend: constants.BackendAuto,
		NotificationMS:    int(constants.NotificationDuration / time.Millisecond),
		sources: map[string]Source{
			"config_dir":         dirSource,
			"api_url":            SourceDefault,
			"debug":              SourceDefault,
			"credential_backend": SourceDefault,
			"notification_ms":    SourceDefault,
		},
	}

	if fc.APIURL != nil {
		cfg.set("api_url", SourceFile, func() { cfg.APIURL = strings.TrimSpace(*fc.APIURL) })
	}
	if v, ok := os.LookupEnv(constants.APIURLEnvVar); ok && strings.TrimSpace(v) != "" {
		cfg.set("api_url", SourceEnv, func() { cfg.APIURL = strings.TrimSpace(v) })
	}
	if o.APIURL != "" {
		cfg.set("api_url", SourceFlag, func() { cfg.APIURL = strings.TrimSpace(o.APIURL) })
	}

	if fc.Debug != nil {
		cfg.set("debug", SourceFile, func() { cfg.Debug = *fc.Debug })
	}
	if o.Debug {
		cfg.set("debug", SourceFlag, func() { cfg.Debug = true })
	}

	if fc.CredentialBackend != nil {
		cfg.set("credential_backend", SourceFile, func() {
			cfg.CredentialBackend = constants.CredentialBackend(strings.TrimSpace(*fc.CredentialBackend))
		})
	}
	if o.CredentialBackend != "" {
		cfg.set("credential_backend", SourceFlag, func() {
			cfg.CredentialBackend = constants.CredentialBackend(o.CredentialBackend)
		})
	}
	if err := validateBackend(cfg.CredentialBackend); err != nil {
		return nil, err
	}

	if fc.NotificationMS != nil {
		if *fc.NotificationMS <= 0 {
			return nil, fmt.Errorf("notification_ms must be positive, got %d", *fc.NotificationMS)
		}
		cfg.set("notification_ms", SourceFile, func() { cfg.NotificationMS = *fc.NotificationMS })
	}

	return cfg, nil
}

func (c *Config) set(key string, src Source, apply func()) {
	apply()
	c.sources[key] = src
}

// Source returns where key was resolved from
func (c *Config) Source(key string) Source {
	if s, ok := c.sources[key]; ok {
		return s
	}
	return SourceDefault
}

// NotificationDuration returns how long notifications stay visible
func (c *Config) NotificationDuration() time.Duration {
	return time.Duration(c.NotificationMS) * time.Millisecond
}

// Entry is one line of "config show"
type Entry struct {
	Key    string
	Value  string
	Source Source
}

// Entries lists every setting in a stable order
func (c *Config) Entries() []Entry {
	apiURL := c.APIURL
	if apiURL == "" {
		apiURL = "(same origin: " + constants.DefaultAPIOrigin + ")"
	}
	return []Entry{
		{Key: "config_dir", Value: c.ConfigDir, Source: c.Source("config_dir")},
		{Key: "api_url", Value: apiURL, Source: c.Source("api_url")},
		{Key: "debug", Value: strconv.FormatBool(c.Debug), Source: c.Source("debug")},
		{Key: "credential_backend", Value: string(c.CredentialBackend), Source: c.Source("credential_backend")},
		{Key: "notification_ms", Value: strconv.Itoa(c.NotificationMS), Source: c.Source("notification_ms")},
	}
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fc, nil
		}
		return fc, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing config: %w", err)
	}
	return fc, nil
}

func validateBackend(b constants.CredentialBackend) error {
	switch b {
	case constants.BackendAuto, constants.BackendKeyring, constants.BackendSQLite, constants.BackendMemory:
		return nil
	default:
		return fmt.Errorf("unknown credential backend %q (want auto, keyring, sqlite or memory)", b)
	}
}

// ExpandPath replaces a leading ~ with the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
