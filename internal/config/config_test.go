package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitflow/internal/constants"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, constants.ConfigFileName), []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(constants.APIURLEnvVar, "")

	cfg, err := Load(Overrides{ConfigDir: dir, EnvFile: filepath.Join(dir, "missing.env")})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIURL != "" {
		t.Errorf("APIURL = %q, want empty", cfg.APIURL)
	}
	if cfg.CredentialBackend != constants.BackendAuto {
		t.Errorf("CredentialBackend = %q, want auto", cfg.CredentialBackend)
	}
	if cfg.NotificationDuration() != constants.NotificationDuration {
		t.Errorf("NotificationDuration() = %v", cfg.NotificationDuration())
	}
	if cfg.Source("api_url") != SourceDefault || cfg.Source("config_dir") != SourceFlag {
		t.Errorf("sources = %v", cfg.sources)
	}
}

func TestAPIURLPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		env        string
		flag       string
		want       string
		wantSource Source
	}{
		{name: "file only", file: "api_url: http://file:3000\n", want: "http://file:3000", wantSource: SourceFile},
		{name: "env beats file", file: "api_url: http://file:3000\n", env: "http://env:3000", want: "http://env:3000", wantSource: SourceEnv},
		{name: "flag beats env", file: "api_url: http://file:3000\n", env: "http://env:3000", flag: "http://flag:3000", want: "http://flag:3000", wantSource: SourceFlag},
		{name: "nothing set", want: "", wantSource: SourceDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.file != "" {
				writeConfig(t, dir, tt.file)
			}
			t.Setenv(constants.APIURLEnvVar, tt.env)

			cfg, err := Load(Overrides{ConfigDir: dir, APIURL: tt.flag, EnvFile: filepath.Join(dir, "none.env")})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.APIURL != tt.want {
				t.Errorf("APIURL = %q, want %q", cfg.APIURL, tt.want)
			}
			if got := cfg.Source("api_url"); got != tt.wantSource {
				t.Errorf("Source(api_url) = %q, want %q", got, tt.wantSource)
			}
		})
	}
}

func TestDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envFile, []byte(constants.APIURLEnvVar+"=http://dotenv:4000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// unset so that godotenv may set it; restored by t.Setenv's cleanup
	t.Setenv(constants.APIURLEnvVar, "")
	os.Unsetenv(constants.APIURLEnvVar)

	cfg, err := Load(Overrides{ConfigDir: dir, EnvFile: envFile})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIURL != "http://dotenv:4000" || cfg.Source("api_url") != SourceEnv {
		t.Errorf("APIURL = %q from %s", cfg.APIURL, cfg.Source("api_url"))
	}
}

func TestFileSettings(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(constants.APIURLEnvVar, "")
	writeConfig(t, dir, "debug: true\ncredential_backend: sqlite\nnotification_ms: 500\n")

	cfg, err := Load(Overrides{ConfigDir: dir, EnvFile: filepath.Join(dir, "none.env")})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Debug || cfg.CredentialBackend != constants.BackendSQLite {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.NotificationDuration() != 500*time.Millisecond {
		t.Errorf("NotificationDuration() = %v", cfg.NotificationDuration())
	}

	cfg, err = Load(Overrides{ConfigDir: dir, CredentialBackend: "memory", EnvFile: filepath.Join(dir, "none.env")})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CredentialBackend != constants.BackendMemory || cfg.Source("credential_backend") != SourceFlag {
		t.Errorf("CredentialBackend = %q from %s", cfg.CredentialBackend, cfg.Source("credential_backend"))
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "malformed yaml", file: "api_url: [unterminated\n"},
		{name: "unknown backend", file: "credential_backend: vault\n"},
		{name: "bad notification duration", file: "notification_ms: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.file)
			if _, err := Load(Overrides{ConfigDir: dir, EnvFile: filepath.Join(dir, "none.env")}); err == nil {
				t.Error("Load() error = nil")
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in, want string
	}{
		{"~", home},
		{"~/.config/habitflow", filepath.Join(home, ".config/habitflow")},
		{"/tmp/habitflow", "/tmp/habitflow"},
		{"relative/dir", "relative/dir"},
		{"~other/dir", "~other/dir"},
	}
	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEntries(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(constants.APIURLEnvVar, "")
	cfg, err := Load(Overrides{ConfigDir: dir, EnvFile: filepath.Join(dir, "none.env")})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	entries := cfg.Entries()
	if len(entries) != 5 || entries[1].Key != "api_url" {
		t.Fatalf("Entries() = %+v", entries)
	}
	if entries[1].Value != "(same origin: "+constants.DefaultAPIOrigin+")" {
		t.Errorf("api_url value = %q", entries[1].Value)
	}
}
