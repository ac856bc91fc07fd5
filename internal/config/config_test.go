package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const validConfig = `
server:
  host: 127.0.0.1
  port: 8080
database:
  host: localhost
  port: 5432
  name: gymbro
  user: gymbro
  password: secret
auth:
  api_key: test-key
catalog:
  api_key: rapid-key
`

// TestLoadValid verifies a complete config file loads with all sections.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "gymbro" {
		t.Errorf("database.name = %q, want gymbro", cfg.Database.Name)
	}
	if cfg.Auth.APIKey != "test-key" {
		t.Errorf("auth.api_key = %q", cfg.Auth.APIKey)
	}
	if cfg.Catalog.BaseURL != "https://exercisedb.p.rapidapi.com" {
		t.Errorf("catalog.base_url default = %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.APIKey != "rapid-key" {
		t.Errorf("catalog.api_key = %q", cfg.Catalog.APIKey)
	}
}

// TestLoadMissingFile verifies a nonexistent path is an error.
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of missing file should fail")
	}
}

// TestEnvOverrides verifies GYMBRO_* env vars override file values.
func TestEnvOverrides(t *testing.T) {
	t.Setenv("GYMBRO_SERVER_PORT", "9999")
	t.Setenv("GYMBRO_DB_HOST", "db.internal")
	t.Setenv("GYMBRO_AUTH_API_KEY", "env-key")
	t.Setenv("GYMBRO_CATALOG_BASE_URL", "https://example.com")

	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("database.host = %q, want db.internal", cfg.Database.Host)
	}
	if cfg.Auth.APIKey != "env-key" {
		t.Errorf("auth.api_key = %q, want env-key", cfg.Auth.APIKey)
	}
	if cfg.Catalog.BaseURL != "https://example.com" {
		t.Errorf("catalog.base_url = %q, want https://example.com", cfg.Catalog.BaseURL)
	}
}

// TestValidation verifies each required field is enforced.
func TestValidation(t *testing.T) {
	cases := []struct {
		name    string
		config  string
		wantErr string
	}{
		{
			name: "missing server port",
			config: `
database:
  host: localhost
  port: 5432
  name: gymbro
  user: gymbro
`,
			wantErr: "server.port",
		},
		{
			name: "missing database host",
			config: `
server:
  port: 8080
database:
  port: 5432
  name: gymbro
  user: gymbro
`,
			wantErr: "database.host",
		},
		{
			name: "missing database name",
			config: `
server:
  port: 8080
database:
  host: localhost
  port: 5432
  user: gymbro
`,
			wantErr: "database.name",
		},
		{
			name: "tailscale without hostname",
			config: `
database:
  host: localhost
  port: 5432
  name: gymbro
  user: gymbro
tailscale:
  enabled: true
`,
			wantErr: "tailscale.hostname",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.config))
			if err == nil {
				t.Fatal("Load should fail")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

// TestTailscalePortOptional verifies the server port is not required when
// tailscale serves the listener.
func TestTailscalePortOptional(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
database:
  host: localhost
  port: 5432
  name: gymbro
  user: gymbro
tailscale:
  enabled: true
  hostname: gymbro
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Tailscale.Enabled || cfg.Tailscale.Hostname != "gymbro" {
		t.Errorf("tailscale config = %+v", cfg.Tailscale)
	}
}

// TestDSN verifies the connection string format and sslmode default.
func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "localhost", Port: 5432, Name: "gymbro", User: "app", Password: "pw"}
	want := "postgres://app:pw@localhost:5432/gymbro?sslmode=disable"
	if got := db.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}

	db.SSLMode = "require"
	if got := db.DSN(); !strings.HasSuffix(got, "sslmode=require") {
		t.Errorf("DSN = %q, want sslmode=require suffix", got)
	}
}
