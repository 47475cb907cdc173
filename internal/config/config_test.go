package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testKey is a base64 encoded 32 byte key.
const testKey = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

func projectConfigPath(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(projectConfigPath(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should not be empty")
	}

	assert.Equal(t, EngineSQLite, cfg.DB.Engine)
	assert.Equal(t, 24*time.Hour, cfg.Webserver.Session.ExpiryTime)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Contains(t, cfg.Upload.AllowedExtensions, ".png")
}

func TestReadConfigWithEnvOverride(t *testing.T) {
	t.Setenv("LEONWEB_TITLE", "Test Override")
	t.Setenv("LEONWEB_WEBSERVER_PORT", "9090")
	t.Setenv("LEONWEB_DB_ENGINE", "postgres")

	cfg, err := ReadConfig(projectConfigPath(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title != "Test Override" {
		t.Errorf("Title = %v, want %v", cfg.Title, "Test Override")
	}

	if cfg.Webserver.Port != 9090 {
		t.Errorf("Webserver.Port = %v, want %v", cfg.Webserver.Port, 9090)
	}

	assert.Equal(t, EnginePostgres, cfg.DB.Engine)
}

func TestReadConfigLogEnvOverride(t *testing.T) {
	// none of these keys are set in etc/main.toml
	t.Setenv("LEONWEB_LOG_LOGSQL", "true")
	t.Setenv("LEONWEB_LOG_DISABLECHECKALIVE", "true")
	t.Setenv("LEONWEB_LOG_REPORTCALLER", "true")
	t.Setenv("LEONWEB_LOG_FILE_ACCESSMAXSIZE", "10")
	t.Setenv("LEONWEB_LOG_FILE_WARNMAXBACKUPS", "3")

	cfg, err := ReadConfig(projectConfigPath(t))
	require.NoError(t, err)

	assert.True(t, cfg.Log.LogSQL)
	assert.True(t, cfg.Log.DisableCheckAlive)
	assert.True(t, cfg.Log.ReportCaller)
	assert.Equal(t, 10, cfg.Log.File.AccessMaxSize)
	assert.Equal(t, 3, cfg.Log.File.WarnMaxBackups)
	assert.Equal(t, "access.log", cfg.Log.File.AccessLog)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir())
	require.Error(t, err)
}

func TestReadConfigProductionNeedsKey(t *testing.T) {
	dir := t.TempDir()
	content := "DevMode = false\n[Webserver]\nPort = 8080\nURL = \"http://localhost\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))

	_, err := ReadConfig(dir)
	require.ErrorIs(t, err, ErrSecretKeyRequired)

	cfg, err := ReadConfig(dir, WithDevMode())
	require.NoError(t, err)
	assert.True(t, cfg.DevMode)

	t.Setenv("LEONWEB_WEBSERVER_SECRETKEY", testKey)

	cfg, err = ReadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, testKey, cfg.Webserver.SecretKey)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name: "valid config",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080", SecretKey: testKey},
			},
		},
		{
			name: "valid dev config without key",
			config: Config{
				DevMode:   true,
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
			},
		},
		{
			name: "missing port",
			config: Config{
				Webserver: Webserver{Port: 0, URL: "http://localhost:8080", SecretKey: testKey},
			},
			wantErr: ErrWebServerPortCanNotBeZero,
		},
		{
			name: "missing URL",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "", SecretKey: testKey},
			},
			wantErr: ErrEmptyURL,
		},
		{
			name: "unknown engine",
			config: Config{
				DB:        DB{Engine: "oracle"},
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080", SecretKey: testKey},
			},
			wantErr: ErrUnknownDBEngine,
		},
		{
			name: "missing key outside dev mode",
			config: Config{
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
			},
			wantErr: ErrSecretKeyRequired,
		},
		{
			name: "key with wrong length",
			config: Config{
				DevMode:   true,
				Webserver: Webserver{Port: 8080, URL: "http://localhost:8080", SecretKey: "c2hvcnQ="},
			},
			wantErr: ErrInvalidSecretKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateNormalizesExtensions(t *testing.T) {
	cfg := Config{
		DevMode:   true,
		Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
		Upload:    Upload{AllowedExtensions: []string{"PNG", " .Jpg "}},
	}

	require.NoError(t, validate(&cfg))
	assert.Equal(t, []string{".png", ".jpg"}, cfg.Upload.AllowedExtensions)
	assert.Equal(t, EngineSQLite, cfg.DB.Engine)
	assert.Equal(t, 5, cfg.Webserver.ShutDownTime)
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	tomlStr, err := DumpConfig(&cfg)
	if err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}

	if !strings.Contains(tomlStr, "Test") {
		t.Error("DumpConfig() output should contain Title")
	}
}

func TestDumpConfigJSON(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	jsonStr, err := DumpConfigJSON(&cfg)
	if err != nil {
		t.Fatalf("DumpConfigJSON() error = %v", err)
	}

	if !strings.Contains(jsonStr, "Test") {
		t.Error("DumpConfigJSON() output should contain Title")
	}
}
