package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// chdir moves into an empty directory so a developer .env file cannot leak into the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, StoreDriverFile, cfg.Store.Driver)
	require.Equal(t, "data.json", cfg.Store.Path)
	require.Equal(t, SessionDriverMemory, cfg.Auth.SessionDriver)
	require.Equal(t, ExportEngineFPDF, cfg.Export.Engine)
	require.Equal(t, "A4", cfg.Export.PageSize)
	require.Equal(t, "deadline-tracker", cfg.Redis.KeyPrefix)
	require.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	require.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	require.Equal(t, 12*time.Hour, cfg.Auth.SessionTTL())
	require.False(t, cfg.Archive.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_PATH", filepath.Join("state", "tracker.json"))
	t.Setenv("AUTH_SESSION_DRIVER", "REDIS")
	t.Setenv("AUTH_SESSION_TTL_MINUTES", "15")
	t.Setenv("EXPORT_ENGINE", "wkhtmltopdf")
	t.Setenv("EXPORT_PAGE_SIZE", "letter")
	t.Setenv("APP_TIMEZONE", "Europe/Berlin")
	t.Setenv("ARCHIVE_S3_BUCKET", "exports")
	t.Setenv("REDIS_KEY_PREFIX", "staging")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, filepath.Join("state", "tracker.json"), cfg.Store.Path)
	require.Equal(t, SessionDriverRedis, cfg.Auth.SessionDriver)
	require.Equal(t, 15*time.Minute, cfg.Auth.SessionTTL())
	require.Equal(t, ExportEngineWkhtmltopdf, cfg.Export.Engine)
	require.Equal(t, "Letter", cfg.Export.PageSize)
	require.Equal(t, "Europe/Berlin", cfg.App.Location().String())
	require.True(t, cfg.Archive.Enabled())
	require.Equal(t, "staging", cfg.Redis.KeyPrefix)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "redis db", env: map[string]string{"REDIS_DB": "x"}},
		{name: "store driver", env: map[string]string{"STORE_DRIVER": "sqlite"}},
		{name: "postgres without dsn", env: map[string]string{"STORE_DRIVER": "postgres"}},
		{name: "session driver", env: map[string]string{"AUTH_SESSION_DRIVER": "cookie"}},
		{name: "export engine", env: map[string]string{"EXPORT_ENGINE": "latex"}},
		{name: "page size", env: map[string]string{"EXPORT_PAGE_SIZE": "Z9"}},
		{name: "timezone", env: map[string]string{"APP_TIMEZONE": "Mars/Olympus"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestGetEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "ten")
	t.Setenv("SOME_BOOL", "maybe")

	require.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
	require.True(t, getEnvAsBool("SOME_BOOL", true))
	require.Equal(t, "dflt", getEnv("NOT_SET_ANYWHERE", "dflt"))
}
