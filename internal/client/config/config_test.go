package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	require.Equal(t, "http://localhost:8080", cfg.ServerBaseURL)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
	require.Equal(t, "tutorit.db", cfg.CacheDSN)
}

func TestParseJson_OverlaysOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_base_url": "https://tutorit.example.com",
		"online_check_interval": "5s"
	}`), 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"tutorit", "-c", path}

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	require.Equal(t, "https://tutorit.example.com", cfg.ServerBaseURL)
	require.Equal(t, 5*time.Second, cfg.OnlineCheckInterval)
	// untouched fields keep their defaults
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, "tutorit.db", cfg.CacheDSN)
}

func TestParseJson_InvalidDuration(t *testing.T) {
	var jc JsonConfig
	err := json.Unmarshal([]byte(`{"request_timeout": "soon"}`), &jc)
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	applyEnv(&cfg, envConfig{
		ServerBaseURL:       "http://env.example.com",
		OnlineCheckInterval: 7,
	})

	require.Equal(t, "http://env.example.com", cfg.ServerBaseURL)
	require.Equal(t, 7*time.Second, cfg.OnlineCheckInterval)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestParseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"tutorit", "-s", "http://flags.example.com", "-t", "30", "-i", "9"}

	var cfg Config
	cfg.LoadDefaults()
	parseFlags(&cfg)

	require.Equal(t, "http://flags.example.com", cfg.ServerBaseURL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, 9*time.Second, cfg.OnlineCheckInterval)
}
