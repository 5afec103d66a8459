package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Remote: RemoteConfig{BaseURL: "http://localhost:8000"},
			},
			wantErr: false,
		},
		{
			name:    "missing base url",
			config:  Config{},
			wantErr: true,
		},
		{
			name: "unknown backend",
			config: Config{
				Remote:  RemoteConfig{BaseURL: "http://localhost:8000"},
				Storage: StorageConfig{Backend: "bolt"},
			},
			wantErr: true,
		},
		{
			name: "redis backend without addr",
			config: Config{
				Remote:  RemoteConfig{BaseURL: "http://localhost:8000"},
				Storage: StorageConfig{Backend: "redis"},
			},
			wantErr: true,
		},
		{
			name: "mysql backend without dsn",
			config: Config{
				Remote:  RemoteConfig{BaseURL: "http://localhost:8000"},
				Storage: StorageConfig{Backend: "mysql"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Remote: RemoteConfig{BaseURL: "http://localhost:8000"}}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 30*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "recordings", cfg.Storage.Key)
	assert.Equal(t, 44100, cfg.Capture.SampleRate)
	assert.Equal(t, 2, cfg.Capture.Channels)
	assert.Equal(t, "128k", cfg.Capture.Bitrate)
	assert.Equal(t, 250*time.Millisecond, cfg.Playback.PollInterval)
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	content := `
remote:
  base_url: "http://lectures.local:8000"
  timeout: 10s

storage:
  backend: "sqlite"
  documents_dir: "data/documents"

server:
  whisper:
    model_path: "models/ggml-base.en.bin"
  gemini:
    api_keys: ["k1", "k2"]

logging:
  level: "debug"
`

	_, err = tmpfile.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)

	assert.Equal(t, "http://lectures.local:8000", cfg.Remote.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Len(t, cfg.Server.Gemini.APIKeys, 2)
}

func TestLoadEnvOverride(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("remote:\n  base_url: \"http://a.local\"\n")
	require.NoError(t, err)
	tmpfile.Close()

	t.Setenv("EDURECAP_REMOTE_BASE_URL", "http://b.local")
	t.Setenv("EDURECAP_GEMINI_API_KEYS", "x, y ,,z")

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, "http://b.local", cfg.Remote.BaseURL)
	assert.Equal(t, []string{"x", "y", "z"}, cfg.Server.Gemini.APIKeys)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	assert.Error(t, err, "nonexistent file")
}
