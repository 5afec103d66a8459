package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "EDURECAP_"

// Load reads the YAML file at path, applies EDURECAP_* environment overrides
// (a .env file in the working directory is honored) and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	// godotenv never overrides variables already present in the environment.
	_ = godotenv.Load()
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Remote.BaseURL, "REMOTE_BASE_URL")
	setDuration(&cfg.Remote.Timeout, "REMOTE_TIMEOUT")

	setString(&cfg.Storage.Backend, "STORAGE_BACKEND")
	setString(&cfg.Storage.DocumentsDir, "DOCUMENTS_DIR")
	setString(&cfg.Storage.DataDir, "DATA_DIR")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")

	setString(&cfg.Database.DSN, "DATABASE_DSN")
	setString(&cfg.Database.SQLitePath, "SQLITE_PATH")

	setString(&cfg.Capture.InputDevice, "INPUT_DEVICE")

	setString(&cfg.Server.Addr, "SERVER_ADDR")
	setString(&cfg.Server.Whisper.ModelPath, "WHISPER_MODEL_PATH")
	if v, ok := os.LookupEnv(envPrefix + "GEMINI_API_KEYS"); ok && v != "" {
		cfg.Server.Gemini.APIKeys = splitKeys(v)
	}

	setString(&cfg.Archive.Endpoint, "MINIO_ENDPOINT")
	setString(&cfg.Archive.AccessKey, "MINIO_ACCESS_KEY")
	setString(&cfg.Archive.SecretKey, "MINIO_SECRET_KEY")
	setString(&cfg.Archive.Bucket, "MINIO_BUCKET")

	setString(&cfg.Logging.Level, "LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(envPrefix + key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func splitKeys(v string) []string {
	var keys []string
	for _, k := range strings.Split(v, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
