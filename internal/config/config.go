package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Remote   RemoteConfig   `yaml:"remote"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
	Capture  CaptureConfig  `yaml:"capture"`
	Playback PlaybackConfig `yaml:"playback"`
	Server   ServerConfig   `yaml:"server"`
	Inbox    InboxConfig    `yaml:"inbox"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RemoteConfig points the client at the remote processing service.
type RemoteConfig struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout"`
}

type StorageConfig struct {
	Backend      string `yaml:"backend" validate:"oneof=file redis mysql sqlite"`
	DocumentsDir string `yaml:"documents_dir" validate:"required"`
	DataDir      string `yaml:"data_dir" validate:"required"`
	TempDir      string `yaml:"temp_dir" validate:"required"`
	Key          string `yaml:"key" validate:"required"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DatabaseConfig struct {
	DSN        string `yaml:"dsn"`
	SQLitePath string `yaml:"sqlite_path"`
}

type CaptureConfig struct {
	FFmpegPath      string `yaml:"ffmpeg_path"`
	InputFormat     string `yaml:"input_format"`
	InputDevice     string `yaml:"input_device"`
	SampleRate      int    `yaml:"sample_rate"`
	Channels        int    `yaml:"channels"`
	Bitrate         string `yaml:"bitrate"`
	AssumePermitted bool   `yaml:"assume_permitted"`
}

type PlaybackConfig struct {
	FFplayPath   string        `yaml:"ffplay_path"`
	FFprobePath  string        `yaml:"ffprobe_path"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	MaxConcurrent int           `yaml:"max_concurrent"`
	Whisper       WhisperConfig `yaml:"whisper"`
	Gemini        GeminiConfig  `yaml:"gemini"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type InboxConfig struct {
	Dir            string `yaml:"dir"`
	AutoTranscribe bool   `yaml:"auto_transcribe"`
	MaxConcurrent  int    `yaml:"max_concurrent"`
}

// ArchiveConfig configures the MinIO bucket used by `edurecap backup`.
type ArchiveConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
	Parallel  int    `yaml:"parallel"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Validate fills defaults and checks required fields.
func (c *Config) Validate() error {
	if c.Remote.Timeout == 0 {
		c.Remote.Timeout = 30 * time.Second
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	if c.Storage.DocumentsDir == "" {
		c.Storage.DocumentsDir = "data/documents"
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if c.Storage.TempDir == "" {
		c.Storage.TempDir = "data/temp"
	}
	if c.Storage.Key == "" {
		c.Storage.Key = "recordings"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/edurecap.sqlite"
	}
	if c.Capture.FFmpegPath == "" {
		c.Capture.FFmpegPath = "ffmpeg"
	}
	if c.Capture.SampleRate == 0 {
		c.Capture.SampleRate = 44100
	}
	if c.Capture.Channels == 0 {
		c.Capture.Channels = 2
	}
	if c.Capture.Bitrate == "" {
		c.Capture.Bitrate = "128k"
	}
	if c.Playback.FFplayPath == "" {
		c.Playback.FFplayPath = "ffplay"
	}
	if c.Playback.FFprobePath == "" {
		c.Playback.FFprobePath = "ffprobe"
	}
	if c.Playback.PollInterval == 0 {
		c.Playback.PollInterval = 250 * time.Millisecond
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Server.MaxConcurrent == 0 {
		c.Server.MaxConcurrent = 2
	}
	if c.Server.Whisper.BinaryPath == "" {
		c.Server.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Server.Whisper.Language == "" {
		c.Server.Whisper.Language = "en"
	}
	if c.Server.Whisper.Threads == 0 {
		c.Server.Whisper.Threads = 8
	}
	if c.Server.Gemini.Model == "" {
		c.Server.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Inbox.Dir == "" {
		c.Inbox.Dir = "data/inbox"
	}
	if c.Inbox.MaxConcurrent == 0 {
		c.Inbox.MaxConcurrent = 1
	}
	if c.Archive.Bucket == "" {
		c.Archive.Bucket = "edurecap"
	}
	if c.Archive.Parallel == 0 {
		c.Archive.Parallel = 4
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.MaxSize == 0 {
		c.Logging.MaxSize = 10
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.Storage.Backend {
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis backend")
		}
	case "mysql":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the mysql backend")
		}
	}

	return nil
}
