package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type ServerConfig struct {
	Port int `toml:"port"`
}

type StorageConfig struct {
	DataDir string `toml:"data_dir"`
}

type JWTConfig struct {
	Secret string `toml:"secret"` // For session cookie signing
}

type UploadConfig struct {
	Enabled   bool   `toml:"enabled"`
	Endpoint  string `toml:"endpoint"` // S3-compatible endpoint
	Region    string `toml:"region"`
	Bucket    string `toml:"bucket"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	BaseURL   string `toml:"base_url"` // Public URL base for uploaded files
}

type RateLimitConfig struct {
	Requests      int `toml:"requests"`
	WindowSeconds int `toml:"window_seconds"`
}

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	JWT       JWTConfig       `toml:"jwt"`
	Upload    UploadConfig    `toml:"upload"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// LoadConfig reads the TOML config file, falling back to defaults for a
// missing file so the portal runs out of the box
func LoadConfig(filepath string) (*Config, error) {
	var config Config

	// Defaults
	config.Server.Port = 3000
	config.Storage.DataDir = "./data"
	config.RateLimit.Requests = 100
	config.RateLimit.WindowSeconds = 60
	config.Upload.Region = "auto"

	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return &config, nil
	}

	if _, err := toml.DecodeFile(filepath, &config); err != nil {
		return nil, err
	}

	if config.Upload.Enabled && config.Upload.Bucket == "" {
		return nil, fmt.Errorf("upload enabled but no bucket configured")
	}

	return &config, nil
}
