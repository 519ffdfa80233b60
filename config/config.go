package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Premium  PremiumConfig  `yaml:"premium"`
	JWT      JWTConfig      `yaml:"jwt"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	Charset      string `yaml:"charset"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type StorageConfig struct {
	BasePath             string   `yaml:"base_path"`
	MaxFileSize          int64    `yaml:"max_file_size"`
	DisallowedExtensions []string `yaml:"disallowed_extensions"`
	StandardQuota        int64    `yaml:"standard_quota"`
	PremiumQuota         int64    `yaml:"premium_quota"`
}

type PremiumConfig struct {
	GigabytesPerUser float64 `yaml:"gigabytes_per_user"`
}

type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

var AppConfig *Config

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	AppConfig = &cfg
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Storage.StandardQuota == 0 {
		cfg.Storage.StandardQuota = 10 * 1024 * 1024 * 1024
	}
	if cfg.Storage.PremiumQuota == 0 {
		cfg.Storage.PremiumQuota = 50 * 1024 * 1024 * 1024
	}
	if len(cfg.Storage.DisallowedExtensions) == 0 {
		cfg.Storage.DisallowedExtensions = []string{".cs", ".exe", ".cshtml", ".js"}
	}
	if cfg.Premium.GigabytesPerUser == 0 {
		cfg.Premium.GigabytesPerUser = 50
	}
	if cfg.JWT.ExpireHours == 0 {
		cfg.JWT.ExpireHours = 24
	}
}
