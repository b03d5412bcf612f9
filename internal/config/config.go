package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"` // mysql | postgres
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`

	Auth struct {
		Secret          string `yaml:"secret"`
		TokenTTLMinutes int    `yaml:"tokenTTLMinutes"`
	} `yaml:"auth"`

	Upload struct {
		MaxFileSizeMB int      `yaml:"maxFileSizeMB"`
		AllowedTypes  []string `yaml:"allowedTypes"`
	} `yaml:"upload"`

	CORS struct {
		Origins []string `yaml:"origins"`
	} `yaml:"cors"`

	Minio struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	AI struct {
		APIKey string `yaml:"apiKey"`
		Model  string `yaml:"model"`
	} `yaml:"ai"`
}

// Load reads the yaml config file and applies environment overrides for the
// secrets that usually live in .env instead of the checked-in config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if v := os.Getenv("AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}

	cfg.applyDefaults()

	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("auth.secret is required (or set AUTH_SECRET)")
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		c.Auth.TokenTTLMinutes = 30
	}
	if c.Upload.MaxFileSizeMB <= 0 {
		c.Upload.MaxFileSizeMB = 10
	}
	if len(c.Upload.AllowedTypes) == 0 {
		c.Upload.AllowedTypes = []string{"txt", "pdf", "docx"}
	}
}

// TokenTTL returns the configured token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}

// MaxFileSize returns the upload limit in bytes.
func (c *Config) MaxFileSize() int64 {
	return int64(c.Upload.MaxFileSizeMB) * 1024 * 1024
}

// MySQLDSN builds the DSN for the mysql driver.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds the DSN for the pq driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
