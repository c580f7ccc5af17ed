package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root service configuration. Values come from a yaml file
// (explicit path or CONFIG_PATH) with environment variables layered on top,
// or from the environment alone when no file is present.
type Config struct {
	Env     string      `yaml:"env" env:"ENV" env-default:"local"`
	AppPort string      `yaml:"app_port" env:"APP_PORT" env-default:"8080"`
	Token   TokenConfig `yaml:"token"`
	OAuth   OAuthConfig `yaml:"oauth"`
	DB      DBConfig    `yaml:"db"`
	Redis   RedisConfig `yaml:"redis"`
}

// TokenConfig holds signing and lifetime parameters for issued tokens.
type TokenConfig struct {
	Secret     string        `yaml:"secret" env:"TOKEN_SECRET" env-required:"true"`
	AccessTTL  time.Duration `yaml:"access_ttl" env:"ACCESS_TOKEN_TTL" env-default:"5m"`
	RefreshTTL time.Duration `yaml:"refresh_ttl" env:"REFRESH_TOKEN_TTL" env-default:"24h"`
}

// OAuthConfig describes the single external OAuth2 provider plus the
// front-end origin the browser is sent back to after a successful callback.
type OAuthConfig struct {
	ClientID     string `yaml:"client_id" env:"OAUTH_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"OAUTH_CLIENT_SECRET"`
	RedirectURL  string `yaml:"redirect_url" env:"OAUTH_REDIRECT_URL"`
	AuthURL      string `yaml:"auth_url" env:"OAUTH_AUTH_URL" env-default:"https://api.intra.42.fr/oauth/authorize"`
	TokenURL     string `yaml:"token_url" env:"OAUTH_TOKEN_URL" env-default:"https://api.intra.42.fr/oauth/token"`
	ProfileURL   string `yaml:"profile_url" env:"OAUTH_PROFILE_URL" env-default:"https://api.intra.42.fr/v2/me"`
	FrontendURL  string `yaml:"frontend_url" env:"FRONTEND_URL" env-default:"http://localhost:3000"`
}

type DBConfig struct {
	DSN string `yaml:"dsn" env:"DATABASE_DSN" env-required:"true"`
}

type RedisConfig struct {
	Addr        string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	PingTimeout time.Duration `yaml:"ping_timeout" env:"REDIS_PING_TIMEOUT" env-default:"2s"`
}

// Production reports whether the service runs outside local development.
// It drives the Secure flag on issued cookies.
func (c Config) Production() bool {
	return c.Env != "local"
}

// MustLoad is Load with panic on error, for use in main.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load reads configuration in priority order: explicit path, CONFIG_PATH,
// environment variables only. Environment always overlays file values.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
		}

		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH or env vars: %w", err)
	}

	return &cfg, nil
}
