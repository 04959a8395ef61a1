package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	apperrors "yt-planner/pkg/errors"
)

// Mode selects whether identities come from the real provider or the demo
// source.
type Mode string

const (
	ModeDemo          Mode = "demo"
	ModeAuthenticated Mode = "authenticated"
)

const wildcard = "*"

type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	Environment string
	BaseURL     string

	Mode Mode
	// ForceMockAuth treats every request as embedded, whatever its headers say.
	ForceMockAuth bool

	TelegramBotToken   string
	TelegramBotEnabled bool

	FrameAncestors    []string
	OmitXFrameOptions bool
	EmbedderHosts     []string
	RelayOrigins      []string

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	v := viper.New()
	v.AutomaticEnv()
	return Parse(v)
}

// Parse builds a Config from an already populated viper instance and
// validates it.
func Parse(v *viper.Viper) (*Config, error) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("REDIS_ADDR", "127.0.0.1:6379")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("FRAME_ANCESTORS", "")
	v.SetDefault("RATE_LIMIT_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_BURST", 5)

	c := &Config{
		Port:               v.GetString("PORT"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		Environment:        strings.ToLower(v.GetString("APP_ENV")),
		BaseURL:            strings.TrimSuffix(v.GetString("BASE_URL"), "/"),
		Mode:               ModeAuthenticated,
		ForceMockAuth:      v.GetBool("MOCK_AUTH"),
		TelegramBotToken:   v.GetString("TELEGRAM_BOT_TOKEN"),
		TelegramBotEnabled: v.GetBool("TELEGRAM_BOT_ENABLED"),
		FrameAncestors:     splitList(v.GetString("FRAME_ANCESTORS")),
		OmitXFrameOptions:  v.GetBool("OMIT_X_FRAME_OPTIONS"),
		EmbedderHosts:      splitList(v.GetString("EMBEDDER_HOSTS")),
		RelayOrigins:       splitList(v.GetString("RELAY_ORIGINS")),
		RateLimitRPS:       v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
	}
	if v.GetBool("DEMO_MODE") {
		c.Mode = ModeDemo
	}
	if len(c.RelayOrigins) == 0 {
		c.RelayOrigins = c.FrameAncestors
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate refuses configurations that would expose a production deployment
// without real authentication or with an open embedding policy.
func (c *Config) Validate() error {
	if c.Mode == ModeAuthenticated && c.TelegramBotToken == "" {
		return apperrors.Configuration("TELEGRAM_BOT_TOKEN is required unless DEMO_MODE=true")
	}
	if c.TelegramBotEnabled && c.TelegramBotToken == "" {
		return apperrors.Configuration("TELEGRAM_BOT_ENABLED requires TELEGRAM_BOT_TOKEN")
	}
	if c.IsProduction() {
		if contains(c.FrameAncestors, wildcard) {
			return apperrors.Configuration("FRAME_ANCESTORS must not contain * in production")
		}
		if c.Mode != ModeDemo && contains(c.RelayOrigins, wildcard) {
			return apperrors.Configuration("RELAY_ORIGINS must not contain * in production")
		}
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return apperrors.Configuration(fmt.Sprintf("invalid rate limit %v/%d", c.RateLimitRPS, c.RateLimitBurst))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDemo() bool {
	return c.Mode == ModeDemo
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
