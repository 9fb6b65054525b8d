package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Endpoint        string
	AccessKey       string
	SecretKey       string
	BucketOriginals string
	UseSSL          bool
	Region          string
}

type SecurityConfig struct {
	JWTSecret       string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	EmailTokenTTL   time.Duration
	UserCacheTTL    time.Duration
	TransformSecret string
}

// MediaHostConfig points at the hosted transformation service. The backend
// never fetches pixels itself; it only builds and stores URLs against this
// endpoint.
type MediaHostConfig struct {
	BaseURL string
	Name    string
}

type MailConfig struct {
	APIKey string
	From   string
	AppURL string
}

// RateQuota is a fixed per-IP quota: Requests allowed every Window, with
// Burst tokens available immediately.
type RateQuota struct {
	Requests int
	Window   time.Duration
	Burst    int
}

type RateLimitConfig struct {
	Enabled       bool
	ListComments  RateQuota
	CreateComment RateQuota
	Upload        RateQuota
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Storage          StorageConfig
	Security         SecurityConfig
	MediaHost        MediaHostConfig
	Mail             MailConfig
	RateLimit        RateLimitConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("PHOTOSHARE")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.maxopen", 30)
	v.SetDefault("postgres.maxidle", 10)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.bucketoriginals", "photoshare-originals")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")

	v.SetDefault("security.accessttl", "15m")
	v.SetDefault("security.refreshttl", "168h") // 7 days
	v.SetDefault("security.emailtokenttl", "72h")
	v.SetDefault("security.usercachettl", "15m")

	v.SetDefault("mediahost.baseurl", "https://media.photoshare.example")
	v.SetDefault("mediahost.name", "PhotoShare")

	v.SetDefault("mail.from", "no-reply@photoshare.example")
	v.SetDefault("mail.appurl", "http://localhost:8080")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.listcomments.requests", 5)
	v.SetDefault("ratelimit.listcomments.window", "2s")
	v.SetDefault("ratelimit.listcomments.burst", 5)
	v.SetDefault("ratelimit.createcomment.requests", 2)
	v.SetDefault("ratelimit.createcomment.window", "5s")
	v.SetDefault("ratelimit.createcomment.burst", 2)
	v.SetDefault("ratelimit.upload.requests", 10)
	v.SetDefault("ratelimit.upload.window", "60s")
	v.SetDefault("ratelimit.upload.burst", 3)
}
