package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App             AppConfig
	DB              DBConfig
	Redis           RedisConfig
	Nuvemshop       NuvemshopConfig
	Idempotency     IdempotencyConfig
	PublicRateLimit PublicRateLimitConfig
	FeatureFlags    FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"NEXOFAQ_APP_ENV" required:"true"`
	Port         string `envconfig:"NEXOFAQ_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"NEXOFAQ_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NEXOFAQ_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"NEXOFAQ_DB_DSN"`
	Driver string `envconfig:"NEXOFAQ_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"NEXOFAQ_DB_HOST"`
	LegacyPort     int    `envconfig:"NEXOFAQ_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"NEXOFAQ_DB_USER"`
	LegacyPassword string `envconfig:"NEXOFAQ_DB_PASSWORD"`
	LegacyName     string `envconfig:"NEXOFAQ_DB_NAME"`
	LegacySSLMode  string `envconfig:"NEXOFAQ_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"NEXOFAQ_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"NEXOFAQ_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"NEXOFAQ_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NEXOFAQ_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"NEXOFAQ_REDIS_URL" required:"true"`
	Password     string        `envconfig:"NEXOFAQ_REDIS_PASSWORD"`
	DB           int           `envconfig:"NEXOFAQ_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NEXOFAQ_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NEXOFAQ_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NEXOFAQ_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NEXOFAQ_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NEXOFAQ_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type NuvemshopConfig struct {
	ClientID     string        `envconfig:"NEXOFAQ_NUVEMSHOP_CLIENT_ID" required:"true"`
	ClientSecret string        `envconfig:"NEXOFAQ_NUVEMSHOP_CLIENT_SECRET" required:"true"`
	TokenURL     string        `envconfig:"NEXOFAQ_NUVEMSHOP_TOKEN_URL" default:"https://www.nuvemshop.com.br/apps/authorize/token"`
	APIBaseURL   string        `envconfig:"NEXOFAQ_NUVEMSHOP_API_BASE_URL" default:"https://api.nuvemshop.com.br/2025-03"`
	UserAgent    string        `envconfig:"NEXOFAQ_NUVEMSHOP_USER_AGENT" default:"NexoFAQ (suporte@nexofaq.com.br)"`
	HTTPTimeout  time.Duration `envconfig:"NEXOFAQ_NUVEMSHOP_HTTP_TIMEOUT" default:"15s"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"NEXOFAQ_IDEMPOTENCY_TTL" default:"24h"`
}

type PublicRateLimitConfig struct {
	Window  time.Duration `envconfig:"NEXOFAQ_PUBLIC_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"NEXOFAQ_PUBLIC_RATE_LIMIT_IP_LIMIT" default:"120"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"NEXOFAQ_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"NEXOFAQ_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
