package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "offerte"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Offers        OffersConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"OFFERTE_APP_ENV" default:"dev"`
	Port         string `envconfig:"OFFERTE_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"OFFERTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OFFERTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"OFFERTE_DB_DSN"`

	Host     string `envconfig:"OFFERTE_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"OFFERTE_DB_PORT" default:"5432"`
	User     string `envconfig:"OFFERTE_DB_USER"`
	Password string `envconfig:"OFFERTE_DB_PASSWORD"`
	Name     string `envconfig:"OFFERTE_DB_NAME"`
	SSLMode  string `envconfig:"OFFERTE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"OFFERTE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OFFERTE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OFFERTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OFFERTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.User == "" || d.Name == "" {
		return fmt.Errorf("database config requires OFFERTE_DB_DSN or OFFERTE_DB_USER and OFFERTE_DB_NAME")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"OFFERTE_REDIS_URL"`
	Address      string        `envconfig:"OFFERTE_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"OFFERTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"OFFERTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"OFFERTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"OFFERTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"OFFERTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OFFERTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OFFERTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"OFFERTE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"OFFERTE_JWT_ISSUER" default:"offerte-backend"`
	ExpirationMinutes int    `envconfig:"OFFERTE_JWT_EXPIRATION_MINUTES" default:"60"`
	SessionTTLMinutes int    `envconfig:"OFFERTE_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"OFFERTE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"OFFERTE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"OFFERTE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"OFFERTE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"OFFERTE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow           time.Duration `envconfig:"OFFERTE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit    int           `envconfig:"OFFERTE_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit          int           `envconfig:"OFFERTE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow        time.Duration `envconfig:"OFFERTE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUsernameLimit int           `envconfig:"OFFERTE_AUTH_RATE_LIMIT_REGISTER_USERNAME_LIMIT" default:"3"`
	RegisterIPLimit       int           `envconfig:"OFFERTE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// OffersConfig holds the defaults applied when an offer-generation request
// omits its parameters.
type OffersConfig struct {
	NumOffers    int `envconfig:"OFFERTE_OFFERS_NUM" default:"3"`
	DiscountMin  int `envconfig:"OFFERTE_OFFERS_DISCOUNT_MIN" default:"10"`
	DiscountMax  int `envconfig:"OFFERTE_OFFERS_DISCOUNT_MAX" default:"30"`
	DaysDuration int `envconfig:"OFFERTE_OFFERS_DAYS_DURATION" default:"7"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"OFFERTE_AUTO_MIGRATE" default:"false"`
}
