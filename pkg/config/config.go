package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	Bootstrap    BootstrapConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DBDriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SOCIETYHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"SOCIETYHUB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SOCIETYHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SOCIETYHUB_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"SOCIETYHUB_LOG_FORMAT" default:"json"`

	// CORSOrigins lists the admin console origins. Local dev origins are added outside production.
	CORSOrigins []string `envconfig:"SOCIETYHUB_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SOCIETYHUB_DB_DSN"`
	Driver string `envconfig:"SOCIETYHUB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SOCIETYHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"SOCIETYHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SOCIETYHUB_DB_USER"`
	LegacyPassword string `envconfig:"SOCIETYHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"SOCIETYHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"SOCIETYHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SOCIETYHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SOCIETYHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SOCIETYHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SOCIETYHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	// SlowQueryThreshold marks queries logged as slow; zero disables it.
	SlowQueryThreshold time.Duration `envconfig:"SOCIETYHUB_DB_SLOW_QUERY_THRESHOLD" default:"200ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SOCIETYHUB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SOCIETYHUB_REDIS_ADDR"`
	Password     string        `envconfig:"SOCIETYHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"SOCIETYHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SOCIETYHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SOCIETYHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SOCIETYHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SOCIETYHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SOCIETYHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig holds the settings shared with the auth provider that issues
// access tokens. ExpirationMinutes is only used when minting local tokens.
type JWTConfig struct {
	Secret            string `envconfig:"SOCIETYHUB_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SOCIETYHUB_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SOCIETYHUB_JWT_EXPIRATION_MINUTES" default:"60"`
}

func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type RateLimitConfig struct {
	JoinWindow     time.Duration `envconfig:"SOCIETYHUB_RATE_LIMIT_JOIN_WINDOW" default:"10m"`
	JoinLimit      int           `envconfig:"SOCIETYHUB_RATE_LIMIT_JOIN_LIMIT" default:"5"`
	DecisionWindow time.Duration `envconfig:"SOCIETYHUB_RATE_LIMIT_DECISION_WINDOW" default:"1m"`
	DecisionLimit  int           `envconfig:"SOCIETYHUB_RATE_LIMIT_DECISION_LIMIT" default:"60"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SOCIETYHUB_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SOCIETYHUB_AUTO_MIGRATE" default:"false"`
}

// BootstrapConfig carries local-development seed values.
type BootstrapConfig struct {
	DeveloperEmail string `envconfig:"SOCIETYHUB_BOOTSTRAP_DEVELOPER_EMAIL" default:"developer@societyhub.local"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if strings.EqualFold(db.Driver, DBDriverSQLite) {
		db.DSN = DefaultSQLiteDSN
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
