package config

const EnvPrefix = "SOCIETYHUB"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
	DefaultSQLiteDSN = "file:societyhub.db?cache=shared&_foreign_keys=on"
)

const (
	EnvAppEnv       = "SOCIETYHUB_APP_ENV"
	EnvPort         = "SOCIETYHUB_APP_PORT"
	EnvDBDSN        = "SOCIETYHUB_DB_DSN"
	EnvDBDriver     = "SOCIETYHUB_DB_DRIVER"
	EnvDBHost       = "SOCIETYHUB_DB_HOST"
	EnvDBUser       = "SOCIETYHUB_DB_USER"
	EnvDBName       = "SOCIETYHUB_DB_NAME"
	EnvDBPassword   = "SOCIETYHUB_DB_PASSWORD"
	EnvRedisURL     = "SOCIETYHUB_REDIS_URL"
	EnvJWTSecret    = "SOCIETYHUB_JWT_SECRET"
	EnvJWTIssuer    = "SOCIETYHUB_JWT_ISSUER"
	EnvJWTExpMins   = "SOCIETYHUB_JWT_EXPIRATION_MINUTES"
	EnvUseSQLite    = "SOCIETYHUB_USE_SQLITE"
	EnvJoinLimit    = "SOCIETYHUB_RATE_LIMIT_JOIN_LIMIT"
	EnvDeveloperEml = "SOCIETYHUB_BOOTSTRAP_DEVELOPER_EMAIL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
