package config

// EnvPrefix is intentionally empty: every field names its variable in full via
// the envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv         = "TRENDORA_APP_ENV"
	EnvPort           = "TRENDORA_APP_PORT"
	EnvDBDSN          = "TRENDORA_DB_DSN"
	EnvDBHost         = "TRENDORA_DB_HOST"
	EnvDBUser         = "TRENDORA_DB_USER"
	EnvDBName         = "TRENDORA_DB_NAME"
	EnvRedisURL       = "TRENDORA_REDIS_URL"
	EnvIdentitySecret = "TRENDORA_IDENTITY_JWT_SECRET"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
