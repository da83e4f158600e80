package config

const EnvPrefix = "THALI"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv         = "THALI_APP_ENV"
	EnvAppPort        = "THALI_APP_PORT"
	EnvBackendBaseURL = "THALI_BACKEND_BASE_URL"
	EnvRedisURL       = "THALI_REDIS_URL"
	EnvProfileDir     = "THALI_PROFILE_DIR"
)
