package config

const (
	EnvPrefix = "RIDGELINE"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	PageStyleCursor = "cursor"
	PageStyleOffset = "offset"
)

// Environment variable names used by tests and deployment tooling.
const (
	EnvAppEnv     = "RIDGELINE_APP_ENV"
	EnvAppPort    = "RIDGELINE_APP_PORT"
	EnvWPSBaseURL = "RIDGELINE_WPS_BASE_URL"
	EnvWPSToken   = "RIDGELINE_WPS_TOKEN"
	EnvRedisURL   = "RIDGELINE_REDIS_URL"
)
