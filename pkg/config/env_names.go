package config

// Environment variable names shared between Load and tests/tooling.
const (
	EnvAppEnv       = "DECANTIQ_APP_ENV"
	EnvPort         = "DECANTIQ_APP_PORT"
	EnvDBDSN        = "DECANTIQ_DB_DSN"
	EnvRedisURL     = "DECANTIQ_REDIS_URL"
	EnvAdminSecret  = "DECANTIQ_ADMIN_JWT_SECRET"
	EnvAdminIssuer  = "DECANTIQ_ADMIN_JWT_ISSUER"
	EnvGCPProjectID = "DECANTIQ_GCP_PROJECT_ID"
)
