package config

const (
	EnvPrefix = "NEXOFAQ"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "NEXOFAQ_DB_DSN"
	EnvDBHost = "NEXOFAQ_DB_HOST"
	EnvDBUser = "NEXOFAQ_DB_USER"
	EnvDBName = "NEXOFAQ_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
