package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Content types
	ContentTypeYAML = "text/yaml; charset=utf-8"

	// Database table names
	TableNodes             = "nodes"
	TableNodeClients       = "node_clients"
	TableUserClientOptions = "user_client_options"
	TableUsers             = "users"
	TableSubconverters     = "subconverters"
	TableClashConfigs      = "clash_configs"

	// Subscription query parameters
	QueryConfigKey = "config"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized access"
)
