package config

import (
	"fmt"
	"os"
	"strconv"
)

// Store backends
const (
	StoreDynamoDB = "dynamodb"
	StoreMemory   = "memory"
)

// API Gateway payload versions the Lambda entrypoint can proxy
const (
	PayloadV1 = "v1"
	PayloadV2 = "v2"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string
	ServiceName   string
	MaxBodyBytes  int64

	// Storage
	AWSRegion        string
	TableName        string
	StoreBackend     string
	DynamoDBEndpoint string

	// Identity
	ScopeByOwner        bool
	TrustIdentityHeader bool
	IdentityHeader      string
	JWTSecret           string
	JWTIssuer           string

	// Lambda configuration
	APIGatewayPayload string

	// Logging
	LogLevel string

	// Observability
	EnableMetrics    bool
	MetricsNamespace string
	EnableTracing    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		ServiceName:   getEnv("SERVICE_NAME", "notes-api"),
		MaxBodyBytes:  int64(getEnvInt("MAX_BODY_BYTES", 64*1024)),

		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		TableName:        getEnv("dynamoTableName", getEnv("TABLE_NAME", "Notes")),
		StoreBackend:     getEnv("STORE_BACKEND", StoreDynamoDB),
		DynamoDBEndpoint: getEnv("DYNAMODB_ENDPOINT", ""),

		ScopeByOwner:        getEnvBool("SCOPE_BY_OWNER", true),
		TrustIdentityHeader: getEnvBool("TRUST_IDENTITY_HEADER", false),
		IdentityHeader:      getEnv("IDENTITY_HEADER", "X-User-ID"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		JWTIssuer:           getEnv("JWT_ISSUER", ""),

		APIGatewayPayload: getEnv("API_GATEWAY_PAYLOAD", PayloadV1),

		LogLevel:         getEnv("LOG_LEVEL", "info"),
		EnableMetrics:    getEnvBool("ENABLE_METRICS", false),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "Notes"),
		EnableTracing:    getEnvBool("ENABLE_TRACING", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreDynamoDB:
		if c.TableName == "" {
			return fmt.Errorf("dynamoTableName or TABLE_NAME is required")
		}
	case StoreMemory:
		if c.IsProduction() {
			return fmt.Errorf("STORE_BACKEND=memory is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.APIGatewayPayload {
	case PayloadV1, PayloadV2:
	default:
		return fmt.Errorf("unknown API_GATEWAY_PAYLOAD %q", c.APIGatewayPayload)
	}

	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.TrustIdentityHeader && c.IdentityHeader == "" {
		return fmt.Errorf("IDENTITY_HEADER cannot be empty when TRUST_IDENTITY_HEADER is set")
	}

	// Outside development the caller comes from the API Gateway authorizer only
	if c.IsProduction() && c.TrustIdentityHeader {
		return fmt.Errorf("TRUST_IDENTITY_HEADER is not allowed in production")
	}
	if c.IsProduction() && c.JWTSecret != "" {
		return fmt.Errorf("JWT_SECRET is not allowed in production")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
