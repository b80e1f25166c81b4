package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP             string // Host IP for the server
	RESTPort           int    // Port for the REST API
	DBURI              string // Connection URI for MongoDB
	DBName             string // Name of the database
	RedisAddr          string // Address of the Redis server holding leaderboards
	RedisPassword      string // Password for Redis, empty when none
	GinMode            string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret          string // Secret key for JWT signing
	JWTIssuer          string // Issuer claim for JWTs
	RunTokenTTLMinutes int    // Lifetime of a run token
	MaxGridDimension   int    // Largest accepted column or row count
	MaxStepsPerRequest int    // Upper bound on steps advanced by one request
	LeaderboardTTLSec  int    // Lifetime of a leaderboard after its first score
	StreamIntervalMS   int    // Default time between streamed frames
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:             getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:           getEnvAsIntWithDefault("REST_PORT", 8080),
		DBURI:              getEnvWithDefault("DB_URI", "mongodb://localhost:27017"),
		DBName:             getEnvWithDefault("DB_NAME", "mazelab"),
		RedisAddr:          getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnvWithDefault("REDIS_PASSWORD", ""),
		GinMode:            getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:          mustGetEnv("JWT_SECRET"),
		JWTIssuer:          getEnvWithDefault("JWT_ISSUER", "mazelab"),
		RunTokenTTLMinutes: getEnvAsIntWithDefault("RUN_TOKEN_TTL_MINUTES", 60),
		MaxGridDimension:   getEnvAsIntWithDefault("MAX_GRID_DIMENSION", 100),
		MaxStepsPerRequest: getEnvAsIntWithDefault("MAX_STEPS_PER_REQUEST", 10000),
		LeaderboardTTLSec:  getEnvAsIntWithDefault("LEADERBOARD_TTL_SECONDS", 7*24*3600),
		StreamIntervalMS:   getEnvAsIntWithDefault("STREAM_INTERVAL_MS", 50),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// getEnvAsIntWithDefault retrieves an integer environment variable, falling back to defaultValue when unset.
// It logs a fatal error if the value cannot be parsed.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
