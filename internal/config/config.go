package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort       string
	DatabasePath     string
	JWTSecretKey     string
	FunctionsBaseURL string // base URL of the hosted edge functions
	ServiceAPIKey    string // anon/service key sent on every function call
	RequestTimeout   int    // seconds, per remote function call
	Environment      string
}

// Load reads configuration from environment variables or a .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		DatabasePath:     getEnv("DATABASE_PATH", "pawconnect.db"),
		JWTSecretKey:     getEnv("JWT_SECRET_KEY", ""),
		FunctionsBaseURL: getEnv("FUNCTIONS_BASE_URL", ""),
		ServiceAPIKey:    getEnv("SERVICE_API_KEY", ""),
		RequestTimeout:   getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 60),
		Environment:      env,
	}

	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if cfg.FunctionsBaseURL == "" {
			missing = append(missing, "FUNCTIONS_BASE_URL")
		}
		if cfg.ServiceAPIKey == "" {
			missing = append(missing, "SERVICE_API_KEY")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
