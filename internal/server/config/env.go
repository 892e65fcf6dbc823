package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from the environment. An optional .env
// file in the working directory is loaded first; unparseable values are
// ignored, keeping whatever the previous layer set.
func parseEnv(config *Config) {

	_ = godotenv.Load()

	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY_DURATION"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("LOCKOUT_THRESHOLD"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.LockoutThreshold = n
		}
	}
	if v, ok := os.LookupEnv("BCRYPT_COST"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = n
		}
	}
	if v, ok := os.LookupEnv("USE_IN_MEMORY_STORE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			config.UseInMemoryStore = b
		}
	}
}
