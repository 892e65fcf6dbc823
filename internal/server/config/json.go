package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/avolkov/gatekeeper/internal/flagx"
	"github.com/avolkov/gatekeeper/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. Duration fields use
// timex.Duration so both "1h" strings and integer nanoseconds parse.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	LockoutThreshold      int            `json:"lockout_threshold"`
	BcryptCost            int            `json:"bcrypt_cost"`
	UseInMemoryStore      bool           `json:"use_in_memory_store"`
}

// parseJson overlays values from the JSON file named by -c/-config, if any.
// A missing flag means no file is loaded; an unreadable or invalid file
// panics, configuration errors should stop the process early.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	config.LockoutThreshold = c.LockoutThreshold
	config.BcryptCost = c.BcryptCost
	config.UseInMemoryStore = c.UseInMemoryStore
}
