package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/trackvers/trackvers/internal/flagx"
	"github.com/trackvers/trackvers/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files; values are copied into the runtime Config after unmarshalling.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	LocalDBPath    string         `json:"local_db_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson loads configuration from the JSON file named by -c/-config, if
// any. Unreadable or invalid files panic.
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

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.ServerBaseURL = c.ServerBaseURL
	config.LocalDBPath = c.LocalDBPath
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
}
