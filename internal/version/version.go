// Package version reads the build metadata file shown by the API.
package version

import (
	"github.com/sjperalta/propostas-api/pkg/logger"
	"github.com/spf13/viper"
)

// Info is the content of the version metadata file
type Info struct {
	Version     string `mapstructure:"version" json:"version"`
	Build       int    `mapstructure:"build" json:"build"`
	GeneratedAt string `mapstructure:"generatedAt" json:"generated_at"`
	Description string `mapstructure:"description" json:"description"`
}

// Default is returned when the file is missing or unreadable
var Default = Info{Version: "0.0.0"}

// Load reads path as JSON. A missing or malformed file is not an error: it
// logs a warning and yields Default.
func Load(path string) Info {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault("version", Default.Version)
	v.SetDefault("build", Default.Build)
	v.SetDefault("generatedAt", Default.GeneratedAt)
	v.SetDefault("description", Default.Description)

	if err := v.ReadInConfig(); err != nil {
		logger.Warn("Version file not loaded, using defaults", "path", path, "error", err)
		return Default
	}

	var info Info
	if err := v.Unmarshal(&info); err != nil {
		logger.Warn("Version file malformed, using defaults", "path", path, "error", err)
		return Default
	}
	return info
}
