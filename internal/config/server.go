package config

import (
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP control surface settings.
type ServerConfig struct {
	Addr           string
	Env            string
	AllowedOrigins []string
}

// LoadServer reads BODELAB_* environment variables on top of defaults.
func LoadServer() *ServerConfig {
	v := viper.New()
	v.SetEnvPrefix("BODELAB")
	v.SetDefault("addr", ":8080")
	v.SetDefault("env", "dev")
	v.SetDefault("allowed_origins", "http://localhost:5173,http://localhost:3000")
	v.AutomaticEnv()

	origins := make([]string, 0)
	for _, o := range strings.Split(v.GetString("allowed_origins"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &ServerConfig{
		Addr:           v.GetString("addr"),
		Env:            v.GetString("env"),
		AllowedOrigins: origins,
	}
}
