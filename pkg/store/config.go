package store

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config supplies the base path backing the durable document store.
type Config interface {
	BasePath() string
}

// LoadConfig resolves the store location from a .huddle config file or the
// HUDDLE_PATH environment variable, defaulting to ~/.huddle.db.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.huddle.db")
	viper.SetConfigName(".huddle") // .yaml is implicit
	viper.SetEnvPrefix("HUDDLE")
	viper.AutomaticEnv()

	if override := os.Getenv("HUDDLE_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	return &fileConfig{Path: path}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}
