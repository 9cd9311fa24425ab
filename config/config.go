// Initializing common application configuration
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Encoder EncoderConfig `mapstructure:"encoder"`
	Resize  ResizeConfig  `mapstructure:"resize"`
	Log     LogConfig     `mapstructure:"log"`
}

type EncoderConfig struct {
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

type ResizeConfig struct {
	Filter string `mapstructure:"filter"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads the optional config file. A missing file is fine, the
// defaults cover everything.
func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.SetDefault("encoder.jpeg_quality", 90)
	viperInstance.SetDefault("resize.filter", "lanczos")
	viperInstance.SetDefault("log.level", "warn")
	viperInstance.SetDefault("log.format", "text")

	viperInstance.AddConfigPath("./config")
	if home, err := os.UserHomeDir(); err == nil {
		viperInstance.AddConfigPath(filepath.Join(home, ".config", "image-resizer"))
	}
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	err := viperInstance.ReadInConfig()

	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
