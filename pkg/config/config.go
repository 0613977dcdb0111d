package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ConfigFile pairs a dotenv file path with a pointer to the struct it
// should be unmarshaled into. Structs may carry envconfig tags.
type ConfigFile struct {
	// Path to the dotenv file. Empty means environment-only.
	Path string
	// Config is a pointer to the target struct.
	Config interface{}
}

// LoadConfigFiles loads one or more dotenv files and unmarshals the
// environment into the paired structs.
func LoadConfigFiles(configFiles ...*ConfigFile) error {
	for _, configFile := range configFiles {
		if configFile.Path != "" {
			if err := godotenv.Load(configFile.Path); err != nil {
				return err
			}
		}

		err := envconfig.Process("", configFile.Config)
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadConfigs unmarshals the current environment into one or more structs.
//   - config - pointers to structs carrying envconfig tags.
func LoadConfigs(config ...interface{}) error {
	for _, cfg := range config {
		err := envconfig.Process("", cfg)
		if err != nil {
			return err
		}
	}
	return nil
}
