package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"fgd/internal/structures"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "FGD_LOG_LEVEL")
	viper.BindEnv("persistence.filePath", "FGD_OUTPUT_PATH")
	viper.BindEnv("persistence.refreshInterval", "FGD_REFRESH_INTERVAL")
	viper.BindEnv("epic.locale", "FGD_EPIC_LOCALE")
	viper.BindEnv("epic.country", "FGD_EPIC_COUNTRY")
	viper.BindEnv("cache.enabled", "FGD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "FGD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "FreeGamesDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
