package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"crewops/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "CREWOPS_LOG_LEVEL")
	viper.BindEnv("session.idleTTL", "CREWOPS_SESSION_TTL")
	viper.BindEnv("session.downDayThreshold", "CREWOPS_DOWN_DAY_THRESHOLD")
	viper.BindEnv("persistence.saveInterval", "CREWOPS_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "CREWOPS_CACHE_ENABLED")
	viper.BindEnv("cache.size", "CREWOPS_CACHE_SIZE")

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

	conf.AppName = "CrewOpsEngine"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
