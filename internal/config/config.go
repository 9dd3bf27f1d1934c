package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/CapCeph/ship-lens/pkg/engine"
)

// StorageConfig selects and parameterizes the preset store backend.
type StorageConfig struct {
	Type     string         `json:"type" mapstructure:"type"`
	JSONFile JSONFileConfig `json:"jsonfile" mapstructure:"jsonfile"`
	SQLite   SQLiteConfig   `json:"sqlite" mapstructure:"sqlite"`
}

// JSONFileConfig holds file-based preset storage settings.
type JSONFileConfig struct {
	Dir string `json:"dir" mapstructure:"dir"`
}

// SQLiteConfig holds sqlite preset storage settings.
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// InfluxConfig holds calculation telemetry settings. Disabled by
// default; the calculator is fully functional without it.
type InfluxConfig struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Protocol string `json:"protocol" mapstructure:"protocol"`
	Token    string `json:"token" mapstructure:"token"`
	Org      string `json:"org" mapstructure:"org"`
	Bucket   string `json:"bucket" mapstructure:"bucket"`
}

// Load reads configuration from shiplens.cfg.json in configDir and sets
// default values. Every key has a default; a present but empty config
// file is valid.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./shiplens-logs")
	viper.SetDefault("dataDir", "./data")

	// 0 means one comparison worker per CPU
	viper.SetDefault("compareWorkers", 0)

	viper.SetDefault("storage.type", "jsonfile")
	viper.SetDefault("storage.jsonfile.dir", "./userdata")
	viper.SetDefault("storage.sqlite.path", "./userdata/shiplens.db")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "shiplens")
	viper.SetDefault("influx.bucket", "shiplens-calcs")

	viper.SetDefault("scenario.mountAccuracy", 0.75)
	viper.SetDefault("scenario.scenarioAccuracy", 0.75)
	viper.SetDefault("scenario.timeOnTarget", 0.65)
	viper.SetDefault("scenario.fireMode", 1.0)
	viper.SetDefault("scenario.powerMultiplier", 1.0)

	viper.SetDefault("zones.hull", 0.6)
	viper.SetDefault("zones.armor", 0.3)
	viper.SetDefault("zones.thruster", 0.05)
	viper.SetDefault("zones.component", 0.05)

	viper.SetConfigName("shiplens.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetScenario returns the configured default combat scenario.
func GetScenario() engine.Scenario {
	return engine.Scenario{
		MountAccuracy:    viper.GetFloat64("scenario.mountAccuracy"),
		ScenarioAccuracy: viper.GetFloat64("scenario.scenarioAccuracy"),
		TimeOnTarget:     viper.GetFloat64("scenario.timeOnTarget"),
		FireMode:         viper.GetFloat64("scenario.fireMode"),
		PowerMultiplier:  viper.GetFloat64("scenario.powerMultiplier"),
	}
}

// GetZoneWeights returns the configured default zone targeting weights.
func GetZoneWeights() engine.ZoneWeights {
	return engine.ZoneWeights{
		Hull:      viper.GetFloat64("zones.hull"),
		Armor:     viper.GetFloat64("zones.armor"),
		Thruster:  viper.GetFloat64("zones.thruster"),
		Component: viper.GetFloat64("zones.component"),
	}
}

// GetStorageConfig returns the preset store settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		JSONFile: JSONFileConfig{
			Dir: viper.GetString("storage.jsonfile.dir"),
		},
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
	}
}

// GetInfluxConfig returns the telemetry settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:  viper.GetBool("influx.enabled"),
		Host:     viper.GetString("influx.host"),
		Port:     viper.GetString("influx.port"),
		Protocol: viper.GetString("influx.protocol"),
		Token:    viper.GetString("influx.token"),
		Org:      viper.GetString("influx.org"),
		Bucket:   viper.GetString("influx.bucket"),
	}
}
