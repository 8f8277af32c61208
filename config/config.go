package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config is the full gateway configuration.
type Config struct {
	Server      ServerConfig       `mapstructure:"server"`
	IOIMinimum  string             `mapstructure:"ioi_minimum"`
	Instruments []InstrumentConfig `mapstructure:"instruments"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// InstrumentConfig is one supported trading pair. Minimums are decimal
// strings so they survive config round-trips without float coercion.
type InstrumentConfig struct {
	Symbol       string `mapstructure:"symbol"`
	MinOrderSize string `mapstructure:"min_order_size"`
}

// Default returns the built-in instrument table. Symbols are the lowercase
// pair names the exchange lists; btcusd carries a tighter minimum than the
// rest.
func Default() *Config {
	return &Config{
		Server:     ServerConfig{Port: "8080"},
		IOIMinimum: "10",
		Instruments: []InstrumentConfig{
			{Symbol: "btcusd", MinOrderSize: "0.00001"},
			{Symbol: "ethusd", MinOrderSize: "0.001"},
			{Symbol: "ethbtc", MinOrderSize: "0.001"},
			{Symbol: "zecusd", MinOrderSize: "0.001"},
			{Symbol: "zecbtc", MinOrderSize: "0.001"},
			{Symbol: "zeceth", MinOrderSize: "0.001"},
		},
	}
}

// Load reads the YAML config at path, falling back to Default when the file
// does not exist. Environment variables prefixed GATEWAY_ override file
// values.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("GATEWAY")
	viper.BindEnv("server.port", "GATEWAY_PORT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	def := Default()
	if cfg.Server.Port == "" {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.IOIMinimum == "" {
		cfg.IOIMinimum = def.IOIMinimum
	}
	if len(cfg.Instruments) == 0 {
		cfg.Instruments = def.Instruments
	}

	return &cfg, nil
}
