package bootstrap

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort      string  `mapstructure:"SERVER_PORT"`
	RedisUrl        string  `mapstructure:"REDIS_URL"`
	RedisPassword   string  `mapstructure:"REDIS_PASSWORD"`
	MongoUri        string  `mapstructure:"MONGO_URI"`
	MongoDatabase   string  `mapstructure:"MONGO_DATABASE"`
	IsLocalCors     bool    `mapstructure:"LOCAL_CORS"`
	RequireAuth     bool    `mapstructure:"REQUIRE_AUTH"`
	AllowHandGrants bool    `mapstructure:"ALLOW_HAND_GRANTS"`
	ActionRate      float64 `mapstructure:"ACTION_RATE"`
	ActionBurst     int     `mapstructure:"ACTION_BURST"`
	RoomInbox       int     `mapstructure:"ROOM_INBOX"`
}

var defaults = map[string]any{
	"SERVER_PORT":       ":8080",
	"REDIS_URL":         "localhost:6379",
	"REDIS_PASSWORD":    "",
	"MONGO_URI":         "mongodb://localhost:27017",
	"MONGO_DATABASE":    "go_card_battle",
	"LOCAL_CORS":        false,
	"REQUIRE_AUTH":      true,
	"ALLOW_HAND_GRANTS": false,
	"ACTION_RATE":       5.0,
	"ACTION_BURST":      10,
	"ROOM_INBOX":        64,
}

// Setup loads the configuration. The file at cfgPath is optional; environment
// variables override it and defaults fill whatever is left.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgPath != "" {
		if _, err := os.Stat(cfgPath); err == nil {
			v.SetConfigFile(cfgPath)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", cfgPath, err)
			}
		} else if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.ActionRate <= 0 || cfg.ActionBurst <= 0 {
		return nil, fmt.Errorf("ACTION_RATE and ACTION_BURST must be positive")
	}

	return &cfg, nil
}
