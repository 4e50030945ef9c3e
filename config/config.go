package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Game     GameConfig     `mapstructure:"game"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	HTTPAddress       string        `mapstructure:"http_address"`
	RPCAddress        string        `mapstructure:"rpc_address"`
	Codec             string        `mapstructure:"codec"`
	HeartbeatInterval time.Duration `mapstructure:"heartbeat_interval"`
	OutboxSize        int           `mapstructure:"outbox_size"`
	MaxPacketSize     int           `mapstructure:"max_packet_size"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

// GameConfig tunes every room.
type GameConfig struct {
	// Seed fixes the dice of every room; 0 uses the clock.
	Seed        int64         `mapstructure:"seed"`
	Linger      time.Duration `mapstructure:"linger"`
	MaxRooms    int           `mapstructure:"max_rooms"`
	ReapEvery   time.Duration `mapstructure:"reap_every"`
	MetricsName string        `mapstructure:"metrics_namespace"`
}

type DatabaseConfig struct {
	// Driver is gorm, postgres or memory.
	Driver   string         `mapstructure:"driver"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// SetDefaults registers a default for every key so env overrides work without
// a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.http_address", ":8080")
	v.SetDefault("server.rpc_address", ":9090")
	v.SetDefault("server.codec", "json")
	v.SetDefault("server.heartbeat_interval", 5*time.Second)
	v.SetDefault("server.outbox_size", 256)
	v.SetDefault("server.max_packet_size", 1<<20)
	v.SetDefault("server.idle_timeout", 30*time.Second)

	v.SetDefault("game.seed", 0)
	v.SetDefault("game.linger", 30*time.Second)
	v.SetDefault("game.max_rooms", 64)
	v.SetDefault("game.reap_every", 10*time.Second)
	v.SetDefault("game.metrics_namespace", "chaos")

	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "postgres")
	v.SetDefault("database.postgres.password", "")
	v.SetDefault("database.postgres.dbname", "chaos")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// LoadConfig reads config.yaml from path. A missing file is fine; every key
// can also be set through CHAOS_ environment variables, e.g.
// CHAOS_SERVER_HTTP_ADDRESS.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("chaos")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
