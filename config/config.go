package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string
	}
	Redis struct {
		Enabled  bool
		Addr     string
		Password string
		DB       int
		RoomTTL  int // 目录条目 TTL，秒
	}
	JWT struct {
		Secret string
	}
	Game struct {
		SmallBlind       int64
		BigBlind         int64
		StartingChips    int64
		NextHandDelay    int // 全员确认到下一局的间隔，秒
		RoomListInterval int // 大厅列表周期推送间隔，秒
	}
}

var C Config

func Load() {
	viper.SetConfigFile("config/config.yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}
	if err := viper.Unmarshal(&C); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}
}

func (c *Config) NextHandDelay() time.Duration {
	return time.Duration(c.Game.NextHandDelay) * time.Second
}

func (c *Config) RoomListInterval() time.Duration {
	return time.Duration(c.Game.RoomListInterval) * time.Second
}
