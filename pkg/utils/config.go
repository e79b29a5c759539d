package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Line     LineConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LineConfig struct {
	ChannelToken string
	AdminUserID  string
	PushURL      string
}

type BookingConfig struct {
	TxMaxRetries   int
	TxTimeout      time.Duration
	WaitlistPage   int
	ListWindowDays int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LINE_PUSH_URL", "https://api.line.me/v2/bot/message/push")
	viper.SetDefault("TX_MAX_RETRIES", 3)
	viper.SetDefault("TX_TIMEOUT_SECONDS", 5)
	viper.SetDefault("WAITLIST_PAGE_SIZE", 50)
	viper.SetDefault("LIST_WINDOW_DAYS", 7)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Line: LineConfig{
			ChannelToken: viper.GetString("LINE_CHANNEL_ACCESS_TOKEN"),
			AdminUserID:  viper.GetString("LINE_ADMIN_USER_ID"),
			PushURL:      viper.GetString("LINE_PUSH_URL"),
		},
		Booking: BookingConfig{
			TxMaxRetries:   viper.GetInt("TX_MAX_RETRIES"),
			TxTimeout:      time.Duration(viper.GetInt("TX_TIMEOUT_SECONDS")) * time.Second,
			WaitlistPage:   viper.GetInt("WAITLIST_PAGE_SIZE"),
			ListWindowDays: viper.GetInt("LIST_WINDOW_DAYS"),
		},
	}

	return config, nil
}
