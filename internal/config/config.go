package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv        string `mapstructure:"APP_ENV"`
	Port          string `mapstructure:"PORT"`
	BaseURL       string `mapstructure:"BASE_URL"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	RedisURL      string `mapstructure:"REDIS_URL"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	GeoIPDBPath   string `mapstructure:"GEOIP_DB_PATH"`
}

func LoadConfig() (config Config, err error) {
	viper.SetDefault("APP_ENV", "local")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("DATABASE_URL", "sqlite://linkbio.db")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379")
	viper.SetDefault("SESSION_SECRET", "change-me-in-production-0123456789ab")
	viper.SetDefault("GEOIP_DB_PATH", "./geoip/GeoLite2-Country.mmdb")

	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	return
}
