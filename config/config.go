package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Upstream struct {
		OverpassURL       string        `mapstructure:"overpassURL"`
		OverpassStatusURL string        `mapstructure:"overpassStatusURL"`
		NominatimURL      string        `mapstructure:"nominatimURL"`
		OpenMeteoURL      string        `mapstructure:"openMeteoURL"`
		UserAgent         string        `mapstructure:"userAgent"`
		Timeout           time.Duration `mapstructure:"timeout"`
		GeocodeTimeout    time.Duration `mapstructure:"geocodeTimeout"`
		RetryAttempts     int           `mapstructure:"retryAttempts"`
		RetryBackoff      time.Duration `mapstructure:"retryBackoff"`
	} `mapstructure:"upstream"`
	Search struct {
		HotelRadiusM      int `mapstructure:"hotelRadiusM"`
		AttractionRadiusM int `mapstructure:"attractionRadiusM"`
		TransitRadiusM    int `mapstructure:"transitRadiusM"`
		FoodRadiusM       int `mapstructure:"foodRadiusM"`
		HotelLimit        int `mapstructure:"hotelLimit"`
		AttractionLimit   int `mapstructure:"attractionLimit"`
	} `mapstructure:"search"`
	Planner struct {
		SpendFloor int `mapstructure:"spendFloor"`
	} `mapstructure:"planner"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	}
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
