package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings holds everything the build needs from the environment. Missing
// required values are a hard Load error: partial configuration would silently
// produce broken public URLs, so nothing may run without a complete set.
type Settings struct {
	StoreEndpoint  string
	StoreAccessKey string
	StoreSecretKey string
	StoreUseSSL    bool
	Bucket         string
	PublicBaseURL  string
	ContentRoot    string
	OutputDir      string
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	viper.SetDefault("CONTENT_ROOT", "content")
	viper.SetDefault("OUTPUT_DIR", ".content-data")

	required := []string{
		"STORE_ENDPOINT",
		"STORE_ACCESS_KEY",
		"STORE_SECRET_KEY",
		"STORE_BUCKET",
		"PUBLIC_BASE_URL",
	}
	for _, key := range required {
		if !viper.IsSet(key) || viper.GetString(key) == "" {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	return &Settings{
		StoreEndpoint:  viper.GetString("STORE_ENDPOINT"),
		StoreAccessKey: viper.GetString("STORE_ACCESS_KEY"),
		StoreSecretKey: viper.GetString("STORE_SECRET_KEY"),
		StoreUseSSL:    viper.GetBool("STORE_USE_SSL"),
		Bucket:         viper.GetString("STORE_BUCKET"),
		PublicBaseURL:  viper.GetString("PUBLIC_BASE_URL"),
		ContentRoot:    viper.GetString("CONTENT_ROOT"),
		OutputDir:      viper.GetString("OUTPUT_DIR"),
	}, nil
}
