package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"fernbot/errors"
)

// Config holds the application's configuration
type Config struct {
	Port     int    `mapstructure:"PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	ChannelSecret      string `mapstructure:"CHANNEL_SECRET"`
	ChannelAccessToken string `mapstructure:"CHANNEL_ACCESS_TOKEN"`

	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsJSON string `mapstructure:"FIREBASE_CREDENTIALS_JSON"`
	ContentCollection       string `mapstructure:"CONTENT_COLLECTION"`

	AcceptThreshold float64 `mapstructure:"ACCEPT_THRESHOLD"`
	SuggestionLimit int     `mapstructure:"SUGGESTION_LIMIT"`

	RateLimitMessagesPerMin int `mapstructure:"RATE_LIMIT_MESSAGES_PER_MIN"`
	RateLimitBurstSize      int `mapstructure:"RATE_LIMIT_BURST_SIZE"`
	RateLimitMaxChats       int `mapstructure:"RATE_LIMIT_MAX_CHATS"`
}

func Load(logger *zap.Logger) *Config {
	var config Config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")        // For running locally
	viper.AddConfigPath("../")      // For running from docker subdir
	viper.AddConfigPath("./config") // Common config folder
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("PORT", 3000)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CHANNEL_SECRET", "")
	viper.SetDefault("CHANNEL_ACCESS_TOKEN", "")
	viper.SetDefault("FIREBASE_PROJECT_ID", "")
	viper.SetDefault("FIREBASE_CREDENTIALS_JSON", "")
	viper.SetDefault("CONTENT_COLLECTION", "audio_content")
	viper.SetDefault("ACCEPT_THRESHOLD", 0.0)
	viper.SetDefault("SUGGESTION_LIMIT", 3)
	viper.SetDefault("RATE_LIMIT_MESSAGES_PER_MIN", 20)
	viper.SetDefault("RATE_LIMIT_BURST_SIZE", 5)
	viper.SetDefault("RATE_LIMIT_MAX_CHATS", 1024)

	if err := viper.ReadInConfig(); err != nil {
		if logger != nil {
			logger.Warn("Could not read config file, using defaults/env vars", zap.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		// Config unmarshaling is critical - fail fast during bootstrap
		if logger != nil {
			logger.Fatal("Unable to decode config into struct", zap.Error(err))
		} else {
			// Fallback if logger not available (should not happen in practice)
			fmt.Fprintf(os.Stderr, "FATAL: Unable to decode config into struct: %v\n", err)
			os.Exit(1)
		}
	}

	// Render keeps escaped newlines in the private key; undo that here so
	// the credentials JSON is valid as stored.
	config.FirebaseCredentialsJSON = strings.ReplaceAll(config.FirebaseCredentialsJSON, `\n`, "\n")

	return &config
}

// Validate checks the settings the bot cannot run without.
func (c *Config) Validate() error {
	var missing []string
	if c.ChannelSecret == "" {
		missing = append(missing, "CHANNEL_SECRET")
	}
	if c.ChannelAccessToken == "" {
		missing = append(missing, "CHANNEL_ACCESS_TOKEN")
	}
	if c.FirebaseProjectID == "" {
		missing = append(missing, "FIREBASE_PROJECT_ID")
	}
	if len(missing) > 0 {
		return errors.WrapErrorf(errors.ErrNotConfigured, "%s", strings.Join(missing, ", "))
	}
	return nil
}
