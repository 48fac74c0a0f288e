package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB connection string for the contact directory.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDraftDB  int    `mapstructure:"REDIS_DRAFT_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Gemini extraction.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Google Calendar OAuth files and the service account used for speech.
	GoogleCredentialsFile    string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	GoogleTokenFile          string `mapstructure:"GOOGLE_TOKEN_FILE"`
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`

	// Twilio WhatsApp transport.
	TwilioAccountSID        string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken         string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppNumber    string `mapstructure:"TWILIO_WHATSAPP_NUMBER"`
	TwilioWebhookURL        string `mapstructure:"TWILIO_WEBHOOK_URL"`
	TwilioValidateSignature bool   `mapstructure:"TWILIO_VALIDATE_SIGNATURE"`

	// Dialogue behaviour.
	Timezone            string `mapstructure:"TIMEZONE"`
	DraftStore          string `mapstructure:"DRAFT_STORE"` // "memory" or "redis"
	DraftTTLMinutes     int    `mapstructure:"DRAFT_TTL_MIN"`
	ReminderLeadMinutes int    `mapstructure:"REMINDER_LEAD_MIN"`
	RemindersEnabled    bool   `mapstructure:"REMINDERS_ENABLED"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DRAFT_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	viper.SetDefault("GOOGLE_TOKEN_FILE", "token.json")
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	viper.SetDefault("TWILIO_VALIDATE_SIGNATURE", false)
	viper.SetDefault("TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("DRAFT_STORE", "memory")
	viper.SetDefault("DRAFT_TTL_MIN", 30)
	viper.SetDefault("REMINDER_LEAD_MIN", 30)
	viper.SetDefault("REMINDERS_ENABLED", false)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
