package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Twilio   TwilioConfig
	Storage  StorageConfig
	Ai       AIConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	ApiSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type TwilioConfig struct {
	AccountSid   string
	AuthToken    string
	WhatsappFrom string
}

type StorageConfig struct {
	Bucket string
	Region string
}

type AIConfig struct {
	LLMProvider   string // "openai" or "ollama"
	LLMModel      string // e.g. "gpt-4.1", "llama3"
	OpenAIKey     string
	OllamaBaseURL string
}

type ChatConfig struct {
	AnalyzerTimeout time.Duration
	CooldownWindow  time.Duration
	WorkerPoolSize  int
	TranscriptTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			ApiSecret:          getEnv("INTELLIGENCE_API_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Twilio: TwilioConfig{
			AccountSid:   getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
			WhatsappFrom: getEnv("TWILIO_WHATSAPP_FROM", ""),
		},
		Storage: StorageConfig{
			Bucket: getEnv("S3_BUCKET_NAME", ""),
			Region: getEnv("AWS_REGION", "us-east-1"),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "openai"),
			LLMModel:      getEnv("LLM_MODEL", "gpt-4.1"),
			OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Chat: ChatConfig{
			AnalyzerTimeout: getEnvAsDuration("ANALYZER_TIMEOUT", 60*time.Second),
			CooldownWindow:  getEnvAsDuration("MODERATION_COOLDOWN", time.Minute),
			WorkerPoolSize:  getEnvAsInt("IO_WORKER_POOL_SIZE", 32),
			TranscriptTopic: getEnv("TRANSCRIPT_ARCHIVE_TOPIC_NAME", "ARCHIVE_SESSION_TRANSCRIPT"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
