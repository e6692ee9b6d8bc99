package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Gemini    GeminiConfig
	Services  ServicesConfig
	Interview InterviewConfig
}

type ServerConfig struct {
	Addr string `envconfig:"SERVER_ADDR" default:":5000"`
}

type MongoConfig struct {
	URI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database string `envconfig:"MONGO_DATABASE" default:"soft-skill"`
}

type GeminiConfig struct {
	APIKey string `envconfig:"GEMINI_API_KEY"`
	Model  string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
}

// ServicesConfig points at the local inference services wrapping the speech
// and facial-emotion models.
type ServicesConfig struct {
	TranscriberURL string `envconfig:"TRANSCRIBER_URL" default:"http://localhost:9000"`
	EmotionURL     string `envconfig:"EMOTION_URL" default:"http://localhost:9100"`
}

type InterviewConfig struct {
	TechnicalCount   int    `envconfig:"TECHNICAL_QUESTIONS" default:"5"`
	QuestionBankPath string `envconfig:"QUESTION_BANK" default:"config/softskills.yaml"`
}

// Load reads the process configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if cfg.Interview.TechnicalCount <= 0 {
		return nil, fmt.Errorf("TECHNICAL_QUESTIONS must be greater than 0")
	}
	return &cfg, nil
}
