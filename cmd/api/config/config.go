package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	StoreNeo4j    = "neo4j"
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	InferenceHuggingFace = "huggingface"
	InferenceGemini      = "gemini"
	InferenceOpenAI      = "openai"
)

type Config struct {
	Port            string
	GinMode         string
	AllowedOrigins  []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	Logging   LoggingConfig
	Store     StoreConfig
	Inference InferenceConfig
	Arxiv     ArxivConfig
}

type LoggingConfig struct {
	Level  string
	Format string
}

type StoreConfig struct {
	Backend  string
	Neo4j    Neo4jConfig
	Postgres PostgresConfig
}

type Neo4jConfig struct {
	URI      string
	User     string
	Password string
	Database string
}

type PostgresConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
}

// DSN renders the connection string the same way for every environment.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port)
}

type InferenceConfig struct {
	Backend     string
	HuggingFace HuggingFaceConfig
	Gemini      GeminiConfig
	OpenAI      OpenAIConfig
}

type HuggingFaceConfig struct {
	APIURL             string
	Token              string
	SummarizationModel string
	QAModel            string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type ArxivConfig struct {
	BaseURL string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("REQUEST_TIMEOUT", 30*time.Second)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)

	v.SetDefault("STORE_BACKEND", StoreNeo4j)
	v.SetDefault("NEO4J_URI", "neo4j://localhost:7687")
	v.SetDefault("NEO4J_USER", "neo4j")
	v.SetDefault("NEO4J_DATABASE", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")

	v.SetDefault("INFERENCE_BACKEND", InferenceHuggingFace)
	v.SetDefault("HF_API_URL", "https://api-inference.huggingface.co/models")
	v.SetDefault("HF_SUMMARIZATION_MODEL", "sshleifer/distilbart-cnn-12-6")
	v.SetDefault("HF_QA_MODEL", "distilbert-base-uncased-distilled-squad")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")

	v.SetDefault("ARXIV_BASE_URL", "http://export.arxiv.org/api/query")
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Port:            v.GetString("PORT"),
		GinMode:         v.GetString("GIN_MODE"),
		AllowedOrigins:  splitList(v.GetString("ALLOWED_ORIGINS")),
		RequestTimeout:  v.GetDuration("REQUEST_TIMEOUT"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(v.GetString("STORE_BACKEND")),
			Neo4j: Neo4jConfig{
				URI:      v.GetString("NEO4J_URI"),
				User:     v.GetString("NEO4J_USER"),
				Password: v.GetString("NEO4J_PASSWORD"),
				Database: v.GetString("NEO4J_DATABASE"),
			},
			Postgres: PostgresConfig{
				Host:     v.GetString("DB_HOST"),
				User:     v.GetString("DB_USER"),
				Password: v.GetString("DB_PASSWORD"),
				Name:     v.GetString("DB_NAME"),
				Port:     v.GetString("DB_PORT"),
			},
		},
		Inference: InferenceConfig{
			Backend: strings.ToLower(v.GetString("INFERENCE_BACKEND")),
			HuggingFace: HuggingFaceConfig{
				APIURL:             strings.TrimRight(v.GetString("HF_API_URL"), "/"),
				Token:              v.GetString("HF_API_TOKEN"),
				SummarizationModel: v.GetString("HF_SUMMARIZATION_MODEL"),
				QAModel:            v.GetString("HF_QA_MODEL"),
			},
			Gemini: GeminiConfig{
				APIKey: v.GetString("GOOGLE_AI_STUDIO_API_KEY"),
				Model:  v.GetString("GEMINI_MODEL"),
			},
			OpenAI: OpenAIConfig{
				APIKey: v.GetString("OPENAI_API_KEY"),
				Model:  v.GetString("OPENAI_MODEL"),
			},
		},
		Arxiv: ArxivConfig{
			BaseURL: v.GetString("ARXIV_BASE_URL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing setting for the selected backends at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is not set"))
	}

	switch c.Store.Backend {
	case StoreNeo4j:
		if c.Store.Neo4j.URI == "" {
			errs = append(errs, errors.New("NEO4J_URI is not set"))
		}
		if c.Store.Neo4j.Password == "" {
			errs = append(errs, errors.New("NEO4J_PASSWORD is not set"))
		}
	case StorePostgres:
		if c.Store.Postgres.User == "" {
			errs = append(errs, errors.New("DB_USER is not set"))
		}
		if c.Store.Postgres.Name == "" {
			errs = append(errs, errors.New("DB_NAME is not set"))
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend))
	}

	switch c.Inference.Backend {
	case InferenceHuggingFace:
		if c.Inference.HuggingFace.APIURL == "" {
			errs = append(errs, errors.New("HF_API_URL is not set"))
		}
	case InferenceGemini:
		if c.Inference.Gemini.APIKey == "" {
			errs = append(errs, errors.New("GOOGLE_AI_STUDIO_API_KEY is not set"))
		}
	case InferenceOpenAI:
		if c.Inference.OpenAI.APIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown INFERENCE_BACKEND %q", c.Inference.Backend))
	}

	return errors.Join(errs...)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
