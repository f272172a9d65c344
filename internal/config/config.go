package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	OllamaURL   string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	OllamaModel string `env:"OLLAMA_MODEL" envDefault:"llama3.2:1b"`
	// AnalysisTimeout acota un intento de clasificación por modelo,
	// incluido el round trip HTTP.
	AnalysisTimeout time.Duration `env:"ANALYSIS_TIMEOUT" envDefault:"20s"`

	MaxEntryLength int `env:"MAX_ENTRY_LENGTH" envDefault:"5000"`

	// StatsCacheTTL acota cuánto pueden envejecer las estadísticas cacheadas.
	StatsCacheTTL time.Duration `env:"STATS_CACHE_TTL" envDefault:"5m"`

	// Redis es opcional; sin REDIS_ADDR el cache de estadísticas corre en proceso.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
