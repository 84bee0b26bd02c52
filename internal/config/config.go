// internal/config/config.go
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting, parsed from the environment.
// cmd/server loads a .env file first via godotenv autoload.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// PublicBaseURL is the externally reachable address of this service,
	// used to build the room join links encoded into QR codes.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`

	ElevenLabsAPIKey   string `env:"ELEVENLABS_API_KEY"`
	ElevenLabsSoundURL string `env:"ELEVENLABS_SOUND_URL" envDefault:"https://api.elevenlabs.io/v1/sound-generation"`
}

// Load parses the process environment into a Config.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
