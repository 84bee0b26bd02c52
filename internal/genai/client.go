// internal/genai/client.go

// Package genai wraps the two third-party generative AI collaborators: the
// OpenAI API for chat-completion scoring, sound descriptors and image
// generation, and the ElevenLabs sound-generation API for audio effects.
// Both are plain REST upstreams reached over HTTP.
package genai

import (
	"net/http"
	"time"

	"github.com/promptparty/promptparty/internal/config"
	"github.com/sirupsen/logrus"
)

// Client issues requests against the generative AI upstreams. All methods
// are single-shot request/response wrappers; nothing is retried.
type Client struct {
	http *http.Client
	log  *logrus.Logger

	openAIKey     string
	openAIBaseURL string

	elevenLabsKey      string
	elevenLabsSoundURL string
}

// NewClient builds a Client from the service config.
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		http:               &http.Client{Timeout: 60 * time.Second},
		log:                logger,
		openAIKey:          cfg.OpenAIAPIKey,
		openAIBaseURL:      cfg.OpenAIBaseURL,
		elevenLabsKey:      cfg.ElevenLabsAPIKey,
		elevenLabsSoundURL: cfg.ElevenLabsSoundURL,
	}
}
