// internal/genai/elevenlabs.go
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultPromptInfluence is used when the caller leaves promptInfluence unset.
const DefaultPromptInfluence = 0.3

type soundRequest struct {
	Text string `json:"text"`
	// DurationSeconds stays null when unset so the upstream picks a duration.
	DurationSeconds *float64 `json:"durationSeconds"`
	PromptInfluence float64  `json:"promptInfluence"`
}

// GenerateSound renders the text as a sound effect via the ElevenLabs
// sound-generation API and returns the raw audio bytes. durationSeconds is
// forwarded unchanged when non-nil; promptInfluence defaults to
// DefaultPromptInfluence when nil. Range validation happens at the HTTP
// handler before this call.
func (c *Client) GenerateSound(ctx context.Context, text string, durationSeconds, promptInfluence *float64) ([]byte, error) {
	influence := DefaultPromptInfluence
	if promptInfluence != nil {
		influence = *promptInfluence
	}
	body, err := json.Marshal(soundRequest{
		Text:            text,
		DurationSeconds: durationSeconds,
		PromptInfluence: influence,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal sound request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.elevenLabsSoundURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build sound request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", c.elevenLabsKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sound generation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.WithField("status", resp.StatusCode).Errorf("elevenlabs sound generation failed: %s", detail)
		return nil, fmt.Errorf("sound generation: unexpected status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read sound response: %w", err)
	}
	return audio, nil
}
