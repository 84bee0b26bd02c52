// internal/genai/descriptors.go
package genai

import (
	"context"
	"errors"
	"regexp"
)

// ErrBadDescriptorFormat signals that the descriptor model replied with
// something other than a comma-separated list.
var ErrBadDescriptorFormat = errors.New("descriptor model returned an unexpected format")

const descriptorSystemPrompt = `
You are an AI assistant specialized in creating concise and contextually appropriate descriptors for sound effect generation in real-time party games. Your task is to receive a short text input representing an in-game event or action and generate a comma-separated list of descriptive keywords or phrases that will instruct an AI sound generator to produce authentic and immersive game sounds.

**Requirements:**

1. **Conciseness:** The output should consist of only a few descriptive words or short phrases, separated by commas. Aim for clarity and brevity.

2. **Relevance:** Ensure that each descriptor directly relates to the input event and is suitable for enhancing the gaming experience.

3. **Variety:** Use a diverse range of descriptors to cover different aspects of the sound, such as mood, intensity, and style.

4. **Format:** Return only the comma-separated descriptors as a single string. Do not include explanations, additional text, or formatting.

**Examples:**

- **Input:** "Game ended"

  **Output:** "Triumphant fanfare, Victory theme, Celebratory horns"

- **Input:** "New user joined"

  **Output:** "Welcoming chime, Friendly notification, Pleasant alert"

- **Input:** "9/10"

  **Output:** "Cheerful jingle, Uplifting melody, Lighthearted tune"

**Do not** include any additional information, explanations, or text outside of the comma-separated descriptors.
`

var descriptorPattern = regexp.MustCompile(`^([^,]+,){1,}[^,]+$`)

// SoundDescriptors turns a short in-game event text into a comma-separated
// list of sound descriptors suitable as input to the sound-generation API.
func (c *Client) SoundDescriptors(ctx context.Context, eventText string) (string, error) {
	raw, err := c.chatCompletion(ctx, chatRequest{
		Model: chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: descriptorSystemPrompt},
			{Role: "user", Content: eventText},
		},
		Temperature: 0.7,
		MaxTokens:   50,
	})
	if err != nil {
		return "", err
	}

	if !descriptorPattern.MatchString(raw) {
		c.log.Errorf("invalid descriptors format: %q", raw)
		return "", ErrBadDescriptorFormat
	}
	return raw, nil
}
