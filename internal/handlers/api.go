// internal/handlers/api.go
package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/promptparty/promptparty/internal/genai"
	"github.com/sirupsen/logrus"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeAPIError emits the {error:{message}} shape the game client expects.
func writeAPIError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{"message": msg},
	})
}

// EvaluateHandler scores one or two guesses against the original prompt via
// the scoring model. Upstream details never reach the caller; failures show
// up as a generic 500.
func EvaluateHandler(ai *genai.Client, logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
			UserA  string `json:"userA"`
			UserB  string `json:"userB"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeAPIError(w, http.StatusBadRequest, "Invalid JSON body.")
			return
		}
		if req.Prompt == "" || req.UserA == "" {
			writeAPIError(w, http.StatusBadRequest, "Missing prompt or user guesses.")
			return
		}

		grades, err := ai.ScoreGuesses(r.Context(), req.Prompt, req.UserA, req.UserB)
		if err != nil {
			if errors.Is(err, genai.ErrBadGradeFormat) {
				writeAPIError(w, http.StatusInternalServerError, "Invalid response format from scoring model.")
				return
			}
			logger.Errorf("evaluate: %v", err)
			writeAPIError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"grades": grades})
	}
}

// ImageHandler generates an image from a prompt and returns its hosted URL.
func ImageHandler(ai *genai.Client, logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt *string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeAPIError(w, http.StatusBadRequest, "Invalid JSON body.")
			return
		}
		if req.Prompt == nil || *req.Prompt == "" {
			writeAPIError(w, http.StatusBadRequest, "Missing or invalid 'prompt' field.")
			return
		}

		imageURL, err := ai.GenerateImage(r.Context(), *req.Prompt)
		if err != nil {
			logger.Errorf("generate image: %v", err)
			writeAPIError(w, http.StatusInternalServerError, "Failed to generate image.")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"imageUrl": imageURL})
	}
}

// AudioHandler generates a sound effect from text and returns it base64
// encoded. durationSeconds must stay within [0.5, 22] and promptInfluence
// within [0, 1]; both are optional.
func AudioHandler(ai *genai.Client, logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text            *string  `json:"text"`
			DurationSeconds *float64 `json:"durationSeconds"`
			PromptInfluence *float64 `json:"promptInfluence"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeAPIError(w, http.StatusBadRequest, "Invalid JSON body.")
			return
		}
		if req.Text == nil || *req.Text == "" {
			writeAPIError(w, http.StatusBadRequest, "Missing or invalid 'text' field.")
			return
		}
		if req.DurationSeconds != nil && (*req.DurationSeconds < 0.5 || *req.DurationSeconds > 22) {
			writeAPIError(w, http.StatusBadRequest, "'durationSeconds' must be a number between 0.5 and 22.")
			return
		}
		if req.PromptInfluence != nil && (*req.PromptInfluence < 0 || *req.PromptInfluence > 1) {
			writeAPIError(w, http.StatusBadRequest, "'promptInfluence' must be a number between 0 and 1.")
			return
		}

		audio, err := ai.GenerateSound(r.Context(), *req.Text, req.DurationSeconds, req.PromptInfluence)
		if err != nil {
			logger.Errorf("generate audio: %v", err)
			writeAPIError(w, http.StatusInternalServerError, "Failed to generate sound effect.")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"audio": base64.StdEncoding.EncodeToString(audio),
		})
	}
}

// DescriptorsHandler turns a short in-game event text into comma-separated
// sound descriptors, used by clients to feed the audio endpoint.
func DescriptorsHandler(ai *genai.Client, logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			EventText *string `json:"eventText"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeAPIError(w, http.StatusBadRequest, "Invalid JSON body.")
			return
		}
		if req.EventText == nil || *req.EventText == "" {
			writeAPIError(w, http.StatusBadRequest, "Missing or invalid 'eventText' field.")
			return
		}

		descriptors, err := ai.SoundDescriptors(r.Context(), *req.EventText)
		if err != nil {
			if errors.Is(err, genai.ErrBadDescriptorFormat) {
				writeAPIError(w, http.StatusInternalServerError, "Invalid descriptors format received from AI.")
				return
			}
			logger.Errorf("descriptors: %v", err)
			writeAPIError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"descriptors": descriptors})
	}
}
