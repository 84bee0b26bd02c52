// internal/genai/evaluate_test.go
package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/promptparty/promptparty/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatStub(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
}

func newStubClient(baseURL string) *Client {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewClient(&config.Config{OpenAIBaseURL: baseURL}, logger)
}

func TestScoreGuessesSingle(t *testing.T) {
	srv := newChatStub(t, "8")
	defer srv.Close()

	grades, err := newStubClient(srv.URL).ScoreGuesses(context.Background(), "a storm at sea", "waves crashing", "")
	require.NoError(t, err)
	assert.Equal(t, []int{8}, grades)
}

func TestScoreGuessesPair(t *testing.T) {
	srv := newChatStub(t, "7,2")
	defer srv.Close()

	grades, err := newStubClient(srv.URL).ScoreGuesses(context.Background(), "a storm at sea", "waves crashing", "a quiet pond")
	require.NoError(t, err)
	assert.Equal(t, []int{7, 2}, grades)
}

func TestScoreGuessesRejectsPairFormatForSingle(t *testing.T) {
	// One guess must yield one grade; a pair reply is malformed.
	srv := newChatStub(t, "7,2")
	defer srv.Close()

	_, err := newStubClient(srv.URL).ScoreGuesses(context.Background(), "a storm at sea", "waves crashing", "")
	assert.ErrorIs(t, err, ErrBadGradeFormat)
}

func TestSoundDescriptorsRejectsFreeformReply(t *testing.T) {
	srv := newChatStub(t, "Here are some descriptors you could use!")
	defer srv.Close()

	_, err := newStubClient(srv.URL).SoundDescriptors(context.Background(), "game ended")
	assert.ErrorIs(t, err, ErrBadDescriptorFormat)
}
