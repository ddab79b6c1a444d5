package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
)

const (
	defaultElevenLabsURL     = "https://api.elevenlabs.io"
	defaultElevenLabsVoiceID = "EXAVITQu4vr4xnSDxMaL" // Rachel
	elevenLabsModel          = "eleven_multilingual_v2"
)

type ElevenLabsClient struct {
	apiKey  string
	voiceID string
	baseURL string
	httpCli *http.Client
}

func NewElevenLabsClient(apiKey, voiceID, baseURL string) *ElevenLabsClient {
	if voiceID == "" {
		voiceID = defaultElevenLabsVoiceID
	}
	if baseURL == "" {
		baseURL = defaultElevenLabsURL
	}
	return &ElevenLabsClient{
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: baseURL,
		httpCli: http.DefaultClient,
	}
}

// TEXT → SPEECH
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("ELEVENLABS_API_KEY not set")
	}

	payload, err := json.Marshal(map[string]string{
		"text":          text,
		"model_id":      elevenLabsModel,
		"language_code": languageCode,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("elevenlabs error: %s", string(b))
	}

	return io.ReadAll(resp.Body)
}
