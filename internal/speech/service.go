package speech

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vovarama1992/voice_assist/internal/ports"
)

const (
	ProviderGoogle     = "gtts"
	ProviderElevenLabs = "elevenlabs"
)

// Config — выбор провайдера синтеза
type Config struct {
	Provider          string
	GoogleEndpoint    string
	ElevenLabsKey     string
	ElevenLabsVoiceID string
	ElevenLabsURL     string
}

// Service — адаптер синтеза: любая ошибка провайдера становится SynthesisError
type Service struct {
	tts TTSClient
}

func NewService(tts TTSClient) *Service {
	return &Service{tts: tts}
}

// NewServiceFromConfig — пустой провайдер означает gtts
func NewServiceFromConfig(cfg Config) (*Service, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderGoogle:
		return NewService(NewGoogleTTSClient(cfg.GoogleEndpoint)), nil
	case ProviderElevenLabs:
		if cfg.ElevenLabsKey == "" {
			return nil, fmt.Errorf("ELEVENLABS_API_KEY not set")
		}
		return NewService(NewElevenLabsClient(cfg.ElevenLabsKey, cfg.ElevenLabsVoiceID, cfg.ElevenLabsURL)), nil
	}
	return nil, fmt.Errorf("unknown tts provider %q", cfg.Provider)
}

func (s *Service) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ports.SynthesisError("synthesize", fmt.Errorf("empty text"))
	}

	audio, err := s.tts.Synthesize(ctx, text, languageCode)
	if err != nil {
		return nil, ports.SynthesisError("synthesize", err)
	}
	if len(audio) == 0 {
		return nil, ports.SynthesisError("synthesize", fmt.Errorf("empty audio"))
	}
	return audio, nil
}
