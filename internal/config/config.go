package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Vovarama1992/voice_assist/internal/session"
	"github.com/Vovarama1992/voice_assist/internal/speech"
)

// Config — всё из окружения; .env подгружается в main через godotenv.
type Config struct {
	Port           string
	CredentialFile string
	OpenAIBaseURL  string
	Session        session.Settings
	Speech         speech.Config
	TelegramToken  string
	RateLimit      int
	SessionTTL     time.Duration
}

func Load() Config {
	settings := session.DefaultSettings()
	settings.SystemPrompt = getString("SYSTEM_PROMPT", settings.SystemPrompt)
	settings.Model = getString("OPENAI_MODEL", settings.Model)
	settings.MaxTokens = getInt("OPENAI_MAX_TOKENS", settings.MaxTokens)
	settings.Temperature = getFloat32("OPENAI_TEMPERATURE", settings.Temperature)
	settings.ContextWindow = getInt("CONTEXT_WINDOW", settings.ContextWindow)
	settings.Language = getString("SPEECH_LANGUAGE", settings.Language)

	return Config{
		Port:           getString("PORT", "8080"),
		CredentialFile: getString("CREDENTIAL_FILE", ".env"),
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),
		Session:        settings,
		Speech: speech.Config{
			Provider:          getString("TTS_PROVIDER", speech.ProviderGoogle),
			ElevenLabsKey:     os.Getenv("ELEVENLABS_API_KEY"),
			ElevenLabsVoiceID: os.Getenv("ELEVENLABS_VOICE_ID"),
		},
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		RateLimit:     getInt("RATE_LIMIT_PER_MINUTE", 30),
		SessionTTL:    time.Duration(getInt("SESSION_TTL_MINUTES", 30)) * time.Minute,
	}
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getFloat32(key string, def float32) float32 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 32)
	if err != nil || v < 0 || v > 1 {
		return def
	}
	return float32(v)
}
