package ports

import (
	"context"

	"github.com/Vovarama1992/voice_assist/internal/conversation"
	"github.com/Vovarama1992/voice_assist/internal/credential"
)

// Transcriber — голос → текст. audioPath указывает на временный файл.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, cred credential.Credential) (string, error)
}

// Completer — диалог → один ответ модели.
type Completer interface {
	Complete(ctx context.Context, turns []conversation.Turn, model string, maxTokens int, temperature float32, cred credential.Credential) (string, error)
}

// Synthesizer — текст → mp3.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, languageCode string) ([]byte, error)
}
