package speech

import "context"

// TTSClient — провайдер синтеза, отдаёт mp3 целиком
type TTSClient interface {
	Synthesize(ctx context.Context, text, languageCode string) ([]byte, error)
}
