package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Vovarama1992/voice_assist/internal/conversation"
	"github.com/Vovarama1992/voice_assist/internal/credential"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient — адаптер транскрипции и генерации.
// Клиент go-openai собирается на каждый вызов: ключ принадлежит сессии.
type OpenAIClient struct {
	baseURL  string
	language string
	log      *zap.SugaredLogger
}

// NewOpenAIClient: пустой baseURL — дефолтный api.openai.com;
// language — подсказка для Whisper, пустая строка включает автоопределение.
func NewOpenAIClient(baseURL, language string, log *zap.SugaredLogger) *OpenAIClient {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &OpenAIClient{
		baseURL:  baseURL,
		language: language,
		log:      log,
	}
}

func (c *OpenAIClient) client(cred credential.Credential) *openai.Client {
	cfg := openai.DefaultConfig(cred.Reveal())
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

func (c *OpenAIClient) Complete(
	ctx context.Context,
	turns []conversation.Turn,
	model string,
	maxTokens int,
	temperature float32,
	cred credential.Credential,
) (string, error) {

	if len(turns) == 0 {
		return "", classify("complete", errors.New("empty conversation"))
	}
	if model == "" {
		model = DefaultModel
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(t.Role),
			Content: t.Content,
		})
	}

	start := time.Now()
	resp, err := c.client(cred).CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: clampTemperature(temperature),
	})
	c.log.Infof("[ai][%.1fs] completion done model=%s turns=%d err=%v",
		time.Since(start).Seconds(), model, len(turns), err)
	if err != nil {
		return "", classify("complete", err)
	}

	if len(resp.Choices) == 0 {
		return "", classify("complete", errors.New("no choices in response"))
	}
	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", classify("complete", errors.New("empty reply"))
	}
	return reply, nil
}

// Transcribe — Whisper по временному файлу
func (c *OpenAIClient) Transcribe(ctx context.Context, audioPath string, cred credential.Credential) (string, error) {
	start := time.Now()
	resp, err := c.client(cred).CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Language: c.language,
	})
	c.log.Infof("[ai][%.1fs] transcription done err=%v", time.Since(start).Seconds(), err)
	if err != nil {
		return "", classify("transcribe", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", classify("transcribe", errors.New("empty transcript"))
	}
	return text, nil
}

func clampTemperature(t float32) float32 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
