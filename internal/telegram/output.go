package telegram

import (
	"github.com/Vovarama1992/voice_assist/internal/session"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// chatOutput — session.Output поверх чата: текст ответа уходит сразу, mp3 следом
type chatOutput struct {
	api    botAPI
	chatID int64
	log    *zap.SugaredLogger
}

func newChatOutput(api botAPI, chatID int64, log *zap.SugaredLogger) *chatOutput {
	return &chatOutput{api: api, chatID: chatID, log: log}
}

func (o *chatOutput) Transcribed(text string) {
	o.send(tgbotapi.NewMessage(o.chatID, "🎤 Vous avez dit : "+text))
}

func (o *chatOutput) Reply(text string) {
	o.send(tgbotapi.NewMessage(o.chatID, text))
}

func (o *chatOutput) Audio(data []byte, mimeType string) {
	audio := tgbotapi.NewAudio(o.chatID, tgbotapi.FileBytes{Name: "reponse.mp3", Bytes: data})
	o.send(audio)
}

func (o *chatOutput) Notice(n session.Notice) {
	o.send(tgbotapi.NewMessage(o.chatID, noticeText(n)))
}

func (o *chatOutput) send(c tgbotapi.Chattable) {
	if _, err := o.api.Send(c); err != nil {
		o.log.Warnf("[bot] send fail chat=%d: %v", o.chatID, err)
	}
}

func noticeText(n session.Notice) string {
	switch n.Level {
	case session.LevelError:
		return "❗ " + n.Message
	case session.LevelWarning:
		return "⚠️ " + n.Message
	}
	return "✅ " + n.Message
}
