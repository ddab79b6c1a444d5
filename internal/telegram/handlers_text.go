package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (app *BotApp) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	app.log.Infof("[text] start chat=%d", chatID)

	// === 0. показываем 'typing' ===
	_, _ = app.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

	// === 1. цикл сессии ===
	out := newChatOutput(app.api, chatID, app.log)
	app.sessionFor(chatID).SendText(ctx, msg.Text, out)

	app.log.Infof("[text] done chat=%d", chatID)
}
