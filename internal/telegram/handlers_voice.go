package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const maxVoiceBytes = 20 << 20

func (app *BotApp) handleVoice(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	fileID := msg.Voice.FileID
	app.log.Infof("[voice] start chat=%d fileID=%s", chatID, fileID)

	data, err := app.downloadFile(ctx, fileID)
	if err != nil {
		app.log.Errorf("[voice] download fail chat=%d: %v", chatID, err)
		app.reply(chatID, "⚠️ Erreur lors du téléchargement du message vocal.")
		return
	}

	_, _ = app.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

	mime := msg.Voice.MimeType
	if mime == "" {
		mime = "audio/ogg"
	}

	out := newChatOutput(app.api, chatID, app.log)
	app.sessionFor(chatID).SendVoice(ctx, data, mime, out)

	app.log.Infof("[voice] done chat=%d", chatID)
}

func (app *BotApp) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := app.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := app.httpCli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxVoiceBytes))
}
