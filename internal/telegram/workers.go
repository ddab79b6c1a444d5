package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	workerShards = 16
	shardBuffer  = 64
)

// чат всегда попадает в один и тот же шард, поэтому его сообщения
// обрабатываются строго по порядку; разные чаты идут параллельно
func shardFor(chatID int64, n int) int {
	return int(uint64(chatID) % uint64(n))
}

func (app *BotApp) startWorkers(ctx context.Context) {
	app.shards = make([]chan *tgbotapi.Message, workerShards)
	for i := range app.shards {
		ch := make(chan *tgbotapi.Message, shardBuffer)
		app.shards[i] = ch

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case msg := <-ch:
					app.handleMessage(ctx, msg)
				}
			}
		}()
	}
}

func (app *BotApp) dispatch(ctx context.Context, msg *tgbotapi.Message) {
	select {
	case app.shards[shardFor(msg.Chat.ID, len(app.shards))] <- msg:
	case <-ctx.Done():
	}
}
