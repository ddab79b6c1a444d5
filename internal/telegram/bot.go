package telegram

import (
	"context"
	"strings"

	"github.com/Vovarama1992/voice_assist/internal/ai"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `🎤 Assistant Vocal Intelligent

1. /key <clé> — votre clé OpenAI API (le message sera supprimé)
2. Envoyez un message vocal ou écrivez
3. Écoutez la réponse

/model — choisir le modèle
/reset — effacer la conversation`

// Run — главный цикл получения апдейтов, до отмены ctx
func (app *BotApp) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	app.startWorkers(ctx)
	updates := app.api.GetUpdatesChan(u)
	app.log.Infof("[bot_loop] started username=@%s", app.username)

	go func() {
		<-ctx.Done()
		app.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil || update.Message.Chat == nil {
			continue
		}
		app.dispatch(ctx, update.Message)
	}
	app.log.Infof("[bot_loop] stopped")
}

func (app *BotApp) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch {
	case msg.IsCommand():
		app.handleCommand(msg)
	case msg.Voice != nil:
		app.handleVoice(ctx, msg)
	case msg.Text != "":
		app.handleText(ctx, msg)
	}
}

func (app *BotApp) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	sess := app.sessionFor(chatID)
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		app.reply(chatID, helpText)

	case "key":
		// ключ не должен остаться в чате
		if _, err := app.api.Request(tgbotapi.NewDeleteMessage(chatID, msg.MessageID)); err != nil {
			app.log.Warnf("[bot] delete key message fail chat=%d: %v", chatID, err)
		}
		n := sess.SetAPIKey(args)
		app.reply(chatID, noticeText(n))

	case "model":
		if args == "" {
			var b strings.Builder
			b.WriteString("Modèle actuel : " + sess.Model() + "\n\n")
			for _, m := range ai.Models {
				b.WriteString("/model " + m.ID + " — " + m.Label + "\n")
			}
			app.reply(chatID, b.String())
			return
		}
		if err := sess.SetModel(args); err != nil {
			app.reply(chatID, "⚠️ Modèle inconnu : "+args)
			return
		}
		app.reply(chatID, "✅ Modèle : "+args)

	case "reset":
		sess.Reset()
		app.reply(chatID, "🧹 Conversation effacée.")

	default:
		app.reply(chatID, helpText)
	}
}

func (app *BotApp) reply(chatID int64, text string) {
	if _, err := app.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		app.log.Warnf("[bot] send fail chat=%d: %v", chatID, err)
	}
}
