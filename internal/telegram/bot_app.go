package telegram

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Vovarama1992/voice_assist/internal/session"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// botAPI — то, что нам нужно от tgbotapi.BotAPI
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// BotApp — вторая поверхность ассистента: одна сессия на чат
type BotApp struct {
	api      botAPI
	username string
	sessions *session.Registry
	log      *zap.SugaredLogger
	httpCli  *http.Client
	shards   []chan *tgbotapi.Message
}

func NewBotApp(token string, sessions *session.Registry, log *zap.SugaredLogger) (*BotApp, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("[bot_app] ready: @%s", bot.Self.UserName)

	return newBotApp(bot, bot.Self.UserName, sessions, log), nil
}

func newBotApp(api botAPI, username string, sessions *session.Registry, log *zap.SugaredLogger) *BotApp {
	return &BotApp{
		api:      api,
		username: username,
		sessions: sessions,
		log:      log,
		httpCli:  &http.Client{Timeout: 60 * time.Second},
	}
}

func sessionKey(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}

func (app *BotApp) sessionFor(chatID int64) *session.Session {
	return app.sessions.GetOrCreate(sessionKey(chatID))
}
