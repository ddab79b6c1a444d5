package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/voice_assist/internal/ai"
	"github.com/Vovarama1992/voice_assist/internal/config"
	"github.com/Vovarama1992/voice_assist/internal/credential"
	"github.com/Vovarama1992/voice_assist/internal/delivery"
	"github.com/Vovarama1992/voice_assist/internal/session"
	"github.com/Vovarama1992/voice_assist/internal/speech"
	"github.com/Vovarama1992/voice_assist/internal/telegram"
	"github.com/Vovarama1992/voice_assist/web"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	_ = godotenv.Load()
	cfg := config.Load()

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	sugar := baseLogger.Sugar()
	zl := logger.NewZapLogger(sugar)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// =========================================================================
	// ADAPTERS
	// =========================================================================

	resolver := credential.NewResolverFromFile(cfg.CredentialFile)
	if !resolver.HasFallback() {
		sugar.Infof("no configured OpenAI key, sessions start awaiting credential")
	}

	openaiClient := ai.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.Session.Language, sugar)

	speechService, err := speech.NewServiceFromConfig(cfg.Speech)
	if err != nil {
		log.Fatalf("failed to init speech: %v", err)
	}

	// =========================================================================
	// SESSIONS
	// =========================================================================

	sessions := session.NewRegistry(cfg.Session, session.Deps{
		Resolver:    resolver,
		Transcriber: openaiClient,
		Completer:   openaiClient,
		Synthesizer: speechService,
		Log:         sugar,
	})

	// =========================================================================
	// TELEGRAM (optional)
	// =========================================================================

	if cfg.TelegramToken != "" {
		botApp, err := telegram.NewBotApp(cfg.TelegramToken, sessions, sugar)
		if err != nil {
			zl.Log(logger.LogEntry{
				Level:   "error",
				Message: "telegram bot init failed",
				Service: "voice_assist",
				Error:   err,
			})
		} else {
			go botApp.Run(ctx)
		}
	}

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(delivery.CORS())

	handler := delivery.NewHandler(sessions, zl)
	delivery.RegisterRoutes(r, handler, web.PageHandler(), cfg.RateLimit)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	// =========================================================================
	// BACKGROUND JOBS
	// =========================================================================

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := sessions.Sweep(cfg.SessionTTL); n > 0 {
					log.Printf("[cleanup-sessions] removed %d idle sessions", n)
				}
			}
		}
	}()

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "voice_assist",
	})

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
