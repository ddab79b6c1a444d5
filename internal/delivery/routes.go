package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// CORS — страница отдаётся с того же origin, cookie чужим origin не разрешаем
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
}

func RegisterRoutes(
	r chi.Router,
	h *Handler,
	page http.Handler,
	ratePerMinute int,
) {
	// --- страница ---
	r.With(httputil.RecoverMiddleware).Get("/", page.ServeHTTP)

	// --- api ---
	r.Route("/api", func(api chi.Router) {
		api.Use(
			httputil.RecoverMiddleware,
			httprate.LimitByIP(ratePerMinute, time.Minute),
			SessionMiddleware(h.sessions),
		)

		// --- сессия ---
		api.Get("/session", h.GetSession)
		api.Delete("/session", h.EndSession)
		api.Post("/session/key", h.SetKey)
		api.Post("/session/model", h.SetModel)
		api.Post("/session/reset", h.Reset)

		// --- диалог ---
		api.Post("/chat/text", h.SendText)
		api.Post("/chat/voice", h.SendVoice)
	})
}
