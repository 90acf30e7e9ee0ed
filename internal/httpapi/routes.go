package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/DoyleJ11/wordbomb-backend/internal/hub"
	"github.com/DoyleJ11/wordbomb-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, dict Reloader, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// Public routes
	r.Post("/rooms", CreateRoom(h, logger))
	r.Get("/healthz", Healthz(h))
	r.Get("/ws", ws.Handler(h, logger))
	r.Get("/dictionary/stats", DictionaryStats(dict))

	r.Post("/admin/dictionary/reload", ReloadDictionary(dict))
	return r
}
