package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wolfman30/doctor-finder/internal/assistant"
	"github.com/wolfman30/doctor-finder/internal/doctors"
	httpmiddleware "github.com/wolfman30/doctor-finder/internal/http/middleware"
	"github.com/wolfman30/doctor-finder/internal/ingest"
	"github.com/wolfman30/doctor-finder/internal/webchat"
	"github.com/wolfman30/doctor-finder/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *assistant.Handler
	DoctorsHandler     *doctors.Handler
	ImportHandler      *ingest.Handler
	WebChat            *webchat.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.ChatHandler != nil {
		r.Route("/chat", func(chat chi.Router) {
			chat.With(middleware.AllowContentType("application/json")).Post("/", cfg.ChatHandler.Chat)
			if cfg.WebChat != nil {
				chat.Get("/ws", cfg.WebChat.HandleWebSocket)
			}
			chat.Get("/{sessionID}/history", cfg.ChatHandler.History)
			chat.Delete("/{sessionID}", cfg.ChatHandler.Reset)
		})
	}

	if cfg.DoctorsHandler != nil {
		r.Route("/doctors", func(d chi.Router) {
			d.Use(middleware.Compress(5))
			d.Get("/", cfg.DoctorsHandler.Search)
			d.Get("/specialties", cfg.DoctorsHandler.Specialties)
			d.Get("/stats", cfg.DoctorsHandler.Stats)
		})
	}

	if cfg.ImportHandler != nil {
		r.Post("/admin/import", cfg.ImportHandler.Import)
	}

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
