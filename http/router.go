package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	TradeHandler  *TradeHandler
	PlanetHandler *PlanetHandler
	ChatHandler   *ChatHandler
	RateLimiter   *RateLimiter
	Metrics       *Metrics
	CORS          CORSConfig
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(CORS(cfg.CORS))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.RateLimiter != nil {
			api.Use(RateLimitMiddleware(cfg.RateLimiter))
		}

		api.Route("/trade", func(tr chi.Router) {
			tr.Post("/calculate", cfg.TradeHandler.CalculateTrade)
			tr.Get("/quotes", cfg.TradeHandler.RecentQuotes)
		})

		api.Route("/planets", func(pr chi.Router) {
			pr.Get("/", cfg.PlanetHandler.ListPlanets)
			pr.Post("/query", cfg.PlanetHandler.Query)
			pr.Get("/{name}", cfg.PlanetHandler.GetPlanet)
		})

		api.Post("/chat", cfg.ChatHandler.Chat)
	})

	return r
}
