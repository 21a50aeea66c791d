package http

import (
	"net/http"

	"github.com/pinseekr/pinseekr-server/internal/config"
	"github.com/pinseekr/pinseekr-server/internal/cup"
	"github.com/pinseekr/pinseekr-server/internal/metrics"
	"github.com/pinseekr/pinseekr-server/internal/notifier"
	"github.com/pinseekr/pinseekr-server/internal/processor"
	"github.com/pinseekr/pinseekr-server/internal/pubsub"
	"github.com/pinseekr/pinseekr-server/internal/rounds"
)

func NewServer(store rounds.RoundStore, cups cup.CupService, metricsSvc metrics.Metrics, metricsHandler http.Handler, metricsStore metrics.MetricsStore, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Cups:           cups,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		MetricsStore:   metricsStore,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/metrics/lifetime", Chain(s.LifetimeMetricsHandler(), paramsMiddleware))
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/rounds", Chain(s.RoundsHandler(), paramsMiddleware))
	s.Router.Handle("/rounds/score", Chain(s.ScoreRoundHandler(), paramsMiddleware))
	s.Router.Handle("/settle", Chain(s.SettleHandler(), paramsMiddleware))
	s.Router.Handle("/expenses/settle", Chain(s.SettleExpensesHandler(), paramsMiddleware))
	s.Router.Handle("/cups", Chain(s.ListCupsHandler(), paramsMiddleware))
	s.Router.Handle("/cup/create", Chain(s.CreateCupHandler(), paramsMiddleware))
	s.Router.Handle("/cup/play", Chain(s.PlayCupRoundHandler(), paramsMiddleware))
	s.Router.Handle("/cup/results", Chain(s.CupResultsHandler(), paramsMiddleware))
	s.Router.Handle("/process", Chain(s.ProcessRoundsHandler(), paramsMiddleware))
	s.Router.Handle("/events/round-scored", Chain(s.RoundScoredEventHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/round-result", Chain(s.RoundResultCommandHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/cup-standings", Chain(s.CupStandingsCommandHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
