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

type Server struct {
	Store          rounds.RoundStore
	Cups           cup.CupService
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	MetricsStore   metrics.MetricsStore
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
