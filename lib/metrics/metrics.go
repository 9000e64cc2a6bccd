package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// StageForwards - отклики, переведенные на этап
	StageForwards = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recruitment",
		Name:      "stage_forwards_total",
		Help:      "Applications forwarded to a stage",
	}, []string{"stage"})

	// SystemRejections - отклики, отклоненные системой при согласовании
	SystemRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "recruitment",
		Name:      "system_rejections_total",
		Help:      "Applications rejected by the approval sweep",
	})

	// LettersSent - письма кандидатам
	LettersSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recruitment",
		Name:      "letters_sent_total",
		Help:      "Candidate letters dispatched",
	}, []string{"result"})

	// ForwardDuration - длительность транзакции перевода
	ForwardDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "recruitment",
		Name:      "forward_duration_seconds",
		Help:      "Forward transaction duration",
		Buckets:   prometheus.DefBuckets,
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
