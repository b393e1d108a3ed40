// Package metrics exposes the framework's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "brawl",
		Name:      "sessions_active",
		Help:      "Number of connected sessions.",
	})

	BattlesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "brawl",
		Name:      "battles_started_total",
		Help:      "Battles handed to the arena worker pool.",
	})

	BattlesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "brawl",
		Name:      "battles_finished_total",
		Help:      "Finished battles by outcome.",
	}, []string{"outcome"})

	BattleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "brawl",
		Name:      "battle_duration_seconds",
		Help:      "Wall time from battle start to result.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	})

	BoxesOpened = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "brawl",
		Name:      "boxes_opened_total",
		Help:      "Brawl boxes opened by box type.",
	}, []string{"type"})

	MessagesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "brawl",
		Name:      "messages_dropped_total",
		Help:      "Messages dropped because a queue was full.",
	}, []string{"queue"})
)
