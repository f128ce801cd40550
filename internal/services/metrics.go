package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Domain counters, exported on /metrics next to the HTTP metrics
var (
	GlucoseReadings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "glucodb",
		Name:      "glucose_readings_total",
		Help:      "Glucose readings recorded, by status.",
	}, []string{"status"})

	PredictionsMade = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "glucodb",
		Name:      "predictions_total",
		Help:      "Diabetes risk assessments stored, by risk level.",
	}, []string{"risk_level"})
)
