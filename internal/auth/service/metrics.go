package service

import (
	"github.com/hackerclone/hackerclone/internal/observability/metrics"
)

func incrementRegistrations(result string) {
	metrics.RegistrationsTotal.WithLabelValues(result).Inc()
}

func incrementLogins(result string) {
	metrics.LoginsTotal.WithLabelValues(result).Inc()
}

func incrementSessionsIssued() {
	metrics.SessionsIssued.Inc()
}

func incrementSessionValidations() {
	metrics.SessionValidationsTotal.Inc()
}

func incrementSessionValidationsFailed() {
	metrics.SessionValidationsFailed.Inc()
}
