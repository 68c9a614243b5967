// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_attempts_total",
			Help: "Total number of append attempts against the row sink",
		},
		[]string{"sink"},
	)

	SubmissionsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_completed_total",
			Help: "Total number of responses successfully appended",
		},
		[]string{"sink"},
	)

	SubmissionsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submissions_failed_total",
			Help: "Total number of submissions that exhausted the retry budget",
		},
		[]string{"sink", "error_code"},
	)

	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "submission_duration_seconds",
			Help: "Duration of a full submission attempt sequence in seconds",
		},
		[]string{"sink"},
	)

	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wizard_sessions_started_total",
			Help: "Total number of wizard sessions created",
		},
	)

	AnswersRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wizard_answers_recorded_total",
			Help: "Total number of answer values recorded",
		},
	)
)
