// internal/submission/pipeline.go
package submission

import (
	"context"
	"time"

	"aiready-check/internal/common/config"
	"aiready-check/internal/common/errors"
	"aiready-check/internal/common/logger"
	"aiready-check/internal/common/metrics"
	"aiready-check/internal/common/observability"
	"aiready-check/internal/scoring"
	"aiready-check/internal/sink"
	"aiready-check/internal/wizard"
)

// Pipeline writes one record per completed session to the row sink, with a
// bounded, strictly sequential retry schedule. It never mutates the session
// or the scored result it is handed.
type Pipeline struct {
	sink        sink.RowSink
	logger      logger.Logger
	obs         *observability.Observability
	maxAttempts int
	backoffBase time.Duration
	location    *time.Location

	// Swapped in tests to pin the schedule and the timestamp.
	sleep func(time.Duration)
	now   func() time.Time
}

// NewPipeline builds a pipeline around the given sink. A nil sink is legal
// and means submission is disabled: Submit then fails fast with
// SINK_MISCONFIGURED and the scoring experience stays available.
func NewPipeline(rowSink sink.RowSink, cfg config.SubmissionConfig, obs *observability.Observability, log logger.Logger) *Pipeline {
	return &Pipeline{
		sink:        rowSink,
		logger:      log.WithFields(map[string]interface{}{"component": "submission"}),
		obs:         obs,
		maxAttempts: cfg.MaxAttempts,
		backoffBase: cfg.BackoffBase(),
		location:    cfg.Location(),
		sleep:       time.Sleep,
		now:         time.Now,
	}
}

// Enabled reports whether a sink is configured.
func (p *Pipeline) Enabled() bool {
	return p.sink != nil
}

// Submit validates the session, builds the record and appends it to the sink.
//
// Retry schedule: up to maxAttempts total attempts, with a delay of
// backoffBase*(k-1) before attempt k. With the defaults (3 attempts, 1s base)
// that is 0s, 1s, 2s — a literal linear schedule. On exhaustion the last
// cause is wrapped in SINK_WRITE_FAILED; the record may or may not have
// reached the store, so callers must not assume a partial write and the
// session stays intact for a user-driven retry.
//
// The pipeline performs no deduplication: two Submit calls for the same
// session append two rows.
func (p *Pipeline) Submit(ctx context.Context, session wizard.Session, scored scoring.Scored, meta Meta) (Record, error) {
	if p.sink == nil {
		return Record{}, errors.NewSinkMisconfiguredError("no row sink configured")
	}

	// Checked here as well as by the handler: the pipeline must be safe to
	// call in isolation, and nothing may reach the sink on validation failure.
	record, err := BuildRecord(session, scored, meta, p.now(), p.location)
	if err != nil {
		return Record{}, err
	}

	log := p.logger.WithFields(map[string]interface{}{
		"sessionId": session.ID,
		"sink":      p.sink.Name(),
	})

	row := record.Row()
	start := p.now()

	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := p.backoffBase * time.Duration(attempt-1)
			log.Warn("retrying append", map[string]interface{}{
				"attempt": attempt,
				"delay":   delay.String(),
			})
			p.sleep(delay)
		}

		metrics.SubmissionAttempts.WithLabelValues(p.sink.Name()).Inc()

		lastErr = p.sink.AppendRow(ctx, row)
		if lastErr == nil {
			metrics.SubmissionsCompleted.WithLabelValues(p.sink.Name()).Inc()
			metrics.SubmissionDuration.WithLabelValues(p.sink.Name()).Observe(p.now().Sub(start).Seconds())
			if p.obs != nil {
				p.obs.RecordSubmission(ctx, "success")
				p.obs.RecordSubmissionDuration(ctx, p.now().Sub(start), "success")
			}
			log.Info("response appended", map[string]interface{}{
				"attempt":    attempt,
				"readyScore": record.ReadyScore,
			})
			return record, nil
		}

		log.WithError(lastErr).Warn("append attempt failed", map[string]interface{}{
			"attempt":     attempt,
			"maxAttempts": p.maxAttempts,
		})

		if !sink.IsTransient(lastErr) {
			break
		}
	}

	metrics.SubmissionsFailed.WithLabelValues(p.sink.Name(), string(errors.ErrCodeSinkWriteFailed)).Inc()
	if p.obs != nil {
		p.obs.RecordSubmission(ctx, "failed")
		p.obs.RecordSubmissionDuration(ctx, p.now().Sub(start), "failed")
	}

	return Record{}, errors.NewSinkWriteFailedError(lastErr)
}
