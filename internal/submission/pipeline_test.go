// internal/submission/pipeline_test.go
package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiready-check/internal/common/config"
	commonerrors "aiready-check/internal/common/errors"
	"aiready-check/internal/common/logger"
	"aiready-check/internal/sink"
)

// ==========================
// Fake sink
// ==========================

// fakeSink fails the first failuresBeforeSuccess attempts with a transient
// error, then succeeds, recording every row it accepted.
type fakeSink struct {
	failuresBeforeSuccess int
	permanentErr          error
	attempts              int
	rows                  [][]interface{}
}

func (f *fakeSink) AppendRow(_ context.Context, values []interface{}) error {
	f.attempts++
	if f.permanentErr != nil {
		return f.permanentErr
	}
	if f.attempts <= f.failuresBeforeSuccess {
		return &sink.TransientError{Err: errors.New("store unreachable")}
	}
	row := make([]interface{}, len(values))
	copy(row, values)
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeSink) Name() string { return "fake" }

// ==========================
// Test Helper Functions
// ==========================

func testSubmissionConfig() config.SubmissionConfig {
	return config.SubmissionConfig{
		MaxAttempts:   3,
		BackoffBaseMS: 1000,
		TimezoneName:  "JST",
		UTCOffsetMin:  9 * 60,
	}
}

// newTestPipeline wires a pipeline with a recording sleeper and a fixed clock.
func newTestPipeline(t *testing.T, rowSink sink.RowSink) (*Pipeline, *[]time.Duration) {
	t.Helper()
	p := NewPipeline(rowSink, testSubmissionConfig(), nil, logger.NewTestLogger(t))

	delays := &[]time.Duration{}
	p.sleep = func(d time.Duration) { *delays = append(*delays, d) }
	p.now = func() time.Time { return time.Date(2026, 9, 1, 3, 0, 0, 0, time.UTC) }
	return p, delays
}

// ==========================
// Tests
// ==========================

func TestSubmit_SucceedsFirstAttempt(t *testing.T) {
	fake := &fakeSink{}
	pipeline, delays := newTestPipeline(t, fake)
	session := answeredSession(t, testAnswers)
	scored := scoredFor(t, testAnswers)

	record, err := pipeline.Submit(context.Background(), session, scored, Meta{UserAgent: "ua"})
	require.NoError(t, err)

	assert.Equal(t, 1, fake.attempts)
	assert.Empty(t, *delays, "no delay before the first attempt")
	assert.Equal(t, session.ID, record.ClientID)
	require.Len(t, fake.rows, 1)
	assert.Len(t, fake.rows[0], 18)
}

func TestSubmit_RecoversAfterTwoTransientFailures(t *testing.T) {
	fake := &fakeSink{failuresBeforeSuccess: 2}
	pipeline, delays := newTestPipeline(t, fake)
	session := answeredSession(t, testAnswers)
	scored := scoredFor(t, testAnswers)

	record, err := pipeline.Submit(context.Background(), session, scored, Meta{})
	require.NoError(t, err)

	assert.Equal(t, 3, fake.attempts, "succeeds on the third attempt")
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *delays,
		"linear schedule: base*1 before attempt 2, base*2 before attempt 3")

	require.Len(t, fake.rows, 1)
	row := fake.rows[0]
	assert.Equal(t, record.Timestamp, row[0])
	assert.Equal(t, session.ID, row[14])
}

func TestSubmit_ExhaustsRetryBudget(t *testing.T) {
	fake := &fakeSink{failuresBeforeSuccess: 99}
	pipeline, delays := newTestPipeline(t, fake)
	session := answeredSession(t, testAnswers)
	scored := scoredFor(t, testAnswers)

	_, err := pipeline.Submit(context.Background(), session, scored, Meta{})
	require.Error(t, err)

	assert.Equal(t, commonerrors.ErrCodeSinkWriteFailed, commonerrors.GetCode(err))
	assert.True(t, commonerrors.IsRetryable(err), "the user may retry later")
	assert.Equal(t, 3, fake.attempts, "exactly three total attempts")
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *delays)
	assert.Empty(t, fake.rows, "nothing was recorded as written")
}

func TestSubmit_PermanentErrorStopsEarly(t *testing.T) {
	fake := &fakeSink{permanentErr: errors.New("schema mismatch")}
	pipeline, delays := newTestPipeline(t, fake)
	session := answeredSession(t, testAnswers)
	scored := scoredFor(t, testAnswers)

	_, err := pipeline.Submit(context.Background(), session, scored, Meta{})
	require.Error(t, err)

	assert.Equal(t, commonerrors.ErrCodeSinkWriteFailed, commonerrors.GetCode(err))
	assert.Equal(t, 1, fake.attempts, "non-transient failures are not retried")
	assert.Empty(t, *delays)
}

func TestSubmit_IncompleteSessionNeverReachesSink(t *testing.T) {
	fake := &fakeSink{}
	pipeline, _ := newTestPipeline(t, fake)

	incomplete := answeredSession(t, testAnswers[:9])

	_, err := pipeline.Submit(context.Background(), incomplete, scoredFor(t, testAnswers), Meta{})
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodePreconditionFailed, commonerrors.GetCode(err))
	assert.Zero(t, fake.attempts, "no side effects on validation failure")
}

func TestSubmit_NilSinkIsMisconfigured(t *testing.T) {
	pipeline, _ := newTestPipeline(t, nil)
	session := answeredSession(t, testAnswers)

	assert.False(t, pipeline.Enabled())

	_, err := pipeline.Submit(context.Background(), session, scoredFor(t, testAnswers), Meta{})
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeSinkMisconfigured, commonerrors.GetCode(err))
	assert.False(t, commonerrors.IsRetryable(err), "disabled submission is not a retry case")
}

func TestSubmit_TwiceAppendsTwoRows(t *testing.T) {
	fake := &fakeSink{}
	pipeline, _ := newTestPipeline(t, fake)
	session := answeredSession(t, testAnswers)
	scored := scoredFor(t, testAnswers)

	_, err := pipeline.Submit(context.Background(), session, scored, Meta{})
	require.NoError(t, err)
	_, err = pipeline.Submit(context.Background(), session, scored, Meta{})
	require.NoError(t, err)

	// No dedup by design; the session token is the downstream dedup key.
	require.Len(t, fake.rows, 2)
	assert.Equal(t, fake.rows[0][14], fake.rows[1][14])
}
