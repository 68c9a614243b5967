// internal/submission/record.go
package submission

import (
	"math"
	"time"

	"aiready-check/internal/common/errors"
	"aiready-check/internal/scoring"
	"aiready-check/internal/wizard"
	"aiready-check/pkg/questions"
)

// Meta carries the optional request context persisted alongside the answers.
type Meta struct {
	UserAgent string
	Referrer  string
}

// Record is the single immutable row persisted per completed, user-confirmed
// session. Built exactly once per submission attempt sequence; retries reuse
// the same record.
type Record struct {
	Timestamp    string
	Answers      [questions.Count]int
	ReadyScore   int
	Adoption     int
	ReductionPct float64
	ClientID     string
	UserAgent    string
	Referrer     string
	Notes        string
}

// BuildRecord snapshots a completed session into a row. The timestamp is
// captured here, formatted ISO-8601 in the given fixed offset. Fails with
// PreconditionFailed when any answer is unset; nothing is sent anywhere on
// failure.
func BuildRecord(session wizard.Session, scored scoring.Scored, meta Meta, now time.Time, loc *time.Location) (Record, error) {
	values, err := session.AnswerValues()
	if err != nil {
		return Record{}, err
	}
	if err := validateMeta(meta); err != nil {
		return Record{}, err
	}

	rec := Record{
		Timestamp:    now.In(loc).Format(time.RFC3339),
		ReadyScore:   scored.Ready,
		Adoption:     scored.Adoption,
		ReductionPct: math.Round(scored.ReductionPct*10) / 10,
		ClientID:     session.ID,
		UserAgent:    meta.UserAgent,
		Referrer:     meta.Referrer,
		Notes:        "", // reserved, always empty at creation
	}
	copy(rec.Answers[:], values)

	return rec, nil
}

// Row returns the sink fields in the fixed column order:
// timestamp, q1..q10, ready_score, adoption_q4, reduction_pct, client_id,
// user_agent, referrer, notes. Optional strings default to empty, never null.
func (r Record) Row() []interface{} {
	row := make([]interface{}, 0, 18)
	row = append(row, r.Timestamp)
	for _, v := range r.Answers {
		row = append(row, v)
	}
	row = append(row, r.ReadyScore, r.Adoption, r.ReductionPct, r.ClientID, r.UserAgent, r.Referrer, r.Notes)
	return row
}

func validateMeta(meta Meta) error {
	if len(meta.UserAgent) > 1024 || len(meta.Referrer) > 1024 {
		return errors.NewInvalidInputError("user agent or referrer is unreasonably long")
	}
	return nil
}
