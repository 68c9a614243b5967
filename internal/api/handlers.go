// internal/api/handlers.go
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"

	"aiready-check/internal/common/errors"
	"aiready-check/internal/common/logger"
	"aiready-check/internal/common/metrics"
	"aiready-check/internal/scoring"
	"aiready-check/internal/submission"
	"aiready-check/internal/wizard"
)

// answerSchema validates the inbound answer payload before it touches the
// session, mirroring the slider's 0-100 contract.
var answerSchema = gojsonschema.NewGoLoader(map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"step": map[string]interface{}{
			"type":    "integer",
			"minimum": 0,
			"maximum": 9,
		},
		"value": map[string]interface{}{
			"type":    "integer",
			"minimum": 0,
			"maximum": 100,
		},
	},
	"required":             []interface{}{"step", "value"},
	"additionalProperties": false,
})

// Handler serves the wizard over HTTP. Each request mutates the session to
// completion before the response is written; there is no concurrent mutation
// of a given session.
type Handler struct {
	store    wizard.Store
	pipeline *submission.Pipeline
	logger   logger.Logger
}

func NewHandler(store wizard.Store, pipeline *submission.Pipeline, log logger.Logger) *Handler {
	return &Handler{
		store:    store,
		pipeline: pipeline,
		logger:   log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// CreateSession starts a new wizard session at step 0.
func (h *Handler) CreateSession(c *gin.Context) {
	session := wizard.NewSession()

	if err := h.store.Put(c.Request.Context(), session); err != nil {
		h.respondError(c, err)
		return
	}

	metrics.SessionsStarted.Inc()
	h.logger.Info("session created", map[string]interface{}{"sessionId": session.ID})

	c.JSON(http.StatusCreated, sessionResponse(session, h.pipeline.Enabled()))
}

// GetSession returns the current wizard state.
func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse(session, h.pipeline.Enabled()))
}

// SetAnswer records a slider value for one step. Idempotent; does not move
// the wizard.
func (h *Handler) SetAnswer(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Message: "unreadable body"})
		return
	}

	result, err := gojsonschema.Validate(answerSchema, gojsonschema.NewBytesLoader(body))
	if err != nil || !result.Valid() {
		message := "answer payload must be {step: 0..9, value: 0..100}"
		if err == nil && len(result.Errors()) > 0 {
			message = result.Errors()[0].String()
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: string(errors.ErrCodeInvalidInput), Message: message})
		return
	}

	var req AnswerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Message: "malformed JSON"})
		return
	}

	session, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	session, err = session.SetAnswer(req.Step, req.Value)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.store.Put(c.Request.Context(), session); err != nil {
		h.respondError(c, err)
		return
	}

	metrics.AnswersRecorded.Inc()
	c.JSON(http.StatusOK, sessionResponse(session, h.pipeline.Enabled()))
}

// Advance moves the wizard to the next question.
func (h *Handler) Advance(c *gin.Context) {
	h.transition(c, wizard.Session.Advance)
}

// Retreat moves the wizard to the previous question.
func (h *Handler) Retreat(c *gin.Context) {
	h.transition(c, wizard.Session.Retreat)
}

func (h *Handler) transition(c *gin.Context, step func(wizard.Session) wizard.Session) {
	session, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	session = step(session)

	if err := h.store.Put(c.Request.Context(), session); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse(session, h.pipeline.Enabled()))
}

// GetResult computes the scored view of a completed session.
func (h *Handler) GetResult(c *gin.Context) {
	session, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	values, err := session.AnswerValues()
	if err != nil {
		h.respondError(c, err)
		return
	}

	scored, err := scoring.Score(values)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ResultResponse{
		ReadyScore:        scored.Ready,
		Adoption:          scored.Adoption,
		ReductionPct:      scored.ReductionPct,
		Phase:             scored.Phase,
		Hint:              scored.Hint,
		Categories:        scoring.CategoryScores(session.Answers[:]),
		SubmissionEnabled: h.pipeline.Enabled(),
	})
}

// Submit persists the completed session as one row. The interaction blocks
// for the full attempt sequence; there is no cancelling an in-flight retry.
func (h *Handler) Submit(c *gin.Context) {
	session, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !session.IsComplete() {
		h.respondError(c, errors.NewPreconditionFailedError("complete all questions before submitting"))
		return
	}

	values, err := session.AnswerValues()
	if err != nil {
		h.respondError(c, err)
		return
	}

	scored, err := scoring.Score(values)
	if err != nil {
		h.respondError(c, err)
		return
	}

	meta := submission.Meta{
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	}

	record, err := h.pipeline.Submit(c.Request.Context(), session, scored, meta)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SubmitResponse{
		Submitted: true,
		Timestamp: record.Timestamp,
		SessionID: session.ID,
	})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps the error taxonomy onto HTTP statuses. Everything below
// the pipeline has already been converted to a StandardError; anything else
// is a plain 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	message := "internal error"

	switch code {
	case errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
		message = "answer out of range"
	case errors.ErrCodePreconditionFailed:
		status = http.StatusConflict
		message = "complete all questions before requesting results or submitting"
	case errors.ErrCodeSessionNotFound:
		status = http.StatusNotFound
		message = "session not found"
	case errors.ErrCodeSinkWriteFailed:
		status = http.StatusBadGateway
		message = "could not save the response, please retry later"
	case errors.ErrCodeSinkMisconfigured:
		status = http.StatusServiceUnavailable
		message = "submission is disabled in this environment"
	case errors.ErrCodeSessionStoreFailed:
		status = http.StatusInternalServerError
		message = "session store unavailable"
	}

	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).Error("request failed", map[string]interface{}{
			"path":   c.FullPath(),
			"status": status,
		})
	}

	c.JSON(status, ErrorResponse{Code: string(code), Message: message})
}
