// internal/api/models.go
package api

import (
	"aiready-check/internal/scoring"
	"aiready-check/internal/wizard"
	"aiready-check/pkg/questions"
)

// AnswerRequest records one slider value for one step.
type AnswerRequest struct {
	Step  int `json:"step"`
	Value int `json:"value"`
}

// SessionResponse is the wizard state returned after every interaction.
type SessionResponse struct {
	ID                string             `json:"id"`
	CurrentStep       int                `json:"currentStep"`
	TotalSteps        int                `json:"totalSteps"`
	Question          questions.Question `json:"question"`
	Answered          []bool             `json:"answered"`
	Complete          bool               `json:"complete"`
	SubmissionEnabled bool               `json:"submissionEnabled"`
}

// ResultResponse is the scored view of a completed session.
type ResultResponse struct {
	ReadyScore        int                     `json:"readyScore"`
	Adoption          int                     `json:"adoption"`
	ReductionPct      float64                 `json:"reductionPct"`
	Phase             scoring.Phase           `json:"phase"`
	Hint              string                  `json:"hint"`
	Categories        []scoring.CategoryScore `json:"categories"`
	SubmissionEnabled bool                    `json:"submissionEnabled"`
}

// SubmitResponse confirms a persisted response row.
type SubmitResponse struct {
	Submitted bool   `json:"submitted"`
	Timestamp string `json:"timestamp"`
	SessionID string `json:"sessionId"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func sessionResponse(session wizard.Session, submissionEnabled bool) SessionResponse {
	question, _ := questions.ByStep(session.CurrentStep)
	answered := session.Answered()

	return SessionResponse{
		ID:                session.ID,
		CurrentStep:       session.CurrentStep,
		TotalSteps:        questions.Count,
		Question:          question,
		Answered:          answered[:],
		Complete:          session.IsComplete(),
		SubmissionEnabled: submissionEnabled,
	}
}
