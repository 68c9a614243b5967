// internal/wizard/session.go
package wizard

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"aiready-check/internal/common/errors"
	"aiready-check/pkg/questions"
)

// Session is the in-progress wizard state for one anonymous respondent. It is
// a value object: every transition returns a new Session, and only the wizard
// transitions mutate answers or the step. The ID is issued once at creation
// and never regenerated or derived from user data.
type Session struct {
	ID          string                `json:"id"`
	Answers     [questions.Count]*int `json:"answers"`
	CurrentStep int                   `json:"currentStep"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// NewSession starts a fresh session at step 0 with all answers unset. The
// identifier is a v4 UUID, 122 random bits.
func NewSession() Session {
	return Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// Advance moves to the next question. A no-op on the last step.
func (s Session) Advance() Session {
	if s.CurrentStep < questions.Count-1 {
		s.CurrentStep++
	}
	return s
}

// Retreat moves to the previous question. A no-op on the first step.
func (s Session) Retreat() Session {
	if s.CurrentStep > 0 {
		s.CurrentStep--
	}
	return s
}

// SetAnswer records the value for the given 0-based step, overwriting any
// prior value. It never changes the current step, and stays legal after
// completion: answers remain editable until a submission is dispatched.
func (s Session) SetAnswer(step, value int) (Session, error) {
	if step < 0 || step >= questions.Count {
		return s, errors.NewInvalidInputError(fmt.Sprintf("step %d is out of range", step))
	}
	if value < 0 || value > 100 {
		return s, errors.NewInvalidInputError(fmt.Sprintf("answer value %d is out of range", value))
	}

	v := value
	s.Answers[step] = &v
	return s, nil
}

// IsComplete reports whether all ten answers are set. Derived on every call;
// there is no separate completed flag to drift out of sync.
func (s Session) IsComplete() bool {
	for _, a := range s.Answers {
		if a == nil {
			return false
		}
	}
	return true
}

// AnswerValues returns the ordered answer values of a complete session.
func (s Session) AnswerValues() ([]int, error) {
	values := make([]int, 0, questions.Count)
	for i, a := range s.Answers {
		if a == nil {
			return nil, errors.NewPreconditionFailedError(
				fmt.Sprintf("question %d is unanswered", i+1))
		}
		values = append(values, *a)
	}
	return values, nil
}

// Answered returns which steps have a recorded value, in wizard order.
func (s Session) Answered() [questions.Count]bool {
	var out [questions.Count]bool
	for i, a := range s.Answers {
		out[i] = a != nil
	}
	return out
}
