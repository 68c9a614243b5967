// internal/wizard/session_test.go
package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "aiready-check/internal/common/errors"
)

// ==========================
// Test Helper Functions
// ==========================

func completeSession(t *testing.T) Session {
	t.Helper()
	session := NewSession()
	for step := 0; step < 10; step++ {
		var err error
		session, err = session.SetAnswer(step, 50+step)
		require.NoError(t, err)
	}
	return session
}

// ==========================
// Identity
// ==========================

func TestNewSession_InitialState(t *testing.T) {
	session := NewSession()

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, 0, session.CurrentStep)
	assert.False(t, session.IsComplete())
	for i, a := range session.Answers {
		assert.Nil(t, a, "answer %d must start unset", i+1)
	}
}

func TestNewSession_IDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewSession().ID
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestSession_IDStableAcrossTransitions(t *testing.T) {
	session := NewSession()
	id := session.ID

	session = session.Advance()
	session, err := session.SetAnswer(0, 40)
	require.NoError(t, err)
	session = session.Retreat()

	assert.Equal(t, id, session.ID)
}

// ==========================
// Step transitions
// ==========================

func TestAdvance_StopsAtLastStep(t *testing.T) {
	session := NewSession()
	for i := 0; i < 9; i++ {
		session = session.Advance()
		assert.Equal(t, i+1, session.CurrentStep)
	}

	// Already on the last question: no-op, never skips past 9.
	session = session.Advance()
	assert.Equal(t, 9, session.CurrentStep)
}

func TestRetreat_StopsAtFirstStep(t *testing.T) {
	session := NewSession()

	session = session.Retreat()
	assert.Equal(t, 0, session.CurrentStep)

	session = session.Advance().Advance().Retreat()
	assert.Equal(t, 1, session.CurrentStep)
}

func TestAdvance_DoesNotRequireAnswer(t *testing.T) {
	session := NewSession().Advance()
	assert.Equal(t, 1, session.CurrentStep)
	assert.Nil(t, session.Answers[0])
}

// ==========================
// SetAnswer
// ==========================

func TestSetAnswer_RetainedAcrossNavigation(t *testing.T) {
	session, err := NewSession().SetAnswer(0, 77)
	require.NoError(t, err)

	session = session.Advance().Advance().Retreat().Retreat()

	require.NotNil(t, session.Answers[0])
	assert.Equal(t, 77, *session.Answers[0])
}

func TestSetAnswer_Idempotent(t *testing.T) {
	session, err := NewSession().SetAnswer(3, 60)
	require.NoError(t, err)
	again, err := session.SetAnswer(3, 60)
	require.NoError(t, err)

	assert.Equal(t, session.CurrentStep, again.CurrentStep)
	assert.Equal(t, *session.Answers[3], *again.Answers[3])
	assert.Equal(t, session.Answered(), again.Answered())
}

func TestSetAnswer_OverwritesPriorValue(t *testing.T) {
	session, err := NewSession().SetAnswer(5, 10)
	require.NoError(t, err)
	session, err = session.SetAnswer(5, 90)
	require.NoError(t, err)

	assert.Equal(t, 90, *session.Answers[5])
}

func TestSetAnswer_DoesNotMoveStep(t *testing.T) {
	session := NewSession().Advance().Advance()
	session, err := session.SetAnswer(7, 33)
	require.NoError(t, err)

	assert.Equal(t, 2, session.CurrentStep)
}

func TestSetAnswer_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		step  int
		value int
	}{
		{name: "negative step", step: -1, value: 50},
		{name: "step too large", step: 10, value: 50},
		{name: "value negative", step: 0, value: -1},
		{name: "value too large", step: 0, value: 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession().SetAnswer(tt.step, tt.value)
			require.Error(t, err)
			assert.Equal(t, commonerrors.ErrCodeInvalidInput, commonerrors.GetCode(err))
		})
	}
}

func TestSetAnswer_ValueSemantics(t *testing.T) {
	original := NewSession()
	mutated, err := original.SetAnswer(0, 42)
	require.NoError(t, err)

	assert.Nil(t, original.Answers[0], "transitions must not mutate the receiver")
	assert.NotNil(t, mutated.Answers[0])
}

// ==========================
// Completion
// ==========================

func TestIsComplete_RequiresAllTen(t *testing.T) {
	session := NewSession()

	for step := 0; step < 9; step++ {
		var err error
		session, err = session.SetAnswer(step, 50)
		require.NoError(t, err)
	}
	assert.False(t, session.IsComplete(), "nine of ten answers is incomplete")

	session, err := session.SetAnswer(9, 50)
	require.NoError(t, err)
	assert.True(t, session.IsComplete())
}

func TestSession_EditableAfterCompletion(t *testing.T) {
	session := completeSession(t)
	require.True(t, session.IsComplete())

	session, err := session.SetAnswer(2, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, *session.Answers[2])
	assert.True(t, session.IsComplete())

	session = session.Advance()
	assert.True(t, session.IsComplete(), "completion is independent of the step")
}

func TestAnswerValues(t *testing.T) {
	session := completeSession(t)

	values, err := session.AnswerValues()
	require.NoError(t, err)
	assert.Equal(t, []int{50, 51, 52, 53, 54, 55, 56, 57, 58, 59}, values)
}

func TestAnswerValues_IncompleteFailsPrecondition(t *testing.T) {
	session, err := NewSession().SetAnswer(0, 50)
	require.NoError(t, err)

	_, err = session.AnswerValues()
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodePreconditionFailed, commonerrors.GetCode(err))
}
