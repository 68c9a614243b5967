// internal/sink/sheets_test.go
package sink

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"aiready-check/internal/common/config"
	"aiready-check/internal/common/logger"
)

func TestNewSheetsSink_RequiresFullConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SheetsConfig
	}{
		{name: "empty", cfg: config.SheetsConfig{}},
		{name: "missing credentials", cfg: config.SheetsConfig{SpreadsheetID: "sheet", Worksheet: "responses"}},
		{name: "missing spreadsheet", cfg: config.SheetsConfig{CredentialsJSON: "{}", Worksheet: "responses"}},
		{name: "missing worksheet", cfg: config.SheetsConfig{CredentialsJSON: "{}", SpreadsheetID: "sheet"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSheetsSink(context.Background(), tt.cfg, logger.NewNoOpLogger())
			require.Error(t, err)
		})
	}
}

func TestClassifySheetsError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{name: "rate limited", err: &googleapi.Error{Code: 429}, transient: true},
		{name: "server error", err: &googleapi.Error{Code: 500}, transient: true},
		{name: "bad gateway", err: &googleapi.Error{Code: 502}, transient: true},
		{name: "bad request", err: &googleapi.Error{Code: 400}, transient: false},
		{name: "forbidden", err: &googleapi.Error{Code: 403}, transient: false},
		{name: "not found", err: &googleapi.Error{Code: 404}, transient: false},
		{name: "opaque network failure", err: errors.New("connection reset"), transient: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := classifySheetsError(tt.err)
			assert.Equal(t, tt.transient, IsTransient(classified))
		})
	}
}

func TestIsTransient_UnwrapsNestedErrors(t *testing.T) {
	inner := &TransientError{Err: errors.New("timeout")}
	wrapped := errors.Join(errors.New("context"), inner)
	assert.True(t, IsTransient(wrapped))
	assert.False(t, IsTransient(errors.New("plain")))
}
