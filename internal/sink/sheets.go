// internal/sink/sheets.go
package sink

import (
	"context"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"aiready-check/internal/common/config"
	"aiready-check/internal/common/logger"
)

// SheetsSink appends rows to one worksheet of a Google spreadsheet using a
// service account. It is the production backend of the readiness check.
type SheetsSink struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
	logger        logger.Logger
}

func NewSheetsSink(ctx context.Context, cfg config.SheetsConfig, log logger.Logger) (*SheetsSink, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("sheets sink requires credentials, spreadsheet id and worksheet")
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsSink{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		worksheet:     cfg.Worksheet,
		logger:        log.WithFields(map[string]interface{}{"sink": "sheets"}),
	}, nil
}

func (s *SheetsSink) Name() string {
	return "sheets"
}

func (s *SheetsSink) AppendRow(ctx context.Context, values []interface{}) error {
	vr := &sheets.ValueRange{
		Values: [][]interface{}{values},
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, fmt.Sprintf("%s!A1", s.worksheet), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		s.logger.Warn("sheets append failed", map[string]interface{}{
			"spreadsheetId": s.spreadsheetID,
			"worksheet":     s.worksheet,
			"error":         err.Error(),
		})
		return classifySheetsError(err)
	}

	return nil
}

// classifySheetsError wraps retryable API failures as transient. Rate limits
// and server-side errors retry; auth and request errors do not.
func classifySheetsError(err error) error {
	if apiErr, ok := err.(*googleapi.Error); ok {
		if apiErr.Code == 429 || apiErr.Code >= 500 {
			return &TransientError{Err: err}
		}
		return err
	}

	// Unrecognized failures (dropped connections, DNS) get the retry budget.
	return &TransientError{Err: err}
}
