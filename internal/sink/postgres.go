// internal/sink/postgres.go
package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"aiready-check/internal/common/logger"
)

// Expected number of fields per row: timestamp, q1..q10, ready_score,
// adoption_q4, reduction_pct, client_id, user_agent, referrer, notes.
const rowWidth = 18

var rowColumns = []string{
	"ts", "q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "q9", "q10",
	"ready_score", "adoption_q4", "reduction_pct", "client_id",
	"user_agent", "referrer", "notes",
}

// PostgresSink appends rows to a plain insert-only table. An alternative to
// the spreadsheet for self-hosted deployments.
type PostgresSink struct {
	db     *sql.DB
	table  string
	insert string
	logger logger.Logger
}

func NewPostgresSink(db *sql.DB, table string, log logger.Logger) *PostgresSink {
	placeholders := make([]string, rowWidth)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	return &PostgresSink{
		db:    db,
		table: table,
		insert: fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s)",
			table,
			strings.Join(rowColumns, ", "),
			strings.Join(placeholders, ", "),
		),
		logger: log.WithFields(map[string]interface{}{"sink": "postgres", "table": table}),
	}
}

func (p *PostgresSink) Name() string {
	return "postgres"
}

func (p *PostgresSink) AppendRow(ctx context.Context, values []interface{}) error {
	if len(values) != rowWidth {
		return fmt.Errorf("expected %d row fields, got %d", rowWidth, len(values))
	}

	if _, err := p.db.ExecContext(ctx, p.insert, values...); err != nil {
		p.logger.Warn("postgres insert failed", map[string]interface{}{
			"error": err.Error(),
		})
		return &TransientError{Err: err}
	}

	return nil
}
