// Package eventlog persists which provider event ids have already been
// processed, backing the optional webhook dedupe check.
package eventlog

import (
	"context"
	"fmt"
	"time"

	"caligold/internal/controller/apperror"
	"caligold/internal/domain/event"
	"caligold/pkg/postgres"

	"github.com/Masterminds/squirrel"
)

var _ event.ProcessedLog = (*PgEventLog)(nil)

type PgEventLog struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

func NewPgEventLog(pg *postgres.Postgres) *PgEventLog {
	return &PgEventLog{db: pg.Pool, builder: pg.Builder}
}

// MarkProcessed claims an event id. The primary key on event_id makes the
// claim atomic across instances: exactly one caller gets rows-affected 1,
// every redelivery gets apperror.ErrEventAlreadyProcessed.
func (r *PgEventLog) MarkProcessed(ctx context.Context, eventID string, kind string) error {
	query, args, err := r.builder.Insert("processed_events").
		Columns("event_id", "kind", "processed_at").
		Values(eventID, kind, time.Now().UTC()).
		Suffix("ON CONFLICT (event_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrEventAlreadyProcessed
	}
	return nil
}
