package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caligold/internal/controller/apperror"
)

func TestPgEventLog_MarkProcessed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	log := &PgEventLog{db: mock, builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
	ctx := context.Background()

	t.Run("should claim a new event id", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO processed_events \(event_id,kind,processed_at\) VALUES \(\$1,\$2,\$3\) ON CONFLICT \(event_id\) DO NOTHING`).
			WithArgs("evt_1", "payment_intent.succeeded", pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := log.MarkProcessed(ctx, "evt_1", "payment_intent.succeeded")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should report an already claimed event id", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO processed_events`).
			WithArgs("evt_1", "payment_intent.succeeded", pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		err := log.MarkProcessed(ctx, "evt_1", "payment_intent.succeeded")

		assert.ErrorIs(t, err, apperror.ErrEventAlreadyProcessed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should wrap database errors", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO processed_events`).
			WithArgs("evt_2", "checkout.session.completed", pgxmock.AnyArg()).
			WillReturnError(errors.New("connection refused"))

		err := log.MarkProcessed(ctx, "evt_2", "checkout.session.completed")

		assert.EqualError(t, err, "mark processed: connection refused")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
