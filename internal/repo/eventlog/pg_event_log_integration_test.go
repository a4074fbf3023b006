//go:build integration
// +build integration

package eventlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caligold/internal/controller/apperror"
	"caligold/internal/testinfra"
)

func TestPgEventLog_Integration(t *testing.T) {
	ctx := context.Background()

	pg, err := testinfra.NewPostgres(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { pg.Cleanup(ctx) })

	log := NewPgEventLog(pg.Pool)

	t.Run("should claim each event id exactly once", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))

		assert.NoError(t, log.MarkProcessed(ctx, "evt_1", "payment_intent.succeeded"))
		assert.ErrorIs(t, log.MarkProcessed(ctx, "evt_1", "payment_intent.succeeded"),
			apperror.ErrEventAlreadyProcessed)
		assert.NoError(t, log.MarkProcessed(ctx, "evt_2", "checkout.session.completed"))
	})

	t.Run("should keep concurrent claims to a single winner", func(t *testing.T) {
		require.NoError(t, pg.Truncate(ctx))

		const attempts = 8
		results := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			go func() {
				results <- log.MarkProcessed(ctx, "evt_race", "payment_intent.succeeded")
			}()
		}

		wins := 0
		for i := 0; i < attempts; i++ {
			if err := <-results; err == nil {
				wins++
			} else {
				assert.ErrorIs(t, err, apperror.ErrEventAlreadyProcessed)
			}
		}
		assert.Equal(t, 1, wins)
	})
}
