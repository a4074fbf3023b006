package stripegw

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caligold/internal/domain/payment"
	"caligold/pkg/logger"
)

func simulatedGateway(t *testing.T) *SimulatedGateway {
	t.Helper()
	return NewSimulatedGateway(logger.New("error", true)).WithDelay(0)
}

func TestSimulatedGateway_CreateIntent(t *testing.T) {
	t.Parallel()

	t.Run("should synthesize intent id and secret", func(t *testing.T) {
		// given
		gw := simulatedGateway(t)

		// when
		intent, err := gw.CreateIntent(context.Background(), payment.CreateIntentRequest{
			Amount:   12000,
			Currency: "usd",
		})

		// then
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^pi_test_\d+_[0-9a-z]{9}$`), intent.ID)
		assert.True(t, strings.HasPrefix(intent.ClientSecret, intent.ID+"_secret_"))
		assert.Equal(t, int64(12000), intent.Amount)
		assert.Equal(t, "usd", intent.Currency)
	})

	t.Run("should respect context cancellation during delay", func(t *testing.T) {
		// given
		gw := NewSimulatedGateway(logger.New("error", true)).WithDelay(5 * time.Second)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		_, err := gw.CreateIntent(ctx, payment.CreateIntentRequest{Amount: 12000})

		// then
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSimulatedGateway_CreateSession(t *testing.T) {
	t.Parallel()

	t.Run("should synthesize session id and hosted URL", func(t *testing.T) {
		// given
		gw := simulatedGateway(t)
		meta := map[string]string{"vehicleId": "3"}

		// when
		session, err := gw.CreateSession(context.Background(), payment.CreateSessionRequest{
			Amount:         40000,
			Currency:       "usd",
			Metadata:       meta,
			IntentMetadata: meta,
		})

		// then
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^cs_test_\d+_[0-9a-z]{9}$`), session.ID)
		assert.Contains(t, session.URL, "https://checkout.stripe.com/pay/test_session_")
		assert.Equal(t, meta, session.Metadata)
		assert.Equal(t, meta, session.IntentMetadata)
	})
}

func TestSimulatedGateway_RetrieveIntent(t *testing.T) {
	t.Parallel()

	// given
	gw := simulatedGateway(t)

	// when
	intent, err := gw.RetrieveIntent(context.Background(), "pi_test_123_abc")

	// then
	require.NoError(t, err)
	assert.Equal(t, "pi_test_123_abc", intent.ID)
	assert.True(t, intent.Succeeded())
}
