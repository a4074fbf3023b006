package stripegw

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caligold/internal/domain/event"
)

const testSecret = "whsec_test_secret"

// signPayload builds a valid Stripe-Signature header for the payload.
func signPayload(t *testing.T, payload []byte, secret string) string {
	t.Helper()

	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func eventJSON(eventType, object string) []byte {
	return []byte(fmt.Sprintf(`{"id":"evt_1","type":%q,"data":{"object":%s}}`, eventType, object))
}

func TestVerifier_Verify(t *testing.T) {
	t.Parallel()

	verifier := NewVerifier(testSecret)

	t.Run("should reject missing signature header", func(t *testing.T) {
		// given
		payload := eventJSON("payment_intent.succeeded", `{"id":"pi_1"}`)

		// when
		_, err := verifier.Verify(payload, "")

		// then
		assert.ErrorIs(t, err, ErrSignature)
	})

	t.Run("should reject signature computed with wrong secret", func(t *testing.T) {
		// given
		payload := eventJSON("payment_intent.succeeded", `{"id":"pi_1"}`)
		header := signPayload(t, payload, "whsec_other_secret")

		// when
		_, err := verifier.Verify(payload, header)

		// then
		assert.ErrorIs(t, err, ErrSignature)
	})

	t.Run("should reject tampered payload", func(t *testing.T) {
		// given
		payload := eventJSON("payment_intent.succeeded", `{"id":"pi_1","amount":12000}`)
		header := signPayload(t, payload, testSecret)
		tampered := eventJSON("payment_intent.succeeded", `{"id":"pi_1","amount":99999}`)

		// when
		_, err := verifier.Verify(tampered, header)

		// then
		assert.ErrorIs(t, err, ErrSignature)
	})

	t.Run("should map payment_intent.succeeded", func(t *testing.T) {
		// given
		payload := eventJSON("payment_intent.succeeded",
			`{"id":"pi_1","amount":12000,"currency":"usd","status":"succeeded","metadata":{"vehicleId":"3","customerEmail":"a@b.com"}}`)
		header := signPayload(t, payload, testSecret)

		// when
		ev, err := verifier.Verify(payload, header)

		// then
		require.NoError(t, err)
		assert.Equal(t, event.KindPaymentSucceeded, ev.Kind)
		require.NotNil(t, ev.Intent)
		assert.Nil(t, ev.Session)
		assert.Equal(t, "pi_1", ev.Intent.ID)
		assert.Equal(t, int64(12000), ev.Intent.Amount)
		assert.Equal(t, "a@b.com", ev.Intent.Metadata["customerEmail"])
	})

	t.Run("should map checkout.session.completed with intent reference", func(t *testing.T) {
		// given
		payload := eventJSON("checkout.session.completed",
			`{"id":"cs_1","amount_total":40000,"currency":"usd","payment_intent":"pi_9","metadata":{"vehicleId":"3","customerEmail":"a@b.com"}}`)
		header := signPayload(t, payload, testSecret)

		// when
		ev, err := verifier.Verify(payload, header)

		// then
		require.NoError(t, err)
		assert.Equal(t, event.KindCheckoutCompleted, ev.Kind)
		require.NotNil(t, ev.Session)
		assert.Nil(t, ev.Intent)
		assert.Equal(t, "cs_1", ev.Session.ID)
		assert.Equal(t, "pi_9", ev.Session.PaymentIntentID)
		assert.Equal(t, int64(40000), ev.Session.Amount)
	})

	t.Run("should map payment_intent.payment_failed with failure message", func(t *testing.T) {
		// given
		payload := eventJSON("payment_intent.payment_failed",
			`{"id":"pi_2","amount":5000,"currency":"usd","status":"requires_payment_method","last_payment_error":{"message":"Your card was declined."}}`)
		header := signPayload(t, payload, testSecret)

		// when
		ev, err := verifier.Verify(payload, header)

		// then
		require.NoError(t, err)
		assert.Equal(t, event.KindPaymentFailed, ev.Kind)
		require.NotNil(t, ev.Intent)
		assert.Equal(t, "pi_2", ev.Intent.ID)
		assert.Equal(t, "Your card was declined.", ev.FailureMessage)
	})

	t.Run("should classify unhandled types as other", func(t *testing.T) {
		// given
		payload := eventJSON("charge.refunded", `{"id":"ch_1"}`)
		header := signPayload(t, payload, testSecret)

		// when
		ev, err := verifier.Verify(payload, header)

		// then
		require.NoError(t, err)
		assert.Equal(t, event.KindOther, ev.Kind)
		assert.Equal(t, "charge.refunded", ev.RawType)
		assert.Nil(t, ev.Intent)
		assert.Nil(t, ev.Session)
	})
}
