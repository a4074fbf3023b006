package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"caligold/internal/controller/apperror"
	"caligold/internal/domain/notify"
	"caligold/internal/domain/payment"
	"caligold/pkg/logger"
)

func materializer(t *testing.T) (*Materializer, *MockStore, *MockNotifier) {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	notifier := NewMockNotifier(ctrl)
	m := NewMaterializer(store, notifier, logger.New("error", true))

	return m, store, notifier
}

func fullMetadata() map[string]string {
	return map[string]string{
		"customerEmail": "a@b.com",
		"vehicleId":     "3",
		"customerName":  "Jane Doe",
		"vehicleName":   "Escalade V",
		"serviceDate":   "2025-01-01",
		"pickupTime":    "10:00",
		"passengers":    "2",
		"duration":      "4",
	}
}

func TestMaterializer_FromIntent(t *testing.T) {
	t.Parallel()

	t.Run("should derive booking fields from metadata", func(t *testing.T) {
		// given
		m, store, notifier := materializer(t)
		intent := payment.Intent{ID: "pi_1", Amount: 40000, Metadata: fullMetadata()}

		var captured CreateRequest
		store.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req CreateRequest) (Created, error) {
				captured = req
				return Created{ID: 7, BookingReference: "CGD-007"}, nil
			})
		notifier.EXPECT().DispatchBooking(gomock.Any(), gomock.Any()).
			Return(notify.Outcome{TeamSent: true, CustomerSent: true})

		// when
		err := m.FromIntent(context.Background(), intent)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Jane", captured.FirstName)
		assert.Equal(t, "Doe", captured.LastName)
		assert.Equal(t, "a@b.com", captured.Email)
		assert.Equal(t, 2, captured.PassengerCount)
		assert.Equal(t, 4, captured.DurationHours)
		assert.Equal(t, 3, captured.VehicleID)
		assert.Equal(t, 400.00, captured.TotalAmount)
		assert.Equal(t, PaymentCompleted, captured.PaymentStatus)
		assert.Equal(t, "pi_1", captured.PaymentIntentID)

		pickupAt, err := time.Parse(time.RFC3339, captured.PickupDateTime)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), pickupAt.UTC())
	})

	t.Run("should skip event when customerEmail is missing", func(t *testing.T) {
		// given
		m, _, _ := materializer(t)
		meta := fullMetadata()
		delete(meta, "customerEmail")
		intent := payment.Intent{ID: "pi_1", Amount: 40000, Metadata: meta}

		// when: no store or notifier expectations, any call fails the test
		err := m.FromIntent(context.Background(), intent)

		// then
		assert.ErrorIs(t, err, apperror.ErrInsufficientData)
	})

	t.Run("should skip event when vehicleId is missing or not numeric", func(t *testing.T) {
		// given
		m, _, _ := materializer(t)

		for _, vehicleID := range []string{"", "escalade"} {
			meta := fullMetadata()
			meta["vehicleId"] = vehicleID

			// when
			err := m.FromIntent(context.Background(), payment.Intent{ID: "pi_1", Metadata: meta})

			// then
			assert.ErrorIs(t, err, apperror.ErrInsufficientData)
		}
	})

	t.Run("should default single-word and empty names", func(t *testing.T) {
		// given
		m, store, notifier := materializer(t)

		testCases := []struct {
			name          string
			customerName  string
			expectedFirst string
			expectedLast  string
		}{
			{"single word keeps empty last name", "Madonna", "Madonna", ""},
			{"empty name falls back to placeholder", "", "Customer", ""},
			{"multi-part last name is preserved", "Ana de Armas", "Ana", "de Armas"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				meta := fullMetadata()
				meta["customerName"] = tc.customerName

				var captured CreateRequest
				store.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req CreateRequest) (Created, error) {
						captured = req
						return Created{BookingReference: "CGD-001"}, nil
					})
				notifier.EXPECT().DispatchBooking(gomock.Any(), gomock.Any()).Return(notify.Outcome{})

				// when
				err := m.FromIntent(context.Background(), payment.Intent{ID: "pi_1", Metadata: meta})

				// then
				require.NoError(t, err)
				assert.Equal(t, tc.expectedFirst, captured.FirstName)
				assert.Equal(t, tc.expectedLast, captured.LastName)
			})
		}
	})

	t.Run("should default pickup to now when schedule metadata is absent", func(t *testing.T) {
		// given
		m, store, notifier := materializer(t)
		fixedNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		m.now = func() time.Time { return fixedNow }

		meta := fullMetadata()
		delete(meta, "pickupTime")

		var captured CreateRequest
		store.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req CreateRequest) (Created, error) {
				captured = req
				return Created{BookingReference: "CGD-002"}, nil
			})
		notifier.EXPECT().DispatchBooking(gomock.Any(), gomock.Any()).Return(notify.Outcome{})

		// when
		err := m.FromIntent(context.Background(), payment.Intent{ID: "pi_1", Metadata: meta})

		// then
		require.NoError(t, err)
		assert.Equal(t, fixedNow.Format(time.RFC3339), captured.PickupDateTime)
	})

	t.Run("should not retry or notify when store rejects the booking", func(t *testing.T) {
		// given
		m, store, _ := materializer(t)
		store.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(Created{}, errors.New("booking api 502 Bad Gateway"))

		// when
		err := m.FromIntent(context.Background(), payment.Intent{ID: "pi_1", Amount: 40000, Metadata: fullMetadata()})

		// then
		assert.EqualError(t, err, "create booking: booking api 502 Bad Gateway")
	})

	t.Run("should succeed even when both notifications fail", func(t *testing.T) {
		// given
		m, store, notifier := materializer(t)
		store.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(Created{BookingReference: "CGD-003"}, nil)
		notifier.EXPECT().DispatchBooking(gomock.Any(), gomock.Any()).
			Return(notify.Outcome{TeamSent: false, CustomerSent: false})

		// when
		err := m.FromIntent(context.Background(), payment.Intent{ID: "pi_1", Amount: 40000, Metadata: fullMetadata()})

		// then
		assert.NoError(t, err)
	})

	// Known defect: without a persisted idempotency log every redelivery of
	// the same event creates another booking. The dedupe-enabled path is
	// covered in the event router tests.
	t.Run("duplicate deliveries create duplicate bookings", func(t *testing.T) {
		// given
		m, store, notifier := materializer(t)
		intent := payment.Intent{ID: "pi_1", Amount: 40000, Metadata: fullMetadata()}

		store.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			Return(Created{BookingReference: "CGD-004"}, nil).Times(2)
		notifier.EXPECT().DispatchBooking(gomock.Any(), gomock.Any()).
			Return(notify.Outcome{TeamSent: true, CustomerSent: true}).Times(2)

		// when
		require.NoError(t, m.FromIntent(context.Background(), intent))
		require.NoError(t, m.FromIntent(context.Background(), intent))

		// then: both store calls asserted via Times(2)
	})
}

func TestMaterializer_FromSession(t *testing.T) {
	t.Parallel()

	t.Run("should use session scope metadata and carry both ids", func(t *testing.T) {
		// given
		m, store, notifier := materializer(t)
		session := payment.Session{
			ID:              "cs_1",
			PaymentIntentID: "pi_1",
			Amount:          12000,
			Metadata:        fullMetadata(),
			IntentMetadata:  map[string]string{},
		}

		var captured CreateRequest
		store.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req CreateRequest) (Created, error) {
				captured = req
				return Created{BookingReference: "CGD-005"}, nil
			})
		notifier.EXPECT().DispatchBooking(gomock.Any(), gomock.Any()).Return(notify.Outcome{})

		// when
		err := m.FromSession(context.Background(), session)

		// then
		require.NoError(t, err)
		assert.Equal(t, "pi_1", captured.PaymentIntentID)
		assert.Equal(t, "cs_1", captured.SessionID)
		assert.Equal(t, 120.00, captured.TotalAmount)
	})
}
