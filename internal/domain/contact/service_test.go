package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caligold/internal/controller/apperror"
	"caligold/internal/domain/notify"
	"caligold/pkg/logger"
)

type fakeStore struct {
	calls int
	saved Saved
	err   error
}

func (f *fakeStore) CreateContact(_ context.Context, _ Request) (Saved, error) {
	f.calls++
	return f.saved, f.err
}

type fakeNotifier struct {
	calls   int
	last    notify.ContactNotification
	outcome notify.Outcome
}

func (f *fakeNotifier) DispatchContact(_ context.Context, n notify.ContactNotification) notify.Outcome {
	f.calls++
	f.last = n
	return f.outcome
}

func contactService(t *testing.T) (*Service, *fakeStore, *fakeNotifier) {
	t.Helper()

	store := &fakeStore{saved: Saved{ID: 42}}
	notifier := &fakeNotifier{outcome: notify.Outcome{TeamSent: true, CustomerSent: true}}
	return NewService(store, notifier, logger.New("error", true)), store, notifier
}

func validRequest() Request {
	return Request{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Do you serve SFO?",
	}
}

func TestService_Submit(t *testing.T) {
	t.Parallel()

	t.Run("should reject missing required fields without saving", func(t *testing.T) {
		// given
		service, store, notifier := contactService(t)

		for _, mutate := range []func(*Request){
			func(r *Request) { r.Name = "" },
			func(r *Request) { r.Email = "" },
			func(r *Request) { r.Message = "" },
		} {
			req := validRequest()
			mutate(&req)

			// when
			_, err := service.Submit(context.Background(), req)

			// then
			assert.ErrorIs(t, err, apperror.ErrMissingField)
		}
		assert.Zero(t, store.calls)
		assert.Zero(t, notifier.calls)
	})

	t.Run("should save then notify with default subject", func(t *testing.T) {
		// given
		service, store, notifier := contactService(t)

		// when
		result, err := service.Submit(context.Background(), validRequest())

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, store.calls)
		assert.Equal(t, int64(42), result.Saved.ID)
		assert.Equal(t, "Contact Form Submission", notifier.last.Subject)
		assert.Equal(t, notify.Outcome{TeamSent: true, CustomerSent: true}, result.Notifications)
	})

	t.Run("should treat the saved record as success despite notification failures", func(t *testing.T) {
		// given
		service, _, notifier := contactService(t)
		notifier.outcome = notify.Outcome{TeamSent: false, CustomerSent: true}

		// when
		result, err := service.Submit(context.Background(), validRequest())

		// then
		require.NoError(t, err)
		assert.False(t, result.Notifications.TeamSent)
		assert.True(t, result.Notifications.CustomerSent)
	})

	t.Run("should fail and skip notifications when the store rejects", func(t *testing.T) {
		// given
		service, store, notifier := contactService(t)
		store.err = errors.New("contact api 500")

		// when
		_, err := service.Submit(context.Background(), validRequest())

		// then
		assert.EqualError(t, err, "save contact: contact api 500")
		assert.Zero(t, notifier.calls)
	})
}
