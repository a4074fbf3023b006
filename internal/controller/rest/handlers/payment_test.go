package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caligold/internal/domain/payment"
	"caligold/internal/external/stripegw"
	"caligold/pkg/logger"
)

func paymentEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l := logger.New("error", true)
	gateway := stripegw.NewSimulatedGateway(l).WithDelay(0)
	handler := NewPaymentHandler(payment.NewService(gateway, "https://caligolddrive.com", l))

	engine := gin.New()
	engine.POST("/payments/intents", handler.CreateIntent)
	engine.POST("/payments/checkout-sessions", handler.CreateCheckoutSession)
	engine.POST("/payments/intents/confirm", handler.Confirm)
	return engine
}

func postJSON(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestPaymentHandler_CreateIntent(t *testing.T) {
	t.Run("should return 400 for amount below minimum", func(t *testing.T) {
		// given
		engine := paymentEngine(t)

		// when
		w := postJSON(engine, "/payments/intents", `{"amount":30,"currency":"usd"}`)

		// then
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should return client secret and intent id", func(t *testing.T) {
		// given
		engine := paymentEngine(t)

		// when
		w := postJSON(engine, "/payments/intents", `{"amount":12000,"currency":"usd"}`)

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp["paymentIntentId"], "pi_test_"))
		assert.Contains(t, resp["clientSecret"], "_secret_")
	})
}

func TestPaymentHandler_CreateCheckoutSession(t *testing.T) {
	t.Run("should return 400 when customerEmail is missing", func(t *testing.T) {
		// given
		engine := paymentEngine(t)

		// when
		w := postJSON(engine, "/payments/checkout-sessions",
			`{"vehicleName":"Escalade V","amount":40000}`)

		// then
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should return session url and id", func(t *testing.T) {
		// given
		engine := paymentEngine(t)

		// when
		w := postJSON(engine, "/payments/checkout-sessions",
			`{"vehicleName":"Escalade V","vehicleId":"3","amount":40000,"customerEmail":"jane@example.com"}`)

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp["sessionId"], "cs_test_"))
		assert.NotEmpty(t, resp["url"])
	})
}

func TestPaymentHandler_Confirm(t *testing.T) {
	t.Run("should return 400 without an intent id", func(t *testing.T) {
		// given
		engine := paymentEngine(t)

		// when
		w := postJSON(engine, "/payments/intents/confirm", `{}`)

		// then
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should return the confirmation payload", func(t *testing.T) {
		// given
		engine := paymentEngine(t)

		// when
		w := postJSON(engine, "/payments/intents/confirm", `{"paymentIntentId":"pi_test_1_abc"}`)

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Success bool `json:"success"`
			Intent  struct {
				ID string `json:"id"`
			} `json:"paymentIntent"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "pi_test_1_abc", resp.Intent.ID)
	})
}
