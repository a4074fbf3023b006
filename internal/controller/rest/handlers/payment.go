package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"caligold/internal/controller/apperror"
	"caligold/internal/domain/payment"
)

type PaymentHandler struct {
	service *payment.Service
}

func NewPaymentHandler(s *payment.Service) PaymentHandler {
	return PaymentHandler{service: s}
}

type createIntentRequest struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
}

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	intent, err := h.service.CreateIntent(c.Request.Context(), payment.CreateIntentRequest{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		if errors.Is(err, apperror.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
	})
}

type createSessionRequest struct {
	VehicleName   string            `json:"vehicleName"`
	VehicleID     string            `json:"vehicleId"`
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customerEmail"`
	CustomerName  string            `json:"customerName"`
	BookingData   map[string]string `json:"bookingData"`
}

func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.service.CreateSession(c.Request.Context(), payment.SessionParams{
		VehicleName:   req.VehicleName,
		VehicleID:     req.VehicleID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		BookingData:   req.BookingData,
	})
	if err != nil {
		if errors.Is(err, apperror.ErrInvalidAmount) || errors.Is(err, apperror.ErrMissingField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":       session.URL,
		"sessionId": session.ID,
	})
}

type confirmRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

// Confirm is the read-only status poll. The intent id comes from the path
// param when present, otherwise from the body.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	intentID := c.Param("id")
	if intentID == "" {
		var req confirmRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			intentID = req.PaymentIntentID
		}
	}

	confirmation, err := h.service.PaymentStatus(c.Request.Context(), intentID)
	if err != nil {
		if errors.Is(err, apperror.ErrMissingField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "paymentIntentId is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment status"})
		return
	}

	c.JSON(http.StatusOK, confirmation)
}
