package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caligold/internal/domain/booking"
)

// BookingHandler forwards direct (non-payment) booking submissions to the
// external store.
type BookingHandler struct {
	store booking.Store
}

func NewBookingHandler(store booking.Store) BookingHandler {
	return BookingHandler{store: store}
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req booking.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Phone == "" ||
		req.PickupLocation == "" || req.DropoffLocation == "" || req.PickupDateTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if req.PassengerCount == 0 {
		req.PassengerCount = 1
	}

	created, err := h.store.CreateBooking(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to submit booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": created})
}
