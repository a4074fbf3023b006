package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"caligold/internal/controller/apperror"
	"caligold/internal/domain/contact"
)

type ContactHandler struct {
	service *contact.Service
}

func NewContactHandler(s *contact.Service) ContactHandler {
	return ContactHandler{service: s}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req contact.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperror.ErrMissingField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit contact form"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"data":               result.Saved,
		"emailNotifications": result.Notifications,
	})
}
