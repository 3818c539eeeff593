package handlers

import (
	"net/http"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactService    services.ContactService
	newsletterService services.NewsletterService
}

func NewContactHandler(contactService services.ContactService, newsletterService services.NewsletterService) *ContactHandler {
	return &ContactHandler{contactService: contactService, newsletterService: newsletterService}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

func (h *ContactHandler) SubmitMessage(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := h.contactService.SubmitMessage(c.Request.Context(), message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit message"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "received"})
}

type subscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *ContactHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.newsletterService.Subscribe(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "subscribed"})
}
