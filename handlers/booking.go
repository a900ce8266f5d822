package handlers

import (
	"context"
	"net/http"

	"toolshare/models"
	"toolshare/resolvers"
	"toolshare/services/booking"
	"toolshare/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves /api/bookings. Every booking response is expanded through the resolver.
type BookingHandler struct {
	BookingService booking.BookingService
	Resolver       *resolvers.Resolver
}

func NewBookingHandler(bs booking.BookingService, r *resolvers.Resolver) *BookingHandler {
	return &BookingHandler{BookingService: bs, Resolver: r}
}

func (h *BookingHandler) respondBooking(c *gin.Context, status int, b *models.Booking, message string) {
	view, err := h.Resolver.Booking(c.Request.Context(), b)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, status, view, message)
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.BookingService.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	h.respondBooking(c, http.StatusCreated, b, "Booking requested")
}

// MyBookingsHandler handles GET /api/bookings/my.
func (h *BookingHandler) MyBookingsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	asRenter, asOwner, err := h.BookingService.MyBookings(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	view, err := h.Resolver.MyBookings(c.Request.Context(), asRenter, asOwner)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, view, "")
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	b, err := h.BookingService.GetBooking(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	h.respondBooking(c, http.StatusOK, b, "")
}

type transitionFunc func(ctx context.Context, id, actorID string) (*models.Booking, error)

// transition builds the handler for one of the PUT /api/bookings/:id/<event> endpoints.
func (h *BookingHandler) transition(apply transitionFunc, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		b, err := apply(c.Request.Context(), c.Param("id"), userID)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		h.respondBooking(c, http.StatusOK, b, message)
	}
}

func (h *BookingHandler) ApproveHandler() gin.HandlerFunc {
	return h.transition(h.BookingService.Approve, "Booking approved")
}

func (h *BookingHandler) DeclineHandler() gin.HandlerFunc {
	return h.transition(h.BookingService.Decline, "Booking declined")
}

func (h *BookingHandler) CancelHandler() gin.HandlerFunc {
	return h.transition(h.BookingService.Cancel, "Booking cancelled")
}

func (h *BookingHandler) ReturnHandler() gin.HandlerFunc {
	return h.transition(h.BookingService.MarkReturned, "Booking completed")
}

func (h *BookingHandler) ConfirmPaymentHandler() gin.HandlerFunc {
	return h.transition(h.BookingService.ConfirmPayment, "Payment confirmed")
}

// PaymentDetailsHandler handles GET /api/bookings/:id/payment. Renter only.
func (h *BookingHandler) PaymentDetailsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	details, err := h.BookingService.GetPaymentDetails(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, details, "")
}

// ReconcilePaymentsHandler lets an admin trigger the reconciliation job on demand.
func (h *BookingHandler) ReconcilePaymentsHandler(c *gin.Context) {
	activated, err := h.BookingService.ReconcilePayments(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, gin.H{"activated": activated}, "Payments reconciled")
}
