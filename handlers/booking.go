package handlers

import (
	"net/http"

	"github.com/sekharpasem/YouCanStyle-Api/middleware"
	"github.com/sekharpasem/YouCanStyle-Api/models"
	"github.com/sekharpasem/YouCanStyle-Api/services/booking"
	"github.com/sekharpasem/YouCanStyle-Api/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// CreateBooking creates a booking for the authenticated client. The session
// code is returned once here and never again.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var in models.BookingCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	clientID := c.GetString(middleware.CtxUserID)

	b, err := h.Svc.Create(c.Request.Context(), in, clientID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"booking": b,
		"otpCode": b.OtpCode,
	})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.actorMayAccess(c, b) {
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var patch models.BookingUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.actorMayAccess(c, b) {
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var in struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&in)

	b, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.actorMayAccess(c, b) {
		return
	}

	cancelled, err := h.Svc.Cancel(c.Request.Context(), c.Param("id"), in.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}

// MarkNoShow is stylist-only (enforced by route middleware); the stylist
// must own the booking.
func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	b, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if b.StylistID != c.GetString(middleware.CtxUserID) {
		utils.JSONError(c, http.StatusForbidden, "Forbidden", "booking belongs to a different stylist")
		return
	}

	updated, err := h.Svc.MarkNoShow(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// StartSession verifies the client's code and begins the session.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var in struct {
		OtpCode string `json:"otpCode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if b.StylistID != c.GetString(middleware.CtxUserID) {
		utils.JSONError(c, http.StatusForbidden, "Forbidden", "booking belongs to a different stylist")
		return
	}

	updated, err := h.Svc.StartSession(c.Request.Context(), c.Param("id"), in.OtpCode)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) CompleteSession(c *gin.Context) {
	b, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if b.StylistID != c.GetString(middleware.CtxUserID) {
		utils.JSONError(c, http.StatusForbidden, "Forbidden", "booking belongs to a different stylist")
		return
	}

	updated, err := h.Svc.CompleteSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AddReview is client-only; ownership is enforced inside the service.
func (h *BookingHandler) AddReview(c *gin.Context) {
	var in struct {
		Rating int    `json:"rating" binding:"required"`
		Review string `json:"review"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	clientID := c.GetString(middleware.CtxUserID)
	updated, err := h.Svc.AddReview(c.Request.Context(), c.Param("id"), clientID, in.Rating, in.Review)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	var in struct {
		Date      string `json:"date" binding:"required"`
		StartTime string `json:"startTime" binding:"required"`
		EndTime   string `json:"endTime" binding:"required"`
		Reason    string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.actorMayAccess(c, b) {
		return
	}

	updated, err := h.Svc.Reschedule(c.Request.Context(), c.Param("id"), in.Date, in.StartTime, in.EndTime, in.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) ListStylistBookings(c *gin.Context) {
	filter := bookingFilterFromQuery(c)
	bookings, err := h.Svc.ListForStylist(c.Request.Context(), c.Param("stylistId"), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	filter := bookingFilterFromQuery(c)
	clientID := c.GetString(middleware.CtxUserID)
	bookings, err := h.Svc.ListForClient(c.Request.Context(), clientID, filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// actorMayAccess aborts with 403 unless the authenticated actor is the
// booking's client, its stylist, or an admin.
func (h *BookingHandler) actorMayAccess(c *gin.Context, b *models.Booking) bool {
	actor := c.GetString(middleware.CtxUserID)
	role := c.GetString(middleware.CtxRole)
	if actor == b.ClientID || actor == b.StylistID || role == "admin" {
		return true
	}
	utils.JSONError(c, http.StatusForbidden, "Forbidden", "not a party to this booking")
	return false
}

func bookingFilterFromQuery(c *gin.Context) models.BookingFilter {
	skip, limit := pageParams(c)
	return models.BookingFilter{
		Status:   models.BookingStatus(c.Query("status")),
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
		Skip:     skip,
		Limit:    limit,
	}
}
