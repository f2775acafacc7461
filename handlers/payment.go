package handlers

import (
	"net/http"

	"github.com/sekharpasem/YouCanStyle-Api/middleware"
	"github.com/sekharpasem/YouCanStyle-Api/models"
	"github.com/sekharpasem/YouCanStyle-Api/services/payment"
	"github.com/sekharpasem/YouCanStyle-Api/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes capture, refund and payment-method endpoints.
type PaymentHandler struct {
	Svc    payment.PaymentService
	Logger *zap.Logger
}

func NewPaymentHandler(svc payment.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Svc: svc, Logger: logger}
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var in models.PaymentCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	clientID := c.GetString(middleware.CtxUserID)

	p, err := h.Svc.Capture(c.Request.Context(), in, clientID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// RefundPayment is admin-only (enforced by route middleware).
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	var in struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&in)

	p, err := h.Svc.Refund(c.Request.Context(), c.Param("id"), in.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	p, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.actorMayAccess(c, p) {
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) GetBookingPayment(c *gin.Context) {
	p, err := h.Svc.GetBookingPayment(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.actorMayAccess(c, p) {
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) ListMyPayments(c *gin.Context) {
	skip, limit := pageParams(c)
	actor := c.GetString(middleware.CtxUserID)

	var (
		payments []models.Payment
		err      error
	)
	if c.GetString(middleware.CtxRole) == "stylist" {
		payments, err = h.Svc.ListStylistPayments(c.Request.Context(), actor, skip, limit)
	} else {
		payments, err = h.Svc.ListClientPayments(c.Request.Context(), actor, skip, limit)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) ListMyTransactions(c *gin.Context) {
	skip, limit := pageParams(c)
	actor := c.GetString(middleware.CtxUserID)

	txns, err := h.Svc.ListUserTransactions(c.Request.Context(), actor, skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

func (h *PaymentHandler) AddPaymentMethod(c *gin.Context) {
	var in models.PaymentMethodCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	in.UserID = c.GetString(middleware.CtxUserID)

	method, err := h.Svc.AddPaymentMethod(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, method)
}

func (h *PaymentHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.Svc.ListPaymentMethods(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, methods)
}

func (h *PaymentHandler) DeletePaymentMethod(c *gin.Context) {
	err := h.Svc.DeletePaymentMethod(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *PaymentHandler) SetDefaultPaymentMethod(c *gin.Context) {
	err := h.Svc.SetDefaultPaymentMethod(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"default": true})
}

func (h *PaymentHandler) actorMayAccess(c *gin.Context, p *models.Payment) bool {
	actor := c.GetString(middleware.CtxUserID)
	role := c.GetString(middleware.CtxRole)
	if actor == p.ClientID || actor == p.StylistID || role == "admin" {
		return true
	}
	utils.JSONError(c, http.StatusForbidden, "Forbidden", "not a party to this payment")
	return false
}
