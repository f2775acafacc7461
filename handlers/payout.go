package handlers

import (
	"net/http"

	"github.com/sekharpasem/YouCanStyle-Api/middleware"
	"github.com/sekharpasem/YouCanStyle-Api/models"
	"github.com/sekharpasem/YouCanStyle-Api/services/payout"
	"github.com/sekharpasem/YouCanStyle-Api/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PayoutHandler exposes stylist withdrawals and earnings statistics.
// All routes are stylist-only.
type PayoutHandler struct {
	Svc    payout.PayoutService
	Logger *zap.Logger
}

func NewPayoutHandler(svc payout.PayoutService, logger *zap.Logger) *PayoutHandler {
	return &PayoutHandler{Svc: svc, Logger: logger}
}

func (h *PayoutHandler) RequestPayout(c *gin.Context) {
	var in models.PayoutCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	in.StylistID = c.GetString(middleware.CtxUserID)

	p, err := h.Svc.RequestPayout(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PayoutHandler) ListMyPayouts(c *gin.Context) {
	skip, limit := pageParams(c)
	payouts, err := h.Svc.ListStylistPayouts(c.Request.Context(), c.GetString(middleware.CtxUserID), skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payouts)
}

func (h *PayoutHandler) GetStatistics(c *gin.Context) {
	stats, err := h.Svc.Statistics(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
