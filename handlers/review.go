package handlers

import (
	"net/http"

	"github.com/sekharpasem/YouCanStyle-Api/middleware"
	"github.com/sekharpasem/YouCanStyle-Api/models"
	"github.com/sekharpasem/YouCanStyle-Api/services/review"
	"github.com/sekharpasem/YouCanStyle-Api/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler exposes the direct review channel (reviews not tied to a
// booking go through here; booking-linked reviews go through the booking
// review endpoint).
type ReviewHandler struct {
	Svc    review.ReviewService
	Logger *zap.Logger
}

func NewReviewHandler(svc review.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{Svc: svc, Logger: logger}
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var in models.ReviewCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	in.ClientID = c.GetString(middleware.CtxUserID)

	rev, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rev)
}

func (h *ReviewHandler) ListStylistReviews(c *gin.Context) {
	reviews, err := h.Svc.ListForStylist(c.Request.Context(), c.Param("stylistId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// DeleteReview is admin-only (enforced by route middleware).
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
