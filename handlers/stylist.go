package handlers

import (
	"net/http"

	"github.com/sekharpasem/YouCanStyle-Api/middleware"
	"github.com/sekharpasem/YouCanStyle-Api/models"
	"github.com/sekharpasem/YouCanStyle-Api/services/stylist"
	"github.com/sekharpasem/YouCanStyle-Api/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StylistHandler exposes the stylist profile and service catalog.
type StylistHandler struct {
	Svc    stylist.CatalogService
	Logger *zap.Logger
}

func NewStylistHandler(svc stylist.CatalogService, logger *zap.Logger) *StylistHandler {
	return &StylistHandler{Svc: svc, Logger: logger}
}

func (h *StylistHandler) GetStylist(c *gin.Context) {
	st, err := h.Svc.GetStylist(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// Catalog mutations are stylist-only and operate on the caller's own catalog.

func (h *StylistHandler) AddService(c *gin.Context) {
	var svc models.StylistService
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	st, err := h.Svc.AddService(c.Request.Context(), c.GetString(middleware.CtxUserID), svc)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (h *StylistHandler) UpdateService(c *gin.Context) {
	var svc models.StylistService
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	svc.ID = c.Param("serviceId")

	st, err := h.Svc.UpdateService(c.Request.Context(), c.GetString(middleware.CtxUserID), svc)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *StylistHandler) DeactivateService(c *gin.Context) {
	st, err := h.Svc.DeactivateService(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("serviceId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
