package handlers

import (
	"net/http"
	"strconv"

	"github.com/sekharpasem/YouCanStyle-Api/models"
	"github.com/sekharpasem/YouCanStyle-Api/utils"

	"github.com/gin-gonic/gin"
)

// writeError maps a service error onto the API's HTTP surface.
func writeError(c *gin.Context, err error) {
	switch {
	case models.IsValidation(err):
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
	case models.IsAuthFailed(err):
		utils.JSONError(c, http.StatusUnauthorized, "Verification failed", err.Error())
	case models.IsForbidden(err):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())
	case models.IsNotFound(err):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case models.IsInvalidState(err):
		utils.JSONError(c, http.StatusConflict, "Conflict", err.Error())
	case models.IsGatewayError(err):
		utils.JSONError(c, http.StatusBadGateway, "Payment gateway error", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}

// pageParams reads skip/limit query parameters with sane defaults.
func pageParams(c *gin.Context) (skip, limit int64) {
	skip, _ = strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)
	limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return skip, limit
}
