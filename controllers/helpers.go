package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storecraft/admin-api/logger"
)

// respondError writes the standard error envelope.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondData writes the standard success envelope.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondInternal logs the unexpected error tagged with the route name and
// returns the generic envelope. Clients never see failure details.
func respondInternal(c *gin.Context, route string, err error) {
	logger.L().Error("Internal error", zap.String("route", route), zap.Error(err))
	respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
}
