package controllers

import (
	"errors"
	"net/http"

	"github.com/Marino59/dieta/services"

	"github.com/gin-gonic/gin"
)

func userIDFromCtx(c *gin.Context) uint {
	return c.GetUint("userID")
}

// abortWithError maps domain sentinels to their HTTP status and everything
// else to a 500.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrFutureTimestamp):
		c.JSON(http.StatusBadRequest, gin.H{"error": "timestamp is in the future"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
