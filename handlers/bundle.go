package handlers

import (
	"net/http"

	"emjay/middleware"
	"emjay/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers registered by routes.
type HandlerBundle struct {
	Transactions *TransactionHandler
	Bookings     *BookingHandler
	Accounts     *AccountHandler
}

// subject returns the authenticated caller id set by the JWT middleware.
func subject(c *gin.Context) (string, bool) {
	id := c.GetString(middleware.ContextSubject)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return "", false
	}
	return id, true
}

// bindJSON binds the request body, answering 400 with the decoder error.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return false
	}
	return true
}
