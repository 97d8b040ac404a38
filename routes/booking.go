package routes

import (
	"emjay/handlers"
	"emjay/middleware"
	"emjay/utils"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the slot reservation endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	staff := middleware.JWTAuthAccountMiddleware()
	customer := middleware.JWTAuthCustomerMiddleware()
	anyone := middleware.JWTAuthMiddleware(utils.RoleCustomer, utils.RoleAdmin, utils.RoleSupervisor)

	bookings := r.Group("/api/bookings")
	{
		bookings.POST("", staff, middleware.RequireRole(utils.RoleAdmin), hb.Bookings.CreateBookingDatesHandler)
		bookings.GET("", customer, hb.Bookings.GetCustomerBookingsHandler)

		bookings.GET("/scheduled", staff, hb.Bookings.GetScheduledBookingsHandler)
		bookings.PATCH("/scheduled", staff, hb.Bookings.UpdateScheduledBookingHandler)

		bookings.GET("/:date", anyone, hb.Bookings.GetBookingByDateHandler)
		bookings.PATCH("/:date", customer, hb.Bookings.UpdateSlotHandler)
	}
}
