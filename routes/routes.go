package routes

import (
	"net/http"
	"time"

	"emjay/handlers"
	"emjay/middleware"
	"emjay/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterTransactionRoutes registers the visit lifecycle and report endpoints.
func RegisterTransactionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/transactions")
	{
		api.Use(middleware.JWTAuthAccountMiddleware())
		api.POST("", hb.Transactions.CreateTransactionHandler)
		api.GET("", hb.Transactions.ListTransactionsHandler)

		// Reports
		api.GET("/statistics", hb.Transactions.GetStatisticsHandler)
		api.GET("/week-sales", hb.Transactions.GetSalesReportHandler)
		api.GET("/completed", hb.Transactions.GetCompletedSummaryHandler)

		api.GET("/:id", hb.Transactions.GetTransactionHandler)
		api.PATCH("/:id", hb.Transactions.UpdateTransactionStatusHandler)
		api.PATCH("/:id/availed-services", hb.Transactions.CreateAvailedServiceHandler)
		api.GET("/:id/availed-services/:availedId", hb.Transactions.GetAvailedServiceHandler)
		api.PATCH("/:id/availed-services/:availedId", hb.Transactions.UpdateAvailedServiceHandler)
	}
}

func RegisterCustomerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/customers")
	{
		api.Use(middleware.JWTAuthMiddleware(utils.RoleCustomer, utils.RoleAdmin, utils.RoleSupervisor))
		api.GET("/:id/free-wash", hb.Transactions.GetFreeWashEligibilityHandler)
	}
}

func RegisterAccountRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/accounts")
	{
		api.POST("/login", hb.Accounts.LoginHandler)
	}
}

// RegisterHealthRoute reports the last dependency health snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		h := utils.GetHealthStatus()
		status := http.StatusOK
		if !h.CheckedAt.IsZero() && (!h.Mongo || !h.Redis) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "dependencies": h})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAccountRoutes(r, hb)
	RegisterTransactionRoutes(r, hb)
	RegisterCustomerRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
}
