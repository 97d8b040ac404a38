package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emjay/config"
	"emjay/cron"
	"emjay/database"
	"emjay/database/repository"
	accountRepo "emjay/database/repository/account"
	catalogRepo "emjay/database/repository/catalog"
	employeeRepo "emjay/database/repository/employee"
	expenseRepo "emjay/database/repository/expense"
	messagingRepo "emjay/database/repository/messaging"
	"emjay/handlers"
	"emjay/middleware"
	"emjay/routes"
	"emjay/services/account"
	"emjay/services/booking"
	"emjay/services/messaging"
	"emjay/services/notification"
	"emjay/services/transaction"
	"emjay/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	if err := repository.EnsureIndexes(); err != nil {
		logger.Fatal("main: failed to create indexes", zap.Error(err))
	}
	utils.InitCache()
	utils.FirebaseInit()

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	utils.StartHealthMonitor(rootCtx, utils.GetCacheClient(), database.MongoClient, 30*time.Second)

	// Pushes are delivered by the worker; request paths only enqueue.
	fcm := notification.NewFCMSender()
	worker := cron.InitPushWorker(fcm)
	queue := cron.NewQueueClient()
	defer queue.Close()

	// repositories.
	txRepo := repository.NewMongoTransactionRepo()
	bookingStore := repository.NewMongoBookingRepo()
	customers := repository.NewMongoCustomerRepo()
	catalog := catalogRepo.NewMongoCatalogRepo()
	accounts := accountRepo.NewMongoAccountRepo()

	// services.
	transactionService := &transaction.DefaultTransactionService{
		Repo:      txRepo,
		Customers: customers,
		Expenses:  expenseRepo.NewMongoExpenseRepo(),
		Catalog:   catalog,
		Employees: employeeRepo.NewMongoEmployeeRepo(),
		Cache:     transaction.NewRedisStatsCache(utils.GetCacheClient(), config.AppConfig.StatsCacheTTL),
		Logger:    logger.Named("transaction"),
	}

	bookingService := &booking.DefaultBookingService{
		Repo:      bookingStore,
		Customers: customers,
		Catalog:   catalog,
		Admins:    accounts,
		Messages:  messaging.NewChatLog(messagingRepo.NewMongoMessagingRepo()),
		Push:      notification.NewQueuedPushSender(queue),
		Location:  config.Location(),
		Logger:    logger.Named("booking"),
	}

	accountService := &account.DefaultAccountService{
		Repo:     accounts,
		TokenTTL: utils.TokenTTL,
		Logger:   logger.Named("account"),
	}

	handlerBundle := &handlers.HandlerBundle{
		Transactions: handlers.NewTransactionHandler(transactionService),
		Bookings:     handlers.NewBookingHandler(bookingService),
		Accounts:     handlers.NewAccountHandler(accountService),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
