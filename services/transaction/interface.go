package transaction

import (
	"context"
	"time"

	customerRepo "emjay/database/repository/customer"
	expenseRepo "emjay/database/repository/expense"
	transactionRepo "emjay/database/repository/transaction"
	"emjay/models"
	"emjay/utils"

	"go.uber.org/zap"
)

// CatalogLookup resolves catalog services.
type CatalogLookup interface {
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	GetServicesByIDs(ctx context.Context, ids []string) ([]models.Service, error)
}

// EmployeeDirectory checks employee references.
type EmployeeDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type CreateTransactionInput struct {
	CustomerID    string               `json:"customerId"`
	VehicleType   models.VehicleType   `json:"vehicleType"`
	VehicleSize   models.VehicleSize   `json:"vehicleSize"`
	Model         string               `json:"model"`
	PlateNumber   string               `json:"plateNumber"`
	ContactNumber string               `json:"contactNumber"`
	ServiceID     string               `json:"serviceId"`
	Price         float64              `json:"price"`
	ServiceCharge models.ServiceCharge `json:"serviceCharge"`
}

// TransactionService runs the visit lifecycle and the reports built on it.
type TransactionService interface {
	CreateTransaction(ctx context.Context, in CreateTransactionInput) (string, error)
	UpdateTransactionStatus(ctx context.Context, id string, status models.TransactionStatus) (*models.Transaction, error)
	CreateAvailedService(ctx context.Context, txID, serviceID string, price float64, charge models.ServiceCharge) (string, error)
	UpdateAvailedService(ctx context.Context, txID, availedID string, u AvailedUpdate) (string, error)
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	GetAvailedService(ctx context.Context, txID, availedID string) (*models.AvailedService, error)
	ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)

	GetStatistics(ctx context.Context, filter models.StatisticsFilter, end time.Time) (*models.Statistics, error)
	GetSalesReport(ctx context.Context, start, end time.Time) (*models.SalesReport, error)
	GetCompletedSummary(ctx context.Context, filter models.CompletedFilter) (*models.CompletedSummary, error)
	GetFreeWashEligibility(ctx context.Context, customerID string) (*models.FreeWashEligibility, error)
}

// DefaultTransactionService implements TransactionService. Cache may be nil.
type DefaultTransactionService struct {
	Repo      transactionRepo.TransactionRepository
	Customers customerRepo.CustomerRepository
	Expenses  expenseRepo.ExpenseRepository
	Catalog   CatalogLookup
	Employees EmployeeDirectory
	Cache     StatsCache
	Logger    *zap.Logger
	Now       func() time.Time
}

func (s *DefaultTransactionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultTransactionService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}
