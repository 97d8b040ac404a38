package transaction

import (
	"context"
	"errors"
	"fmt"

	"emjay/database"
	"emjay/models"
	"emjay/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const loyaltyAttempts = 3

func (s *DefaultTransactionService) CreateTransaction(ctx context.Context, in CreateTransactionInput) (string, error) {
	switch {
	case !in.VehicleType.Valid():
		return "", utils.NewValidationError("vehicle_type", fmt.Sprintf("invalid vehicle type %q", in.VehicleType))
	case !in.VehicleSize.Valid():
		return "", utils.NewValidationError("vehicle_size", fmt.Sprintf("invalid vehicle size %q", in.VehicleSize))
	case !in.ServiceCharge.Valid():
		return "", utils.NewValidationError("service_charge", fmt.Sprintf("invalid service charge %q", in.ServiceCharge))
	case in.Price < 0:
		return "", utils.NewValidationError("price", "price must not be negative")
	case in.ServiceID == "":
		return "", utils.NewValidationError("service_id", "service is required")
	}

	if in.CustomerID != "" {
		customer, err := s.Customers.GetByID(ctx, in.CustomerID)
		if err != nil {
			return "", err
		}
		if customer == nil {
			return "", utils.NewNotFoundError("customer_id", fmt.Sprintf("customer %s not found", in.CustomerID))
		}
	}
	if err := s.requireService(ctx, in.ServiceID); err != nil {
		return "", err
	}

	now := s.now()
	tx := &models.Transaction{
		ID:              uuid.New().String(),
		CustomerID:      in.CustomerID,
		VehicleType:     in.VehicleType,
		VehicleSize:     in.VehicleSize,
		Model:           in.Model,
		PlateNumber:     in.PlateNumber,
		ContactNumber:   in.ContactNumber,
		CheckIn:         now,
		Status:          models.TransactionOngoing,
		AvailedServices: []models.AvailedService{NewAvailedService(in.ServiceID, in.Price, in.ServiceCharge)},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.Create(ctx, tx); err != nil {
		return "", err
	}
	s.logger().Info("transaction created", zap.String("transactionId", tx.ID), zap.String("customerId", tx.CustomerID))
	return tx.ID, nil
}

func (s *DefaultTransactionService) UpdateTransactionStatus(ctx context.Context, id string, status models.TransactionStatus) (*models.Transaction, error) {
	tx, err := s.loadTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(tx.Status, status); err != nil {
		return nil, err
	}

	switch status {
	case models.TransactionCancelled:
		next := CancelTransaction(*tx, s.now())
		if err := s.replace(ctx, &next); err != nil {
			return nil, err
		}
		s.invalidateStats(ctx)
		return &next, nil
	default:
		return s.complete(ctx, tx)
	}
}

// complete checks every precondition and resolves the catalog before any
// write. Loyalty is credited first, keyed by transaction id so a retried
// completion never credits twice; if the status write then loses, the credit
// is reverted.
func (s *DefaultTransactionService) complete(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if err := CheckCompletable(tx); err != nil {
		return nil, err
	}

	var credit *loyaltyCredit
	if tx.CustomerID != "" {
		customer, err := s.Customers.GetByID(ctx, tx.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, utils.NewNotFoundError("customer_id", fmt.Sprintf("customer %s not found", tx.CustomerID))
		}
		lines, err := resolveAccrualLines(ctx, s.Catalog, tx)
		if err != nil {
			if utils.IsKind(err, utils.KindIntegrity) {
				s.logger().Error("loyalty accrual aborted",
					zap.String("transactionId", tx.ID),
					zap.String("customerId", tx.CustomerID),
					zap.Error(err))
			}
			return nil, err
		}
		credit, err = s.accrue(ctx, tx, lines)
		if err != nil {
			s.logger().Error("loyalty accrual not applied",
				zap.String("transactionId", tx.ID),
				zap.String("customerId", tx.CustomerID),
				zap.Error(err))
			if errors.Is(err, database.ErrVersionConflict) {
				return nil, utils.NewConflictError("customer_id", "customer was modified concurrently, retry")
			}
			return nil, err
		}
	}

	next := CompleteTransaction(*tx, s.now())
	if err := s.replace(ctx, &next); err != nil {
		if credit != nil {
			s.revertAccrual(ctx, tx, credit)
		}
		return nil, err
	}
	s.invalidateStats(ctx)
	return &next, nil
}

// loyaltyCredit remembers the balances replaced by one accrual.
type loyaltyCredit struct {
	customerID string
	version    int
	points     int
	counts     []models.WashServiceCount
}

// accrue applies lines to the customer, re-reading on version conflicts.
// It returns nil, nil when the transaction was already credited.
func (s *DefaultTransactionService) accrue(ctx context.Context, tx *models.Transaction, lines []AccrualLine) (*loyaltyCredit, error) {
	for attempt := 1; attempt <= loyaltyAttempts; attempt++ {
		customer, err := s.Customers.GetByID(ctx, tx.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, utils.NewIntegrityError("customer_id", fmt.Sprintf("customer %s disappeared during completion", tx.CustomerID), nil)
		}
		if customer.HasAccrued(tx.ID) {
			s.logger().Info("loyalty already credited",
				zap.String("transactionId", tx.ID),
				zap.String("customerId", customer.ID))
			return nil, nil
		}

		before := washCountsFor(customer, tx.VehicleType)
		result := AccrueLoyalty(LoyaltyInput{
			Points:      customer.Points,
			WashCounts:  before,
			VehicleType: tx.VehicleType,
			VehicleSize: tx.VehicleSize,
			Lines:       lines,
		})

		err = s.Customers.UpdateLoyalty(ctx, customer.ID, customer.Version, tx.ID, result.Points, tx.VehicleType, result.WashCounts)
		if err == nil {
			s.logger().Info("loyalty accrued",
				zap.String("transactionId", tx.ID),
				zap.String("customerId", customer.ID),
				zap.Int("points", result.Points))
			return &loyaltyCredit{
				customerID: customer.ID,
				version:    customer.Version + 1,
				points:     customer.Points,
				counts:     before,
			}, nil
		}
		if !errors.Is(err, database.ErrVersionConflict) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("customer %s kept changing during loyalty accrual: %w", tx.CustomerID, database.ErrVersionConflict)
}

// revertAccrual undoes a credit whose transaction could not be completed.
// A concurrent completion that won the status write relies on the credit, so
// it is kept when the transaction is COMPLETED by now. If the customer changed
// in between, the credit also stays recorded and a retried completion skips it.
func (s *DefaultTransactionService) revertAccrual(ctx context.Context, tx *models.Transaction, credit *loyaltyCredit) {
	current, err := s.Repo.GetByID(ctx, tx.ID)
	if err != nil {
		s.logger().Error("loyalty credit kept: transaction reload failed",
			zap.String("transactionId", tx.ID),
			zap.String("customerId", credit.customerID),
			zap.Error(err))
		return
	}
	if current != nil && current.Status == models.TransactionCompleted {
		return
	}

	err = s.Customers.RevertLoyalty(ctx, credit.customerID, credit.version, tx.ID, credit.points, tx.VehicleType, credit.counts)
	if err != nil {
		s.logger().Error("loyalty credited but transaction not completed",
			zap.String("transactionId", tx.ID),
			zap.String("customerId", credit.customerID),
			zap.Error(err))
		return
	}
	s.logger().Info("loyalty credit reverted",
		zap.String("transactionId", tx.ID),
		zap.String("customerId", credit.customerID))
}

func (s *DefaultTransactionService) CreateAvailedService(ctx context.Context, txID, serviceID string, price float64, charge models.ServiceCharge) (string, error) {
	switch {
	case !charge.Valid():
		return "", utils.NewValidationError("service_charge", fmt.Sprintf("invalid service charge %q", charge))
	case price < 0:
		return "", utils.NewValidationError("price", "price must not be negative")
	case serviceID == "":
		return "", utils.NewValidationError("service_id", "service is required")
	}

	tx, err := s.loadOngoing(ctx, txID)
	if err != nil {
		return "", err
	}
	if tx.HasService(serviceID) {
		return "", duplicateServiceError(serviceID)
	}
	if err := s.requireService(ctx, serviceID); err != nil {
		return "", err
	}

	svc := NewAvailedService(serviceID, price, charge)
	if err := s.Repo.PushAvailedService(ctx, tx.ID, tx.Version, svc); err != nil {
		if !errors.Is(err, database.ErrVersionConflict) {
			return "", err
		}
		// Tell a concurrent duplicate apart from any other concurrent edit.
		if fresh, ferr := s.Repo.GetByID(ctx, txID); ferr == nil && fresh != nil && fresh.HasService(serviceID) {
			return "", duplicateServiceError(serviceID)
		}
		return "", utils.NewConflictError("transaction_id", "transaction was modified concurrently, retry")
	}
	return tx.ID, nil
}

func (s *DefaultTransactionService) UpdateAvailedService(ctx context.Context, txID, availedID string, u AvailedUpdate) (string, error) {
	tx, err := s.loadOngoing(ctx, txID)
	if err != nil {
		return "", err
	}
	idx := tx.FindAvailed(availedID)
	if idx < 0 {
		return "", utils.NewNotFoundError("availed_service_id", fmt.Sprintf("availed service %s not found", availedID))
	}
	if err := s.verifyEmployees(ctx, u.AssignedEmployeeIDs); err != nil {
		return "", err
	}

	updated, err := ApplyAvailedUpdate(tx.AvailedServices[idx], u, s.now())
	if err != nil {
		return "", err
	}

	next := *tx
	next.AvailedServices = append([]models.AvailedService{}, tx.AvailedServices...)
	next.AvailedServices[idx] = updated
	if err := s.replace(ctx, &next); err != nil {
		return "", err
	}
	return tx.ID, nil
}

func (s *DefaultTransactionService) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	return s.loadTransaction(ctx, id)
}

func (s *DefaultTransactionService) GetAvailedService(ctx context.Context, txID, availedID string) (*models.AvailedService, error) {
	tx, err := s.loadTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	idx := tx.FindAvailed(availedID)
	if idx < 0 {
		return nil, utils.NewNotFoundError("availed_service_id", fmt.Sprintf("availed service %s not found", availedID))
	}
	svc := tx.AvailedServices[idx]
	return &svc, nil
}

func (s *DefaultTransactionService) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, utils.NewValidationError("status", fmt.Sprintf("invalid status %q", filter.Status))
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, utils.NewValidationError("limit", "limit and offset must not be negative")
	}
	return s.Repo.List(ctx, filter)
}

func (s *DefaultTransactionService) GetFreeWashEligibility(ctx context.Context, customerID string) (*models.FreeWashEligibility, error) {
	customer, err := s.Customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, utils.NewNotFoundError("customer_id", fmt.Sprintf("customer %s not found", customerID))
	}
	return &models.FreeWashEligibility{
		CustomerID: customer.ID,
		Points:     customer.Points,
		Car:        eligibleCounts(customer.CarWashServiceCount),
		Motorcycle: eligibleCounts(customer.MotoWashServiceCount),
	}, nil
}

func (s *DefaultTransactionService) loadTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, utils.NewNotFoundError("transaction_id", fmt.Sprintf("transaction %s not found", id))
	}
	return tx, nil
}

// loadOngoing rejects edits to completed and cancelled visits.
func (s *DefaultTransactionService) loadOngoing(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := s.loadTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.Status != models.TransactionOngoing {
		return nil, utils.NewValidationError("transaction_id", fmt.Sprintf("transaction %s is %s", id, tx.Status))
	}
	return tx, nil
}

func (s *DefaultTransactionService) requireService(ctx context.Context, serviceID string) error {
	service, err := s.Catalog.GetServiceByID(ctx, serviceID)
	if err != nil {
		return err
	}
	if service == nil {
		return utils.NewNotFoundError("service_id", fmt.Sprintf("service %s not found", serviceID))
	}
	return nil
}

func (s *DefaultTransactionService) verifyEmployees(ctx context.Context, ids []string) error {
	for _, id := range ids {
		ok, err := s.Employees.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return utils.NewValidationError("assigned_employees_id", fmt.Sprintf("employee %s not found", id))
		}
	}
	return nil
}

// replace writes tx guarded by its version.
func (s *DefaultTransactionService) replace(ctx context.Context, tx *models.Transaction) error {
	tx.UpdatedAt = s.now()
	if err := s.Repo.ReplaceVersioned(ctx, tx); err != nil {
		if errors.Is(err, database.ErrVersionConflict) {
			return utils.NewConflictError("transaction_id", "transaction was modified concurrently, retry")
		}
		return err
	}
	return nil
}

func (s *DefaultTransactionService) invalidateStats(ctx context.Context) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
}

func duplicateServiceError(serviceID string) error {
	return utils.NewConflictError("service_id", fmt.Sprintf("service %s is already availed in this transaction", serviceID))
}

// Compile-time check.
var _ TransactionService = (*DefaultTransactionService)(nil)

