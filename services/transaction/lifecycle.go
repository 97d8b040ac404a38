package transaction

import (
	"fmt"
	"slices"
	"time"

	"emjay/models"
	"emjay/utils"
)

var transactionTransitions = map[models.TransactionStatus][]models.TransactionStatus{
	models.TransactionOngoing: {models.TransactionCompleted, models.TransactionCancelled},
}

// ValidateTransition rejects everything except leaving ONGOING for a terminal status.
func ValidateTransition(current, target models.TransactionStatus) error {
	if !target.Valid() {
		return utils.NewValidationError("status", fmt.Sprintf("invalid status %q", target))
	}
	if !slices.Contains(transactionTransitions[current], target) {
		return utils.NewValidationError("status",
			fmt.Sprintf("cannot change transaction status from %s to %s", current, target))
	}
	return nil
}

// CheckCompletable returns the first completion precondition tx violates.
func CheckCompletable(tx *models.Transaction) error {
	allCancelled := true
	for _, svc := range tx.AvailedServices {
		if svc.Status != models.AvailedCancelled {
			allCancelled = false
			break
		}
	}
	if allCancelled {
		return utils.NewValidationError("status", "cannot complete a transaction whose services are all cancelled")
	}

	for _, svc := range tx.AvailedServices {
		if svc.Status == models.AvailedPending || svc.Status == models.AvailedOngoing {
			return utils.NewValidationError("status", "all availed services must be done or cancelled before completing")
		}
	}

	for _, svc := range tx.AvailedServices {
		if svc.Status == models.AvailedDone && len(svc.AssignedEmployeeIDs) == 0 {
			return utils.NewValidationError("assigned_employees_id",
				fmt.Sprintf("availed service %s is done but has no assigned employees", svc.ID))
		}
	}
	return nil
}

// CancelTransaction returns a cancelled copy of tx with every service reset.
func CancelTransaction(tx models.Transaction, now time.Time) models.Transaction {
	services := make([]models.AvailedService, len(tx.AvailedServices))
	for i, svc := range tx.AvailedServices {
		services[i] = cancelAvailed(svc)
	}
	tx.AvailedServices = services
	tx.Status = models.TransactionCancelled
	checkOut := now
	tx.CheckOut = &checkOut
	return tx
}

// CompleteTransaction returns a completed copy of tx. Preconditions are the caller's.
func CompleteTransaction(tx models.Transaction, now time.Time) models.Transaction {
	tx.AvailedServices = slices.Clone(tx.AvailedServices)
	tx.Status = models.TransactionCompleted
	checkOut := now
	tx.CheckOut = &checkOut
	return tx
}
