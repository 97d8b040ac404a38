package transaction

import (
	"fmt"
	"slices"
	"time"

	"emjay/models"
	"emjay/utils"
)

// availedTransitions lists the statuses reachable from each status. Staying in
// the same status is always allowed so fields can be edited.
var availedTransitions = map[models.AvailedServiceStatus][]models.AvailedServiceStatus{
	models.AvailedPending:   {models.AvailedOngoing, models.AvailedDone, models.AvailedCancelled},
	models.AvailedOngoing:   {models.AvailedPending, models.AvailedDone, models.AvailedCancelled},
	models.AvailedDone:      {models.AvailedPending, models.AvailedOngoing},
	models.AvailedCancelled: {},
}

func canTransitionAvailed(current, target models.AvailedServiceStatus) bool {
	if current == target {
		return true
	}
	next, ok := availedTransitions[current]
	if !ok {
		return false
	}
	return slices.Contains(next, target)
}

// AvailedUpdate is the full set of editable fields of an availed service.
type AvailedUpdate struct {
	Status              models.AvailedServiceStatus `json:"status"`
	Deduction           float64                     `json:"deduction"`
	Discount            float64                     `json:"discount"`
	AssignedEmployeeIDs []string                    `json:"assignedEmployeeIds"`
	IsFree              bool                        `json:"isFree"`
	IsPaid              bool                        `json:"isPaid"`
}

// ApplyAvailedUpdate returns the service after applying u, or a validation
// error. current is never modified.
func ApplyAvailedUpdate(current models.AvailedService, u AvailedUpdate, now time.Time) (models.AvailedService, error) {
	if !u.Status.Valid() {
		return current, utils.NewValidationError("status", fmt.Sprintf("invalid status %q", u.Status))
	}
	if !canTransitionAvailed(current.Status, u.Status) {
		return current, utils.NewValidationError("status",
			fmt.Sprintf("cannot change availed service status from %s to %s", current.Status, u.Status))
	}

	if u.Status == models.AvailedCancelled {
		return cancelAvailed(current), nil
	}

	switch {
	case u.Deduction < 0:
		return current, utils.NewValidationError("deduction", "deduction must not be negative")
	case u.Deduction > current.Price:
		return current, utils.NewValidationError("deduction", "deduction must not exceed the price")
	case u.Discount < 0:
		return current, utils.NewValidationError("discount", "discount must not be negative")
	}

	next := current
	next.Status = u.Status
	next.Deduction = u.Deduction
	next.Discount = u.Discount
	next.IsFree = u.IsFree
	next.IsPaid = u.IsPaid
	next.AssignedEmployeeIDs = append([]string{}, u.AssignedEmployeeIDs...)
	applyEarnings(&next)

	if current.Status != u.Status {
		stamp := now
		switch u.Status {
		case models.AvailedPending:
			next.StartDate = nil
			next.EndDate = nil
		case models.AvailedOngoing:
			next.StartDate = &stamp
			next.EndDate = nil
		case models.AvailedDone:
			next.EndDate = &stamp
		}
	}
	return next, nil
}

// cancelAvailed zeroes the money fields and unassigns the service.
func cancelAvailed(svc models.AvailedService) models.AvailedService {
	svc.Status = models.AvailedCancelled
	svc.Deduction = 0
	svc.Discount = 0
	svc.CompanyEarnings = 0
	svc.EmployeeShare = 0
	svc.AssignedEmployeeIDs = []string{}
	svc.StartDate = nil
	svc.EndDate = nil
	svc.IsFree = false
	svc.IsPaid = false
	return svc
}
