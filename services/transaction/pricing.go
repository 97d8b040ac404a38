package transaction

import (
	"emjay/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// employeeShareRate is the fraction of (price - deduction) paid to the assigned employees.
var employeeShareRate = decimal.NewFromFloat(0.4)

type EarningsInput struct {
	Price     float64
	Deduction float64
	Discount  float64
	IsFree    bool
	IsPaid    bool
}

type Earnings struct {
	EmployeeShare   float64
	CompanyEarnings float64
	Discount        float64
	IsPaid          bool
}

// ComputeEarnings splits a priced service between the employees and the company.
// A free service is fully discounted and counts as paid.
func ComputeEarnings(in EarningsInput) Earnings {
	price := decimal.NewFromFloat(in.Price)
	net := price.Sub(decimal.NewFromFloat(in.Deduction))
	share := net.Mul(employeeShareRate)

	if in.IsFree {
		return Earnings{
			EmployeeShare:   share.InexactFloat64(),
			CompanyEarnings: 0,
			Discount:        in.Price,
			IsPaid:          true,
		}
	}

	earnings := net.Sub(share).Sub(decimal.NewFromFloat(in.Discount))
	if earnings.IsNegative() {
		earnings = decimal.Zero
	}
	return Earnings{
		EmployeeShare:   share.InexactFloat64(),
		CompanyEarnings: earnings.InexactFloat64(),
		Discount:        in.Discount,
		IsPaid:          in.IsPaid,
	}
}

// NewAvailedService builds a PENDING service instance priced for intake.
func NewAvailedService(serviceID string, price float64, charge models.ServiceCharge) models.AvailedService {
	free := charge == models.ChargeFree
	e := ComputeEarnings(EarningsInput{Price: price, IsFree: free, IsPaid: free})
	return models.AvailedService{
		ID:                  uuid.New().String(),
		ServiceID:           serviceID,
		Price:               price,
		Discount:            e.Discount,
		Deduction:           0,
		CompanyEarnings:     e.CompanyEarnings,
		EmployeeShare:       e.EmployeeShare,
		AssignedEmployeeIDs: []string{},
		Status:              models.AvailedPending,
		IsFree:              free,
		IsPaid:              e.IsPaid,
	}
}

// applyEarnings recomputes the derived money fields of svc in place.
func applyEarnings(svc *models.AvailedService) {
	e := ComputeEarnings(EarningsInput{
		Price:     svc.Price,
		Deduction: svc.Deduction,
		Discount:  svc.Discount,
		IsFree:    svc.IsFree,
		IsPaid:    svc.IsPaid,
	})
	svc.EmployeeShare = e.EmployeeShare
	svc.CompanyEarnings = e.CompanyEarnings
	svc.Discount = e.Discount
	svc.IsPaid = e.IsPaid
}
