package models

import "time"

type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleMotorcycle VehicleType = "motorcycle"
)

func (v VehicleType) Valid() bool {
	return v == VehicleCar || v == VehicleMotorcycle
}

type VehicleSize string

const (
	SizeSmall       VehicleSize = "sm"
	SizeMedium      VehicleSize = "md"
	SizeLarge       VehicleSize = "lg"
	SizeExtraLarge  VehicleSize = "xl"
	SizeExtraLarge2 VehicleSize = "xxl"
)

// VehicleSizes lists every size tier in display order.
var VehicleSizes = []VehicleSize{SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge, SizeExtraLarge2}

func (s VehicleSize) Valid() bool {
	for _, v := range VehicleSizes {
		if s == v {
			return true
		}
	}
	return false
}

type TransactionStatus string

const (
	TransactionOngoing   TransactionStatus = "ONGOING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionCancelled TransactionStatus = "CANCELLED"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionOngoing, TransactionCompleted, TransactionCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s TransactionStatus) Terminal() bool {
	return s == TransactionCompleted || s == TransactionCancelled
}

type AvailedServiceStatus string

const (
	AvailedPending   AvailedServiceStatus = "PENDING"
	AvailedOngoing   AvailedServiceStatus = "ONGOING"
	AvailedDone      AvailedServiceStatus = "DONE"
	AvailedCancelled AvailedServiceStatus = "CANCELLED"
)

func (s AvailedServiceStatus) Valid() bool {
	switch s {
	case AvailedPending, AvailedOngoing, AvailedDone, AvailedCancelled:
		return true
	}
	return false
}

type ServiceCharge string

const (
	ChargeFree    ServiceCharge = "free"
	ChargeNotFree ServiceCharge = "not free"
)

func (c ServiceCharge) Valid() bool {
	return c == ChargeFree || c == ChargeNotFree
}

// Transaction is one customer visit. It owns its availed services.
type Transaction struct {
	ID              string            `bson:"id" json:"id"`
	CustomerID      string            `bson:"customerId,omitempty" json:"customerId,omitempty"`
	VehicleType     VehicleType       `bson:"vehicleType" json:"vehicleType"`
	VehicleSize     VehicleSize       `bson:"vehicleSize" json:"vehicleSize"`
	Model           string            `bson:"model" json:"model"`
	PlateNumber     string            `bson:"plateNumber,omitempty" json:"plateNumber,omitempty"`
	ContactNumber   string            `bson:"contactNumber,omitempty" json:"contactNumber,omitempty"`
	CheckIn         time.Time         `bson:"checkIn" json:"checkIn"`
	CheckOut        *time.Time        `bson:"checkOut,omitempty" json:"checkOut,omitempty"`
	Status          TransactionStatus `bson:"status" json:"status"`
	AvailedServices []AvailedService  `bson:"availedServices" json:"availedServices"`
	Version         int               `bson:"version" json:"version"`
	CreatedAt       time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// FindAvailed returns the index of the availed service with the given id, or -1.
func (t *Transaction) FindAvailed(availedID string) int {
	for i := range t.AvailedServices {
		if t.AvailedServices[i].ID == availedID {
			return i
		}
	}
	return -1
}

// HasService reports whether a catalog service is already availed in this visit.
func (t *Transaction) HasService(serviceID string) bool {
	for i := range t.AvailedServices {
		if t.AvailedServices[i].ServiceID == serviceID {
			return true
		}
	}
	return false
}

// AvailedService is one priced service instance within a transaction.
type AvailedService struct {
	ID                  string               `bson:"id" json:"id"`
	ServiceID           string               `bson:"serviceId" json:"serviceId"`
	Price               float64              `bson:"price" json:"price"`
	Discount            float64              `bson:"discount" json:"discount"`
	Deduction           float64              `bson:"deduction" json:"deduction"`
	CompanyEarnings     float64              `bson:"companyEarnings" json:"companyEarnings"`
	EmployeeShare       float64              `bson:"employeeShare" json:"employeeShare"`
	AssignedEmployeeIDs []string             `bson:"assignedEmployeeIds" json:"assignedEmployeeIds"`
	StartDate           *time.Time           `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate             *time.Time           `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Status              AvailedServiceStatus `bson:"status" json:"status"`
	IsFree              bool                 `bson:"isFree" json:"isFree"`
	IsPaid              bool                 `bson:"isPaid" json:"isPaid"`
	IsPointsCash        bool                 `bson:"isPointsCash" json:"isPointsCash"`
}

// TransactionFilter narrows ListTransactions.
type TransactionFilter struct {
	Status TransactionStatus
	Limit  int64
	Offset int64
}
