package models

import "time"

type StatisticsFilter string

const (
	FilterDaily   StatisticsFilter = "daily"
	FilterWeekly  StatisticsFilter = "weekly"
	FilterMonthly StatisticsFilter = "monthly"
	FilterYearly  StatisticsFilter = "yearly"
)

func (f StatisticsFilter) Valid() bool {
	switch f {
	case FilterDaily, FilterWeekly, FilterMonthly, FilterYearly:
		return true
	}
	return false
}

// IncomePeriod holds the summed DONE-service figures of one period.
type IncomePeriod struct {
	Period          string  `json:"period"`
	GrossIncome     float64 `json:"grossIncome"`
	CompanyEarnings float64 `json:"companyEarnings"`
	EmployeeShare   float64 `json:"employeeShare"`
	Deduction       float64 `json:"deduction"`
	Discount        float64 `json:"discount"`
}

type ExpensePeriod struct {
	Period string  `json:"period"`
	Amount float64 `json:"amount"`
}

// ServiceLine is one DONE availed service flattened for drill-down.
type ServiceLine struct {
	TransactionID       string    `json:"transactionId"`
	AvailedServiceID    string    `json:"availedServiceId"`
	ServiceID           string    `json:"serviceId"`
	ServiceTitle        string    `json:"serviceTitle"`
	Price               float64   `json:"price"`
	CompanyEarnings     float64   `json:"companyEarnings"`
	EmployeeShare       float64   `json:"employeeShare"`
	Deduction           float64   `json:"deduction"`
	Discount            float64   `json:"discount"`
	AssignedEmployeeIDs []string  `json:"assignedEmployeeIds"`
	CustomerID          string    `json:"customerId,omitempty"`
	Date                time.Time `json:"date"`
}

type Statistics struct {
	Income       []IncomePeriod  `json:"income"`
	Expenses     []ExpensePeriod `json:"expenses"`
	Transactions []ServiceLine   `json:"transactions"`
}

// SalesReport is the daily series of an arbitrary date range.
type SalesReport struct {
	Sales        []IncomePeriod `json:"sales"`
	Transactions []ServiceLine  `json:"transactions"`
}

// CompletedSummary totals the DONE services of completed visits.
type CompletedSummary struct {
	GrossIncome     float64       `json:"grossIncome"`
	CompanyEarnings float64       `json:"companyEarnings"`
	EmployeeShare   float64       `json:"employeeShare"`
	Deduction       float64       `json:"deduction"`
	Discount        float64       `json:"discount"`
	Count           int           `json:"count"`
	Transactions    []ServiceLine `json:"transactions"`
}

// CompletedFilter narrows GetCompletedSummary. EmployeeIDs matches the exact assigned set.
type CompletedFilter struct {
	Start       time.Time
	End         time.Time
	CustomerID  string
	EmployeeIDs []string
}
