package models

import "time"

type AccountType string

const (
	AccountAdmin      AccountType = "ADMIN"
	AccountSupervisor AccountType = "SUPERVISOR"
)

func (a AccountType) Valid() bool {
	return a == AccountAdmin || a == AccountSupervisor
}

// Account is a back-office login.
type Account struct {
	ID           string      `bson:"id" json:"id"`
	Username     string      `bson:"username" json:"username"`
	PasswordHash string      `bson:"passwordHash" json:"-"`
	AccountType  AccountType `bson:"accountType" json:"accountType"`
	FCMToken     string      `bson:"fcmToken,omitempty" json:"-"`
	TokenHash    string      `bson:"tokenHash,omitempty" json:"-"`
	LastLoginAt  *time.Time  `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time   `bson:"createdAt" json:"createdAt"`
}

// LoginResponse is returned after a successful back-office login.
type LoginResponse struct {
	Token       string      `json:"token"`
	AccountID   string      `json:"accountId"`
	Username    string      `json:"username"`
	AccountType AccountType `json:"accountType"`
}

// Employee can be assigned to availed services.
type Employee struct {
	ID             string    `bson:"id" json:"id"`
	FirstName      string    `bson:"firstName" json:"firstName"`
	LastName       string    `bson:"lastName" json:"lastName"`
	ContactNumber  string    `bson:"contactNumber" json:"contactNumber"`
	Gender         string    `bson:"gender,omitempty" json:"gender,omitempty"`
	EmployeeTitle  string    `bson:"employeeTitle,omitempty" json:"employeeTitle,omitempty"`
	EmployeeStatus string    `bson:"employeeStatus,omitempty" json:"employeeStatus,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// Expense is a read-only input of the statistics reports.
type Expense struct {
	ID          string    `bson:"id" json:"id"`
	Category    string    `bson:"category" json:"category"`
	Description string    `bson:"description" json:"description"`
	Amount      float64   `bson:"amount" json:"amount"`
	Date        time.Time `bson:"date" json:"date"`
}
