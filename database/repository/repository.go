package repository

import (
	"fmt"

	"emjay/database"
	accountRepo "emjay/database/repository/account"
	bookingRepo "emjay/database/repository/booking"
	catalogRepo "emjay/database/repository/catalog"
	customerRepo "emjay/database/repository/customer"
	expenseRepo "emjay/database/repository/expense"
	messagingRepo "emjay/database/repository/messaging"
	transactionRepo "emjay/database/repository/transaction"
)

// Re-export the TransactionRepository interface and constructor.
type TransactionRepository = transactionRepo.TransactionRepository

var NewMongoTransactionRepo = transactionRepo.NewMongoTransactionRepo

// Re-export the BookingRepository interface and constructor.
type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

// Re-export the CustomerRepository interface and constructor.
type CustomerRepository = customerRepo.CustomerRepository

var NewMongoCustomerRepo = customerRepo.NewMongoCustomerRepo

// EnsureIndexes creates the indexes of every collection that has them.
func EnsureIndexes() error {
	db := database.DB()
	steps := []struct {
		name string
		fn   func() error
	}{
		{"transactions", func() error { return transactionRepo.EnsureIndexes(db.Collection("transactions")) }},
		{"bookings", func() error { return bookingRepo.EnsureIndexes(db.Collection("bookings")) }},
		{"customers", func() error { return customerRepo.EnsureIndexes(db.Collection("customers")) }},
		{"services", func() error { return catalogRepo.EnsureIndexes(db.Collection("services")) }},
		{"expenses", func() error { return expenseRepo.EnsureIndexes(db.Collection("expenses")) }},
		{"accounts", func() error { return accountRepo.EnsureIndexes(db.Collection("accounts")) }},
		{"messaging", func() error { return messagingRepo.EnsureIndexes(db) }},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}
