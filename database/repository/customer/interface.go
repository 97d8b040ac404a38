// File: database/repository/customer/interface.go
package customerRepo

import (
	"context"

	"emjay/database"
	"emjay/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	// UpdateLoyalty writes points and one wash-count list and records txID
	// as credited, when the stored version still equals expectedVersion and
	// txID has not been credited yet.
	UpdateLoyalty(ctx context.Context, id string, expectedVersion int, txID string, points int, vehicle models.VehicleType, counts []models.WashServiceCount) error
	// RevertLoyalty restores balances written by UpdateLoyalty and forgets
	// txID, under the same version guard.
	RevertLoyalty(ctx context.Context, id string, expectedVersion int, txID string, points int, vehicle models.VehicleType, counts []models.WashServiceCount) error
}

type mongoCustomerRepo struct {
	coll *mongo.Collection
}

func NewMongoCustomerRepo() CustomerRepository {
	return &mongoCustomerRepo{
		coll: database.DB().Collection("customers"),
	}
}

func NewCustomerRepoWithCollection(coll *mongo.Collection) CustomerRepository {
	return &mongoCustomerRepo{coll: coll}
}
