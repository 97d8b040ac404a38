// File: database/repository/employee/employee_mongo.go
package employeeRepo

import (
	"context"
	"fmt"
	"time"

	"emjay/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EmployeeRepository interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type mongoEmployeeRepo struct {
	coll *mongo.Collection
}

func NewMongoEmployeeRepo() EmployeeRepository {
	return &mongoEmployeeRepo{coll: database.DB().Collection("employees")}
}

func (r *mongoEmployeeRepo) Exists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to look up employee %s: %w", id, err)
	}
	return n > 0, nil
}
