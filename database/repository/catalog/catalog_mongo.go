// File: database/repository/catalog/catalog_mongo.go
package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"emjay/database"
	"emjay/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CatalogRepository reads the service catalog.
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	GetServicesByIDs(ctx context.Context, ids []string) ([]models.Service, error)
}

type mongoCatalogRepo struct {
	coll *mongo.Collection
}

func NewMongoCatalogRepo() CatalogRepository {
	return &mongoCatalogRepo{coll: database.DB().Collection("services")}
}

func NewCatalogRepoWithCollection(coll *mongo.Collection) CatalogRepository {
	return &mongoCatalogRepo{coll: coll}
}

// GetServiceByID returns nil, nil when the service is absent.
func (r *mongoCatalogRepo) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.Service
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	return &s, nil
}

func (r *mongoCatalogRepo) GetServicesByIDs(ctx context.Context, ids []string) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	defer cursor.Close(ctx)

	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}

// EnsureIndexes creates the necessary indexes on the services collection.
func EnsureIndexes(coll *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create service indexes: %w", err)
	}
	return nil
}
