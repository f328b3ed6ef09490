package catalog

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
)

// Repository reads the hosted catalog collections. Consumers define this
// interface, not the MongoDB implementation.
type Repository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCollections(ctx context.Context) ([]domain.Collection, error)
	ListColors(ctx context.Context) ([]domain.Color, error)
}

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}
