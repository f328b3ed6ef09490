package catalog

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fahd-ahsayni/nelly-store-sub000/internal/domain"
)

type mongoRepository struct {
	products    *mongo.Collection
	collections *mongo.Collection
	colors      *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{
		products:    db.Collection("products"),
		collections: db.Collection("collections"),
		colors:      db.Collection("colors"),
	}
}

// productDoc keeps the color join as raw BSON. Depending on how a record was
// written, the backend stores the expansion either as an array of color
// documents or as a single embedded document; normalizeColorJoin converts
// both into the one canonical shape before anything enters domain logic.
type productDoc struct {
	ID           string       `bson:"_id"`
	Name         string       `bson:"name"`
	Price        float64      `bson:"price"`
	Rating       float64      `bson:"rating"`
	CollectionID string       `bson:"collection_id"`
	Colors       bson.RawValue `bson:"colors"`
	Sizes        []string     `bson:"sizes"`
	InStock      bool         `bson:"in_stock"`
	Images       []string     `bson:"images"`
	CreatedAt    time.Time    `bson:"created_at"`
	UpdatedAt    time.Time    `bson:"updated_at"`
}

type colorDoc struct {
	Name          string `bson:"name"`
	Hex           string `bson:"hex"`
	SelectedClass string `bson:"selected_class"`
}

func (r *mongoRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.products.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		colors, err := normalizeColorJoin(doc.Colors)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize colors for product %s: %w", doc.ID, err)
		}
		products = append(products, domain.Product{
			ID:           doc.ID,
			Name:         doc.Name,
			Price:        doc.Price,
			Rating:       doc.Rating,
			CollectionID: doc.CollectionID,
			Colors:       colors,
			Sizes:        doc.Sizes,
			InStock:      doc.InStock,
			Images:       doc.Images,
			CreatedAt:    doc.CreatedAt,
			UpdatedAt:    doc.UpdatedAt,
		})
	}
	return products, nil
}

func (r *mongoRepository) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collections.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query collections: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID          string `bson:"_id"`
		Name        string `bson:"name"`
		Description string `bson:"description"`
		Image       string `bson:"image"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode collections: %w", err)
	}

	collections := make([]domain.Collection, 0, len(docs))
	for _, doc := range docs {
		collections = append(collections, domain.Collection{
			ID:          doc.ID,
			Name:        doc.Name,
			Description: doc.Description,
			Image:       doc.Image,
		})
	}
	return collections, nil
}

func (r *mongoRepository) ListColors(ctx context.Context) ([]domain.Color, error) {
	cursor, err := r.colors.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query colors: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []colorDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode colors: %w", err)
	}

	colors := make([]domain.Color, 0, len(docs))
	for _, doc := range docs {
		colors = append(colors, domain.Color{
			Name:          doc.Name,
			Hex:           doc.Hex,
			SelectedClass: doc.SelectedClass,
		})
	}
	return colors, nil
}

// normalizeColorJoin converts whatever shape the backend returned for the
// color join into a canonical slice. Missing and null joins mean the product
// simply has no color variants.
func normalizeColorJoin(raw bson.RawValue) ([]domain.ColorVariant, error) {
	if raw.Value == nil || raw.Type == bson.TypeNull || raw.Type == bson.TypeUndefined {
		return nil, nil
	}

	switch raw.Type {
	case bson.TypeArray:
		var docs []colorDoc
		if err := raw.Unmarshal(&docs); err != nil {
			return nil, fmt.Errorf("unmarshal color array: %w", err)
		}
		variants := make([]domain.ColorVariant, 0, len(docs))
		for _, doc := range docs {
			variants = append(variants, domain.ColorVariant{
				Name:          doc.Name,
				Hex:           doc.Hex,
				SelectedClass: doc.SelectedClass,
			})
		}
		return variants, nil

	case bson.TypeEmbeddedDocument:
		var doc colorDoc
		if err := raw.Unmarshal(&doc); err != nil {
			return nil, fmt.Errorf("unmarshal color document: %w", err)
		}
		return []domain.ColorVariant{{
			Name:          doc.Name,
			Hex:           doc.Hex,
			SelectedClass: doc.SelectedClass,
		}}, nil

	default:
		return nil, fmt.Errorf("unexpected color join type %s", raw.Type)
	}
}
