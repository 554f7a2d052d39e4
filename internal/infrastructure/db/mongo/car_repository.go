package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rentwheels/rental-api/internal/core/domain"
	"github.com/rentwheels/rental-api/internal/core/ports"
)

const carsCollection = "cars"

type CarRepository struct {
	coll *mongo.Collection
}

func NewCarRepository(db *mongo.Database) *CarRepository {
	return &CarRepository{coll: db.Collection(carsCollection)}
}

type mongoCar struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Make        string             `bson:"make"`
	Model       string             `bson:"model"`
	Year        int                `bson:"year"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category,omitempty"`
	Description string             `bson:"description,omitempty"`
	Quantity    int                `bson:"quantity"`
	InStock     bool               `bson:"in_stock"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (r *CarRepository) Insert(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCar{
		Make:        car.Make,
		Model:       car.CarModel,
		Year:        car.Year,
		Price:       car.Price,
		Category:    car.Category,
		Description: car.Description,
		Quantity:    car.Quantity,
		InStock:     car.InStock,
		CreatedAt:   car.CreatedAt,
		UpdatedAt:   car.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert car: %w", err)
	}

	created := *car
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// List returns a page of cars matching filter plus the total count.
func (r *CarRepository) List(ctx context.Context, filter ports.ListCarsFilter) ([]*domain.Car, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Make != "" {
		query["make"] = filter.Make
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		rx := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"make": rx},
			bson.M{"model": rx},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count cars: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find cars: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoCar
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode cars: %w", err)
	}

	cars := make([]*domain.Car, len(docs))
	for i, doc := range docs {
		cars[i] = doc.toDomain()
	}
	return cars, total, nil
}

func (r *CarRepository) FindByID(ctx context.Context, id string) (*domain.Car, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// An id the store could never have assigned identifies no record.
		return nil, domain.ErrCarNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoCar
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCarNotFound
		}
		return nil, fmt.Errorf("find car: %w", err)
	}
	return doc.toDomain(), nil
}

// UpdateByID applies a partial field replacement and returns the post-update
// record. An update carrying no fields degenerates to a read.
func (r *CarRepository) UpdateByID(ctx context.Context, id string, update ports.CarUpdate) (*domain.Car, error) {
	if update.Empty() {
		return r.FindByID(ctx, id)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCarNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Make != nil {
		set["make"] = *update.Make
	}
	if update.CarModel != nil {
		set["model"] = *update.CarModel
	}
	if update.Year != nil {
		set["year"] = *update.Year
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Quantity != nil {
		set["quantity"] = *update.Quantity
	}
	if update.InStock != nil {
		set["in_stock"] = *update.InStock
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoCar
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCarNotFound
		}
		return nil, fmt.Errorf("update car: %w", err)
	}
	return doc.toDomain(), nil
}

// DeleteByID removes the record and returns the deleted document.
func (r *CarRepository) DeleteByID(ctx context.Context, id string) (*domain.Car, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCarNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoCar
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCarNotFound
		}
		return nil, fmt.Errorf("delete car: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the indexes the list filters rely on.
func (r *CarRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "make", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (c mongoCar) toDomain() *domain.Car {
	return &domain.Car{
		ID:          c.ID.Hex(),
		Make:        c.Make,
		CarModel:    c.Model,
		Year:        c.Year,
		Price:       c.Price,
		Category:    c.Category,
		Description: c.Description,
		Quantity:    c.Quantity,
		InStock:     c.InStock,
		CreatedAt:   c.CreatedAt.UTC(),
		UpdatedAt:   c.UpdatedAt.UTC(),
	}
}
