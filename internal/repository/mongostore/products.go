// internal/repository/mongostore/products.go
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
)

type productRepo struct {
	coll *mongo.Collection
}

func productFilter(q repository.ProductQuery) bson.D {
	filter := bson.D{}
	if q.Keyword != "" {
		filter = append(filter, bson.E{Key: "name", Value: bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(q.Keyword)},
			{Key: "$options", Value: "i"},
		}})
	}
	if q.CategoryID != "" {
		filter = append(filter, bson.E{Key: "category", Value: q.CategoryID})
	}
	return filter
}

func (r *productRepo) Search(ctx context.Context, q repository.ProductQuery) ([]models.Product, int64, error) {
	if q.Offset < 0 {
		return nil, 0, fmt.Errorf("negative offset %d", q.Offset)
	}
	filter := productFilter(q)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(q.Offset))
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	products := make([]models.Product, 0)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepo) TopRated(ctx context.Context, limit int) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	products := make([]models.Product, 0)
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *productRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{{Key: "category", Value: categoryID}})
}

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	if p.Reviews == nil {
		p.Reviews = []models.Review{}
	}
	_, err := r.coll.InsertOne(ctx, p)
	return translate(err)
}

func (r *productRepo) Update(ctx context.Context, p *models.Product) error {
	res, err := r.coll.UpdateOne(ctx, byID(p.ID), bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: p.Name},
		{Key: "image", Value: p.Image},
		{Key: "brand", Value: p.Brand},
		{Key: "category", Value: p.CategoryID},
		{Key: "description", Value: p.Description},
		{Key: "price", Value: p.Price},
		{Key: "countInStock", Value: p.CountInStock},
		{Key: "updatedAt", Value: p.UpdatedAt},
	}}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, byID(id))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddReview appends the review and recomputes the aggregates with a single
// pipeline update. The filter refuses products the user already reviewed, so
// two concurrent submissions from one user cannot both land.
func (r *productRepo) AddReview(ctx context.Context, productID string, review models.Review) (*models.Product, error) {
	filter := bson.D{
		{Key: "_id", Value: productID},
		{Key: "reviews.user", Value: bson.D{{Key: "$ne", Value: review.UserID}}},
	}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "reviews", Value: bson.D{{Key: "$concatArrays", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$reviews", bson.A{}}}},
				// $literal keeps user text such as "$5 off" from being read as a field path.
				bson.A{bson.D{{Key: "$literal", Value: review}}},
			}}}},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "numReviews", Value: bson.D{{Key: "$size", Value: "$reviews"}}},
			{Key: "rating", Value: bson.D{{Key: "$avg", Value: "$reviews.rating"}}},
			{Key: "updatedAt", Value: review.CreatedAt},
		}}},
	}

	var p models.Product
	err := r.coll.FindOneAndUpdate(ctx, filter, pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, guardFailed(ctx, r.coll, productID, repository.ErrDuplicate)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.D{})
	return err
}
