// internal/repository/mongostore/orders.go
package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
)

var newestFirst = options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

type orderRepo struct {
	coll *mongo.Collection
}

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	_, err := r.coll.InsertOne(ctx, o)
	return translate(err)
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&o); err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *orderRepo) find(ctx context.Context, filter bson.D) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	cursor, err := r.coll.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.find(ctx, bson.D{{Key: "user", Value: userID}})
}

func (r *orderRepo) List(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.D{})
}

// transition applies update only while guard holds and returns the updated order.
func (r *orderRepo) transition(ctx context.Context, id string, guard bson.D, update bson.D) (*models.Order, error) {
	filter := append(byID(id), guard...)

	var o models.Order
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, guardFailed(ctx, r.coll, id, repository.ErrPrecondition)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) MarkPaid(ctx context.Context, id string, paidAt time.Time, result models.PaymentResult) (*models.Order, error) {
	return r.transition(ctx, id,
		bson.D{{Key: "isPaid", Value: false}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "isPaid", Value: true},
			{Key: "paidAt", Value: paidAt},
			{Key: "paymentResult", Value: result},
			{Key: "updatedAt", Value: paidAt},
		}}},
	)
}

func (r *orderRepo) MarkDelivered(ctx context.Context, id string, deliveredAt time.Time, requirePaid bool) (*models.Order, error) {
	guard := bson.D{{Key: "isDelivered", Value: false}}
	if requirePaid {
		guard = append(guard, bson.E{Key: "isPaid", Value: true})
	}
	return r.transition(ctx, id, guard,
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "isDelivered", Value: true},
			{Key: "deliveredAt", Value: deliveredAt},
			{Key: "updatedAt", Value: deliveredAt},
		}}},
	)
}

func (r *orderRepo) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.D{})
	return err
}
