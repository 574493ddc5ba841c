package coupon_repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bazario/fulfillment-service/domain/models/entities"
)

const (
	collectionName string = "coupons"
)

var ErrorCouponNotFound = errors.New("coupon not found")

type iCouponRepositoryImpl struct {
	collection *mongo.Collection
}

func NewCouponRepository(database *mongo.Database) (ICouponRepository, error) {
	collection := database.Collection(collectionName)

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.Indexes().CreateOne(indexCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, errors.Wrap(err, "create coupon index failed")
	}

	return &iCouponRepositoryImpl{collection}, nil
}

func (repo iCouponRepositoryImpl) Save(ctx context.Context, coupon entities.Coupon) (*entities.Coupon, error) {
	if coupon.IsIdEmpty() {
		coupon.CreatedAt = time.Now().UTC()
		coupon.UpdatedAt = coupon.CreatedAt
		insertOneResult, err := repo.collection.InsertOne(ctx, &coupon)
		if err != nil {
			return nil, errors.Wrap(err, "InsertOne failed")
		}
		coupon.ID = insertOneResult.InsertedID.(primitive.ObjectID)
		return &coupon, nil
	}

	coupon.UpdatedAt = time.Now().UTC()
	updateResult, err := repo.collection.ReplaceOne(ctx,
		bson.D{{Key: "code", Value: coupon.Code}}, &coupon)
	if err != nil {
		return nil, errors.Wrap(err, "ReplaceOne failed")
	}
	if updateResult.MatchedCount != 1 {
		return nil, ErrorCouponNotFound
	}
	return &coupon, nil
}

func (repo iCouponRepositoryImpl) FindByCode(ctx context.Context, code string) (*entities.Coupon, error) {
	var coupon entities.Coupon
	singleResult := repo.collection.FindOne(ctx, bson.D{{Key: "code", Value: code}})
	if err := singleResult.Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrorCouponNotFound
		}
		return nil, errors.Wrap(err, "FindOne failed")
	}
	if err := singleResult.Decode(&coupon); err != nil {
		return nil, errors.Wrap(err, "decode coupon failed")
	}
	return &coupon, nil
}

func (repo iCouponRepositoryImpl) ExistsByCode(ctx context.Context, code string) (bool, error) {
	count, err := repo.collection.CountDocuments(ctx, bson.D{{Key: "code", Value: code}})
	if err != nil {
		return false, errors.Wrap(err, "CountDocuments failed")
	}
	return count > 0, nil
}
