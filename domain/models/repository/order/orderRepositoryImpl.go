package order_repository

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
	collectionName string = "orders"
)

var ErrorUpdateFailed = errors.New("update order failed")
var ErrorVersionUpdateFailed = errors.New("update order version failed")
var ErrorPageNotAvailable = errors.New("page not available")
var ErrorTotalCountExceeded = errors.New("total count exceeded")

type iOrderRepositoryImpl struct {
	collection *mongo.Collection
}

func NewOrderRepository(database *mongo.Database) (IOrderRepository, error) {
	collection := database.Collection(collectionName)

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.Indexes().CreateMany(indexCtx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orderId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "buyerInfo.buyerId", Value: 1}}},
		{Keys: bson.D{{Key: "vendorInfo.vendorId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "create order indexes failed")
	}

	return &iOrderRepositoryImpl{collection}, nil
}

// Save inserts a new order or replaces an existing one guarded by the
// optimistic version counter; a concurrent writer that persisted first
// makes the replace match zero documents and the caller gets
// ErrorVersionUpdateFailed instead of overwriting newer state.
func (repo iOrderRepositoryImpl) Save(ctx context.Context, order entities.Order) (*entities.Order, error) {
	if order.OrderId == 0 {
		return repo.Insert(ctx, order)
	}

	currentVersion := order.Version
	order.Version++
	order.UpdatedAt = time.Now().UTC()

	updateResult, err := repo.collection.ReplaceOne(ctx,
		bson.D{{Key: "orderId", Value: order.OrderId}, {Key: "version", Value: currentVersion}},
		&order)
	if err != nil {
		return nil, errors.Wrap(err, "ReplaceOne failed")
	}

	if updateResult.MatchedCount != 1 {
		return nil, ErrorVersionUpdateFailed
	}

	return &order, nil
}

func (repo iOrderRepositoryImpl) Insert(ctx context.Context, order entities.Order) (*entities.Order, error) {
	if order.OrderId == 0 {
		order.OrderId = entities.GenerateOrderId()
		order.OrderNumber = entities.GenerateOrderNumber(order.OrderId)
	}

	for _, item := range order.Items {
		if item.ItemId == 0 {
			item.ItemId = entities.GenerateOrderId()
		}
	}

	order.Version = 0
	order.DocVersion = entities.DocumentVersion
	order.CreatedAt = time.Now().UTC()
	order.UpdatedAt = order.CreatedAt

	insertOneResult, err := repo.collection.InsertOne(ctx, &order)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			for mongo.IsDuplicateKeyError(err) {
				order.OrderId = entities.GenerateOrderId()
				order.OrderNumber = entities.GenerateOrderNumber(order.OrderId)
				insertOneResult, err = repo.collection.InsertOne(ctx, &order)
			}
			if err != nil {
				return nil, errors.Wrap(err, "InsertOne failed")
			}
		} else {
			return nil, errors.Wrap(err, "InsertOne failed")
		}
	}
	order.ID = insertOneResult.InsertedID.(primitive.ObjectID)
	return &order, nil
}

func (repo iOrderRepositoryImpl) FindById(ctx context.Context, orderId uint64) (*entities.Order, error) {
	var order entities.Order
	singleResult := repo.collection.FindOne(ctx, bson.D{{Key: "orderId", Value: orderId}})
	if err := singleResult.Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.Wrapf(err, "order %d not found", orderId)
		}
		return nil, errors.Wrap(err, "FindOne failed")
	}
	if err := singleResult.Decode(&order); err != nil {
		return nil, errors.Wrap(err, "decode order failed")
	}
	return &order, nil
}

func (repo iOrderRepositoryImpl) FindByFilter(ctx context.Context, supplier func() (filter interface{})) ([]*entities.Order, error) {
	filter := supplier()
	cursor, err := repo.collection.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "Find failed")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	orders := make([]*entities.Order, 0, 16)
	for cursor.Next(ctx) {
		var order entities.Order
		if err := cursor.Decode(&order); err != nil {
			return nil, errors.Wrap(err, "decode order failed")
		}
		orders = append(orders, &order)
	}

	return orders, nil
}

func (repo iOrderRepositoryImpl) FindByFilterWithPage(ctx context.Context, supplier func() (filter interface{}), page, perPage int64) ([]*entities.Order, int64, error) {
	if page <= 0 || perPage <= 0 {
		return nil, 0, ErrorPageNotAvailable
	}

	filter := supplier()
	totalCount, err := repo.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "CountDocuments failed")
	}

	if totalCount == 0 {
		return []*entities.Order{}, 0, nil
	}

	// total 160 perPage 30 => total page 6
	availablePages := totalCount / perPage
	if totalCount%perPage != 0 {
		availablePages++
	}

	if page > availablePages {
		return nil, totalCount, ErrorTotalCountExceeded
	}

	offset := (page - 1) * perPage
	findOptions := options.Find().SetSkip(offset).SetLimit(perPage)

	cursor, err := repo.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, errors.Wrap(err, "Find failed")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	orders := make([]*entities.Order, 0, perPage)
	for cursor.Next(ctx) {
		var order entities.Order
		if err := cursor.Decode(&order); err != nil {
			return nil, 0, errors.Wrap(err, "decode order failed")
		}
		orders = append(orders, &order)
	}

	return orders, totalCount, nil
}

func (repo iOrderRepositoryImpl) ExistsById(ctx context.Context, orderId uint64) (bool, error) {
	count, err := repo.collection.CountDocuments(ctx, bson.D{{Key: "orderId", Value: orderId}})
	if err != nil {
		return false, errors.Wrap(err, "CountDocuments failed")
	}
	return count > 0, nil
}

func (repo iOrderRepositoryImpl) Count(ctx context.Context) (int64, error) {
	count, err := repo.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, errors.Wrap(err, "CountDocuments failed")
	}
	return count, nil
}
