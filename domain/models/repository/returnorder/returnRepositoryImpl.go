package return_repository

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
	collectionName string = "returnRequests"
)

var ErrorRequestNotFound = errors.New("return request not found")
var ErrorVersionUpdateFailed = errors.New("update return request version failed")
var ErrorActiveRequestExists = errors.New("active return request already exists for item")

type iReturnRepositoryImpl struct {
	collection *mongo.Collection
}

func NewReturnRepository(database *mongo.Database) (IReturnRepository, error) {
	collection := database.Collection(collectionName)

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.Indexes().CreateMany(indexCtx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "requestId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// at most one requested or approved request per order item,
			// enforced by mongo even when two creates race past the
			// application-level duplicate check
			Keys: bson.D{{Key: "orderId", Value: 1}, {Key: "itemId", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.D{
					{Key: "status", Value: bson.D{{Key: "$in", Value: bson.A{
						entities.ReturnStatusRequested, entities.ReturnStatusApproved,
					}}}},
				}),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "create return request indexes failed")
	}

	return &iReturnRepositoryImpl{collection}, nil
}

func (repo iReturnRepositoryImpl) Save(ctx context.Context, request entities.ReturnRequest) (*entities.ReturnRequest, error) {
	if request.RequestId == 0 {
		request.RequestId = entities.GenerateRequestId()
		request.Version = 0
		request.CreatedAt = time.Now().UTC()
		request.UpdatedAt = request.CreatedAt

		insertOneResult, err := repo.collection.InsertOne(ctx, &request)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, ErrorActiveRequestExists
			}
			return nil, errors.Wrap(err, "InsertOne failed")
		}
		request.ID = insertOneResult.InsertedID.(primitive.ObjectID)
		return &request, nil
	}

	currentVersion := request.Version
	request.Version++
	request.UpdatedAt = time.Now().UTC()

	updateResult, err := repo.collection.ReplaceOne(ctx,
		bson.D{{Key: "requestId", Value: request.RequestId}, {Key: "version", Value: currentVersion}},
		&request)
	if err != nil {
		return nil, errors.Wrap(err, "ReplaceOne failed")
	}
	if updateResult.MatchedCount != 1 {
		return nil, ErrorVersionUpdateFailed
	}
	return &request, nil
}

func (repo iReturnRepositoryImpl) FindById(ctx context.Context, requestId uint64) (*entities.ReturnRequest, error) {
	var request entities.ReturnRequest
	singleResult := repo.collection.FindOne(ctx, bson.D{{Key: "requestId", Value: requestId}})
	if err := singleResult.Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrorRequestNotFound
		}
		return nil, errors.Wrap(err, "FindOne failed")
	}
	if err := singleResult.Decode(&request); err != nil {
		return nil, errors.Wrap(err, "decode return request failed")
	}
	return &request, nil
}

func (repo iReturnRepositoryImpl) FindByOrderId(ctx context.Context, orderId uint64) ([]*entities.ReturnRequest, error) {
	return repo.FindByFilter(ctx, func() interface{} {
		return bson.D{{Key: "orderId", Value: orderId}}
	})
}

func (repo iReturnRepositoryImpl) FindActiveByItemId(ctx context.Context, orderId, itemId uint64) (*entities.ReturnRequest, error) {
	var request entities.ReturnRequest
	filter := bson.D{
		{Key: "orderId", Value: orderId},
		{Key: "itemId", Value: itemId},
		{Key: "status", Value: bson.D{{Key: "$in", Value: bson.A{
			entities.ReturnStatusRequested, entities.ReturnStatusApproved,
		}}}},
	}
	singleResult := repo.collection.FindOne(ctx, filter)
	if err := singleResult.Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.Wrap(err, "FindOne failed")
	}
	if err := singleResult.Decode(&request); err != nil {
		return nil, errors.Wrap(err, "decode return request failed")
	}
	return &request, nil
}

func (repo iReturnRepositoryImpl) FindByFilter(ctx context.Context, supplier func() (filter interface{})) ([]*entities.ReturnRequest, error) {
	filter := supplier()
	cursor, err := repo.collection.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "Find failed")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	requests := make([]*entities.ReturnRequest, 0, 8)
	for cursor.Next(ctx) {
		var request entities.ReturnRequest
		if err := cursor.Decode(&request); err != nil {
			return nil, errors.Wrap(err, "decode return request failed")
		}
		requests = append(requests, &request)
	}
	return requests, nil
}
