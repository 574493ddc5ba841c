package app

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/bazario/fulfillment-service/configs"
	cart_repository "github.com/bazario/fulfillment-service/domain/models/repository/cart"
	coupon_repository "github.com/bazario/fulfillment-service/domain/models/repository/coupon"
	order_repository "github.com/bazario/fulfillment-service/domain/models/repository/order"
	return_repository "github.com/bazario/fulfillment-service/domain/models/repository/returnorder"
	address_service "github.com/bazario/fulfillment-service/infrastructure/services/address"
	notify_service "github.com/bazario/fulfillment-service/infrastructure/services/notification"
	payment_service "github.com/bazario/fulfillment-service/infrastructure/services/payment"
	uploader_service "github.com/bazario/fulfillment-service/infrastructure/services/uploader"
	"github.com/bazario/fulfillment-service/infrastructure/utils/calculate"
)

type CtxKey int

const (
	CtxUserID CtxKey = iota
	CtxUserRole
	CtxAuthToken
)

var Globals struct {
	Config            *configs.Config
	ZapLogger         *zap.Logger
	Logger            *zap.SugaredLogger
	MongoClient       *mongo.Client
	MongoDatabase     *mongo.Database
	RedisClient       *redis.Client
	OrderRepository   order_repository.IOrderRepository
	ReturnRepository  return_repository.IReturnRepository
	CouponRepository  coupon_repository.ICouponRepository
	CartRepository    cart_repository.ICartRepository
	PricingCalculator calculate.IPricingCalculator
	PaymentService    payment_service.IPaymentService
	NotifyService     notify_service.INotificationService
	UploaderService   uploader_service.IUploaderService
	AddressService    address_service.IAddressService
}

func SetupMongoClient(config *configs.Config) (*mongo.Client, error) {
	uri := fmt.Sprintf("mongodb://%s:%d", config.Mongo.Host, config.Mongo.Port)

	clientOptions := options.Client().ApplyURI(uri).
		SetConnectTimeout(time.Duration(config.Mongo.ConnectionTimeout) * time.Second).
		SetMaxConnIdleTime(time.Duration(config.Mongo.MaxConnIdleTime) * time.Second).
		SetMaxPoolSize(uint64(config.Mongo.MaxPoolSize)).
		SetMinPoolSize(uint64(config.Mongo.MinPoolSize))

	if config.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username: config.Mongo.User,
			Password: config.Mongo.Pass,
		})
	}

	connectCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(config.Mongo.ConnectionTimeout)*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect failed")
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "mongo ping failed")
	}

	return client, nil
}

func SetupRedisClient(config *configs.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Redis.Host, config.Redis.Port),
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis ping failed")
	}

	return client, nil
}
