package cart_repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/bazario/fulfillment-service/domain/models/entities"
)

const (
	keyPrefix string = "fulfillment:cart"
)

type iCartRepositoryImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepository(client *redis.Client, ttl time.Duration) ICartRepository {
	return &iCartRepositoryImpl{client: client, ttl: ttl}
}

func cartKey(buyerId uint64) string {
	return fmt.Sprintf("%s:%d", keyPrefix, buyerId)
}

func (repo iCartRepositoryImpl) Save(ctx context.Context, cart entities.Cart) (*entities.Cart, error) {
	cart.UpdatedAt = time.Now().UTC()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = cart.UpdatedAt
	}

	data, err := json.Marshal(&cart)
	if err != nil {
		return nil, errors.Wrap(err, "marshal cart failed")
	}

	if err := repo.client.Set(ctx, cartKey(cart.BuyerId), data, repo.ttl).Err(); err != nil {
		return nil, errors.Wrap(err, "redis Set failed")
	}
	return &cart, nil
}

func (repo iCartRepositoryImpl) FindByBuyerId(ctx context.Context, buyerId uint64) (*entities.Cart, error) {
	data, err := repo.client.Get(ctx, cartKey(buyerId)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis Get failed")
	}

	var cart entities.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, errors.Wrap(err, "unmarshal cart failed")
	}
	return &cart, nil
}

func (repo iCartRepositoryImpl) DeleteByBuyerId(ctx context.Context, buyerId uint64) error {
	if err := repo.client.Del(ctx, cartKey(buyerId)).Err(); err != nil {
		return errors.Wrap(err, "redis Del failed")
	}
	return nil
}
