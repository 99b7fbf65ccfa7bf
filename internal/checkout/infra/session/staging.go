package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dimasqi/storefront/internal/checkout/domain"
	orderdomain "github.com/dimasqi/storefront/internal/order/domain"
	"github.com/redis/go-redis/v9"
)

const (
	shippingField = "shipping_data"
	paymentField  = "payment_data"
)

// RedisStaging keeps in-progress checkout details in a per-session redis
// hash. Data lives until commit clears it, a later submission replaces it,
// or the TTL (the session lifetime) runs out.
type RedisStaging struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStaging(client *redis.Client, ttl time.Duration) *RedisStaging {
	return &RedisStaging{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStaging) Put(ctx context.Context, sessionID string, details domain.StagedDetails) error {
	shipping, err := json.Marshal(details.Shipping)
	if err != nil {
		return fmt.Errorf("marshal shipping data: %w", err)
	}

	key := stagingKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, shippingField, shipping, paymentField, string(details.Payment))
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("stage checkout details: %w", err)
	}
	return nil
}

func (s *RedisStaging) Get(ctx context.Context, sessionID string) (domain.StagedDetails, bool, error) {
	fields, err := s.client.HGetAll(ctx, stagingKey(sessionID)).Result()
	if err != nil {
		return domain.StagedDetails{}, false, fmt.Errorf("read staged details: %w", err)
	}

	shipping, okShip := fields[shippingField]
	payment, okPay := fields[paymentField]
	if !okShip || !okPay {
		return domain.StagedDetails{}, false, nil
	}

	var details domain.StagedDetails
	if err := json.Unmarshal([]byte(shipping), &details.Shipping); err != nil {
		return domain.StagedDetails{}, false, fmt.Errorf("unmarshal shipping data: %w", err)
	}
	details.Payment = orderdomain.PaymentMethod(payment)

	return details, true, nil
}

func (s *RedisStaging) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, stagingKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear staged details: %w", err)
	}
	return nil
}

func stagingKey(sessionID string) string {
	return fmt.Sprintf("checkout:%s", sessionID)
}
