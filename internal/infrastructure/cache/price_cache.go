// Package cache fournit un cache Redis en lecture pour le catalogue
// (prix par espace). Jamais utilisé pour les quantités de stock: celles-ci
// ne se lisent que depuis le store transactionnel.
package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/ngandu/barresto-api/internal/application/dto"
)

// PriceCache cache des prix d'un produit. L'implémentation Noop permet de
// démarrer sans Redis.
type PriceCache interface {
	Get(ctx context.Context, productID string) ([]dto.PriceResponse, bool, error)
	Set(ctx context.Context, productID string, prices []dto.PriceResponse) error
	Invalidate(ctx context.Context, productID string) error
}

// NoopPriceCache cache désactivé.
type NoopPriceCache struct{}

func (NoopPriceCache) Get(_ context.Context, _ string) ([]dto.PriceResponse, bool, error) {
	return nil, false, nil
}
func (NoopPriceCache) Set(_ context.Context, _ string, _ []dto.PriceResponse) error { return nil }
func (NoopPriceCache) Invalidate(_ context.Context, _ string) error                 { return nil }

// RedisPriceCache implémentation Redis avec TTL.
type RedisPriceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPriceCache construit le cache Redis.
func NewRedisPriceCache(addr, password string, db int, ttl time.Duration) *RedisPriceCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisPriceCache{client: client, ttl: ttl}
}

// Ping vérifie la connexion.
func (c *RedisPriceCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close ferme le client.
func (c *RedisPriceCache) Close() error {
	return c.client.Close()
}

func priceKey(productID string) string {
	return "prices:" + productID
}

func (c *RedisPriceCache) Get(ctx context.Context, productID string) ([]dto.PriceResponse, bool, error) {
	val, err := c.client.Get(ctx, priceKey(productID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var prices []dto.PriceResponse
	if err := json.Unmarshal([]byte(val), &prices); err != nil {
		return nil, false, err
	}
	return prices, true, nil
}

func (c *RedisPriceCache) Set(ctx context.Context, productID string, prices []dto.PriceResponse) error {
	payload, err := json.Marshal(prices)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, priceKey(productID), payload, c.ttl).Err()
}

func (c *RedisPriceCache) Invalidate(ctx context.Context, productID string) error {
	return c.client.Del(ctx, priceKey(productID)).Err()
}
