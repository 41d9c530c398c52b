package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ashutosh1890/Air-Cargo-booking/config"
	"github.com/ashutosh1890/Air-Cargo-booking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client    *redis.Client
	routesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, routesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		routesTTL: routesTTL,
	}
}

func (c *RedisCache) GetRoutes(ctx context.Context, origin, destination, date string) ([]domain.RouteOption, error) {
	data, err := c.client.Get(ctx, routesKey(origin, destination, date)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var routes []domain.RouteOption
	if err := json.Unmarshal(data, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func (c *RedisCache) SetRoutes(ctx context.Context, origin, destination, date string, routes []domain.RouteOption) error {
	payload, err := json.Marshal(routes)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, routesKey(origin, destination, date), payload, c.routesTTL).Err()
}

func routesKey(origin, destination, date string) string {
	return fmt.Sprintf("cache:routes:%s:%s:%s", origin, destination, date)
}
