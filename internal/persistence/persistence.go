package persistence

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gomodule/redigo/redis"
)

// Engine stores question banks in Redis. A nil *Engine is valid and behaves
// like an empty store, so callers do not need to check whether Redis is
// configured.
type Engine struct {
	pool *redis.Pool
}

func InitRedis(redisHost, redisPassword string) *Engine {
	if redisHost == "" {
		log.Print("redis host not configured - question banks will not be persisted")
		return nil
	}

	pool := redis.Pool{
		MaxIdle:     3,
		IdleTimeout: 240 * time.Second,

		Dial: func() (redis.Conn, error) {
			options := []redis.DialOption{
				redis.DialConnectTimeout(5 * time.Second),
			}
			if redisPassword != "" {
				options = append(options, redis.DialPassword(redisPassword))
			}
			return redis.Dial("tcp", redisHost, options...)
		},

		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}

	return &Engine{pool: &pool}
}

// WaitForRedis blocks until Redis accepts a connection or ctx is done.
func (engine *Engine) WaitForRedis(ctx context.Context) error {
	if engine == nil {
		return nil
	}

	for {
		conn, err := engine.pool.GetContext(ctx)
		if err == nil {
			_, err = conn.Do("PING")
			conn.Close()
			if err == nil {
				return nil
			}
		}
		log.Printf("could not get connection to redis (%v), sleeping...", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
}

func (engine *Engine) Close() {
	if engine == nil {
		return
	}
	engine.pool.Close()
	log.Print("persistence engine shutdown")
}

// Keys returns every key under prefix, without the prefix.
func (engine *Engine) Keys(ctx context.Context, prefix string) ([]string, error) {
	if engine == nil {
		return []string{}, nil
	}
	conn, err := engine.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting redis connection: %v", err)
	}
	defer conn.Close()

	iter := 0
	keys := []string{}
	pattern := prefix + ":*"
	for {
		arr, err := redis.Values(conn.Do("SCAN", iter, "MATCH", pattern))
		if err != nil {
			return keys, fmt.Errorf("error retrieving %s keys: %v", pattern, err)
		}

		iter, _ = redis.Int(arr[0], nil)
		k, _ := redis.Strings(arr[1], nil)
		for _, key := range k {
			keys = append(keys, key[len(prefix)+1:])
		}
		if iter == 0 {
			break
		}
	}

	return keys, nil
}

// Get returns redis.ErrNil (wrapped) when the key does not exist.
func (engine *Engine) Get(ctx context.Context, key string) ([]byte, error) {
	if engine == nil {
		return nil, fmt.Errorf("error getting value for key %s: %w", key, redis.ErrNil)
	}
	conn, err := engine.pool.GetContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting redis connection: %v", err)
	}
	defer conn.Close()

	data, err := redis.Bytes(conn.Do("GET", key))
	if err != nil {
		return nil, fmt.Errorf("error getting value for key %s: %w", key, err)
	}
	return data, nil
}

func (engine *Engine) Set(ctx context.Context, key string, value []byte) error {
	if engine == nil {
		return fmt.Errorf("redis not configured")
	}
	conn, err := engine.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("error getting redis connection: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Do("SET", key, value); err != nil {
		return fmt.Errorf("error setting key %s in redis: %v", key, err)
	}
	return nil
}

func (engine *Engine) Delete(ctx context.Context, key string) error {
	if engine == nil {
		return nil
	}
	conn, err := engine.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("error getting redis connection: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Do("DEL", key); err != nil {
		return fmt.Errorf("error deleting key %s from redis: %v", key, err)
	}
	return nil
}

// IsNotFound reports whether err came from reading a missing key.
func IsNotFound(err error) bool {
	return errors.Is(err, redis.ErrNil)
}
