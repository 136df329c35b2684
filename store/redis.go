package store

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the configuration for the Redis-backed store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Key is the hash key holding the credentials. Defaults to
	// "blogclient:session".
	Key string
}

// Redis keeps credentials in a single Redis hash so that several
// processes sharing one logical session (workers, bots) see the same
// token after a refresh. Both fields are written with one HSET and
// removed with one DEL, which keeps Save and Clear atomic.
type Redis struct {
	client *redis.Client
	key    string
}

func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	options := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	client := redis.NewClient(options)

	// Ping the Redis server to ensure the connection is established
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	key := cfg.Key
	if key == "" {
		key = "blogclient:session"
	}
	return &Redis{client: client, key: key}, nil
}

// NewRedisWithClient wraps an already-connected client, for hosts that
// manage their own Redis connection pool.
func NewRedisWithClient(client *redis.Client, key string) *Redis {
	if key == "" {
		key = "blogclient:session"
	}
	return &Redis{client: client, key: key}
}

func (r *Redis) Load(ctx context.Context) (Credentials, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return Credentials{}, err
	}

	token, ok := fields[KeyAccessToken]
	if !ok || token == "" {
		return Credentials{}, ErrNotFound
	}
	return Credentials{
		AccessToken: token,
		User:        []byte(fields[KeyUser]),
	}, nil
}

func (r *Redis) Save(ctx context.Context, creds Credentials) error {
	return r.client.HSet(ctx, r.key,
		KeyAccessToken, creds.AccessToken,
		KeyUser, string(creds.User),
	).Err()
}

func (r *Redis) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
