package settings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Hash field names under the settings key.
const (
	fieldMPG       = "mpg"
	fieldFuelPrice = "fuel_price"
	fieldSMSConfig = "sms_config"
)

// DefaultRedisKey is the hash key settings are stored under.
const DefaultRedisKey = "gigpulse:settings"

// RedisStore persists settings in a redis hash.
type RedisStore struct {
	client *redis.Client
	key    string
}

// RedisOption applies a configuration option to the RedisStore.
type RedisOption func(*RedisStore)

// WithKey overrides the hash key settings are stored under.
func WithKey(key string) RedisOption {
	return func(s *RedisStore) {
		if key != "" {
			s.key = key
		}
	}
}

// NewRedisStore creates a settings store backed by the given client.
func NewRedisStore(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, key: DefaultRedisKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the settings hash. Absent fields keep their defaults, so a
// fresh deployment loads cleanly.
func (s *RedisStore) Load(ctx context.Context) (Values, error) {
	v := Defaults()

	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return Values{}, fmt.Errorf("settings load: %w", err)
	}

	if raw, ok := fields[fieldMPG]; ok {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			v.MPG = f
		}
	}
	if raw, ok := fields[fieldFuelPrice]; ok {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			v.FuelPrice = f
		}
	}
	if raw, ok := fields[fieldSMSConfig]; ok {
		v.SMSConfig = raw
	}
	return v, nil
}

// Save writes all three fields in one HSET.
func (s *RedisStore) Save(ctx context.Context, v Values) error {
	err := s.client.HSet(ctx, s.key,
		fieldMPG, strconv.FormatFloat(v.MPG, 'f', -1, 64),
		fieldFuelPrice, strconv.FormatFloat(v.FuelPrice, 'f', -1, 64),
		fieldSMSConfig, v.SMSConfig,
	).Err()
	if err != nil {
		return fmt.Errorf("settings save: %w", err)
	}
	return nil
}
