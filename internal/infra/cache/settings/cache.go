package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

const settingsKey = "cache:global_settings"

var (
	// ErrCacheRead возвращается при ошибке чтения из Redis
	ErrCacheRead = errors.New("settings.cache: failed to read")

	// ErrCacheWrite возвращается при ошибке записи в Redis
	ErrCacheWrite = errors.New("settings.cache: failed to write")
)

// Cache кеш глобальных настроек в Redis
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewClient создает клиент Redis
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

// NewCache создает кеш настроек
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

type cachedSettings struct {
	ServiceFee string    `json:"service_fee"`
	AdminPhone string    `json:"admin_phone"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Get возвращает настройки из кеша, (nil, nil) при промахе
func (c *Cache) Get(ctx context.Context) (*domain.GlobalSettings, error) {
	data, err := c.client.Get(ctx, settingsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}
	return decode(data)
}

// Set кладет настройки в кеш на ttl
func (c *Cache) Set(ctx context.Context, settings *domain.GlobalSettings) error {
	payload, err := encode(settings)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, settingsKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	return nil
}

// Invalidate удаляет настройки из кеша
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, settingsKey).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	return nil
}

func encode(settings *domain.GlobalSettings) ([]byte, error) {
	payload, err := json.Marshal(cachedSettings{
		ServiceFee: settings.ServiceFee.String(),
		AdminPhone: settings.AdminPhone,
		UpdatedAt:  settings.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrCacheWrite, err)
	}
	return payload, nil
}

func decode(data []byte) (*domain.GlobalSettings, error) {
	var cached cachedSettings
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCacheRead, err)
	}
	fee, err := decimal.NewFromString(cached.ServiceFee)
	if err != nil {
		return nil, fmt.Errorf("%w: decode service_fee: %v", ErrCacheRead, err)
	}
	return &domain.GlobalSettings{
		ServiceFee: fee,
		AdminPhone: cached.AdminPhone,
		UpdatedAt:  cached.UpdatedAt,
	}, nil
}
