package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache — тонкая обертка над Redis для кэширования готовых JSON-отчетов.
// Нулевой клиент означает, что кэширование отключено: все операции
// становятся no-op, приложение работает без Redis.
type Cache struct {
	client *redis.Client
}

// New подключается к Redis. Пустой адрес или недоступный сервер не являются
// ошибкой — возвращается отключенный кэш.
func New(addr string) *Cache {
	if addr == "" {
		return &Cache{}
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		slog.Warn("Redis недоступен, кэширование отключено", "addr", addr, "error", err)
		return &Cache{}
	}

	slog.Info("Подключение к Redis установлено", "addr", addr)
	return &Cache{client: client}
}

// Enabled сообщает, активен ли кэш.
func (c *Cache) Enabled() bool { return c != nil && c.client != nil }

// Get возвращает сохраненное значение или ("", false).
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if !c.Enabled() {
		return "", false
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set сохраняет значение с TTL. Ошибки кэша не влияют на запрос.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Warn("Не удалось записать в кэш", "key", key, "error", err)
	}
}

// Invalidate удаляет ключи по шаблону (после мутаций расписания/журнала).
func (c *Cache) Invalidate(ctx context.Context, pattern string) {
	if !c.Enabled() {
		return
	}
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}
