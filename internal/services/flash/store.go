package flash

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Variant оформление уведомления
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantSuccess     Variant = "success"
	VariantDestructive Variant = "destructive"
)

// Toast всплывающее уведомление, показываемое один раз
type Toast struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Variant     Variant `json:"variant"`
}

// Success уведомление об успешной операции
func Success(title, description string) Toast {
	return Toast{Title: title, Description: description, Variant: VariantSuccess}
}

// Failure уведомление об ошибке
func Failure(title, description string) Toast {
	return Toast{Title: title, Description: description, Variant: VariantDestructive}
}

// Info нейтральное уведомление
func Info(title, description string) Toast {
	return Toast{Title: title, Description: description, Variant: VariantDefault}
}

// Store хранит уведомления сессии до следующего отображения страницы
type Store interface {
	Push(ctx context.Context, session string, toast Toast) error
	Pop(ctx context.Context, session string) ([]Toast, error)
}

// Key генерирует ключ списка уведомлений сессии
func Key(session string) string {
	return fmt.Sprintf("flash:%s", session)
}

// RedisStore хранилище уведомлений в Redis со сроком жизни
type RedisStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewRedisStore создает хранилище уведомлений поверх клиента Redis
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redisClient: client, ttl: ttl}
}

// Push добавляет уведомление в конец списка сессии
func (s *RedisStore) Push(ctx context.Context, session string, toast Toast) error {
	data, err := json.Marshal(toast)
	if err != nil {
		return fmt.Errorf("ошибка при сериализации уведомления: %w", err)
	}

	key := Key(session)
	_, err = s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("ошибка при сохранении уведомления: %w", err)
	}
	return nil
}

// Pop забирает все уведомления сессии и очищает список
func (s *RedisStore) Pop(ctx context.Context, session string) ([]Toast, error) {
	key := Key(session)

	var values *redis.StringSliceCmd
	_, err := s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		values = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("ошибка при получении уведомлений: %w", err)
	}

	raw, err := values.Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("ошибка при получении уведомлений: %w", err)
	}

	toasts := make([]Toast, 0, len(raw))
	for _, item := range raw {
		var toast Toast
		if err := json.Unmarshal([]byte(item), &toast); err != nil {
			return nil, fmt.Errorf("ошибка при десериализации уведомления: %w", err)
		}
		toasts = append(toasts, toast)
	}
	return toasts, nil
}

// MemoryStore хранилище уведомлений в памяти процесса, используется без Redis
type MemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]memoryEntry
}

type memoryEntry struct {
	toasts  []Toast
	expires time.Time
}

// NewMemoryStore создает хранилище уведомлений в памяти
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, items: make(map[string]memoryEntry)}
}

// Push добавляет уведомление в конец списка сессии
func (s *MemoryStore) Push(_ context.Context, session string, toast Toast) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.evict(now)

	entry := s.items[session]
	entry.toasts = append(entry.toasts, toast)
	entry.expires = now.Add(s.ttl)
	s.items[session] = entry
	return nil
}

// Pop забирает все уведомления сессии и очищает список
func (s *MemoryStore) Pop(_ context.Context, session string) ([]Toast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evict(time.Now())

	entry, ok := s.items[session]
	if !ok {
		return nil, nil
	}
	delete(s.items, session)
	return entry.toasts, nil
}

func (s *MemoryStore) evict(now time.Time) {
	for key, entry := range s.items {
		if now.After(entry.expires) {
			delete(s.items, key)
		}
	}
}
