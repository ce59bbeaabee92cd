package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/store/docs"
	"github.com/redis/go-redis/v9"
)

type userStore struct{ s *Store }

// Insert uses HSETNX so two concurrent registrations cannot both win.
func (u userStore) Insert(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	d, err := docs.FromUser(user)
	if err != nil {
		return err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	client, err := u.s.client(ctx)
	if err != nil {
		return err
	}
	ok, err := client.HSetNX(ctx, KeyUsers, user.Username, data).Result()
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	if !ok {
		return domain.ErrDuplicate
	}
	user.ID = d.ID.Hex()
	return nil
}

func (u userStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	client, err := u.s.client(ctx)
	if err != nil {
		return nil, err
	}
	data, err := client.HGet(ctx, KeyUsers, username).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var d docs.User
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return d.Domain(), nil
}
