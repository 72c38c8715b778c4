package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/fotostream/identity-api/internal/core/domain"
	"github.com/fotostream/identity-api/internal/core/ports"
)

const roleCacheTTL = 5 * time.Minute

// RoleCache is a read-through cache over a RoleRepository. Role records are
// tiny and near-immutable, and every role assignment resolves one by id, so
// hot roles are served from Redis. Cache failures degrade to the inner
// repository; they never fail the request.
// Key format: role:<id>
type RoleCache struct {
	client *redis.Client
	inner  ports.RoleRepository
	log    zerolog.Logger
}

func NewRoleCache(client *redis.Client, inner ports.RoleRepository, log zerolog.Logger) *RoleCache {
	return &RoleCache{client: client, inner: inner, log: log}
}

func (c *RoleCache) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return c.inner.ListRoles(ctx)
}

func (c *RoleCache) FindRoleByID(ctx context.Context, id int64) (*domain.Role, error) {
	key := c.key(id)

	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var role domain.Role
		if err := json.Unmarshal([]byte(raw), &role); err == nil {
			return &role, nil
		}
		// Unreadable entry: drop it and fall through to storage.
		_ = c.client.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Int64("role_id", id).Msg("role cache read failed")
	}

	role, err := c.inner.FindRoleByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(role); err == nil {
		if err := c.client.Set(ctx, key, encoded, roleCacheTTL).Err(); err != nil {
			c.log.Warn().Err(err).Int64("role_id", id).Msg("role cache write failed")
		}
	}
	return role, nil
}

func (c *RoleCache) CreateRole(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	return c.inner.CreateRole(ctx, role)
}

func (c *RoleCache) key(id int64) string {
	return fmt.Sprintf("role:%d", id)
}
