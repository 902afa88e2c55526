package service

import (
	"context"
	"encoding/json"
	"time"

	"edunova_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "edunova:"

// ViewCache 分析视图的读侧缓存，redis 不可用时所有操作降级为空操作。
// 缓存只是尽力而为：任何 redis 错误记 debug 日志后当作未命中
type ViewCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewViewCache(rdb *redis.Client, ttlSeconds int) *ViewCache {
	if ttlSeconds <= 0 {
		ttlSeconds = 60
	}
	return &ViewCache{rdb: rdb, ttl: time.Duration(ttlSeconds) * time.Second}
}

func (c *ViewCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Debug("view cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Log.Debug("view cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *ViewCache) Set(ctx context.Context, key string, v interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		logger.Log.Debug("view cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateUser 写路径调用，清掉该用户的派生视图。
// 教师报表不在这里清（学生写入无法反查教师），靠短 TTL 过期
func (c *ViewCache) InvalidateUser(ctx context.Context, userID string) {
	if c == nil || c.rdb == nil {
		return
	}
	keys := []string{
		cacheKeyPrefix + "stats:" + userID,
		cacheKeyPrefix + "analytics:" + userID,
		cacheKeyPrefix + "achievements:" + userID,
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Debug("view cache invalidate failed", zap.String("user", userID), zap.Error(err))
	}
}
