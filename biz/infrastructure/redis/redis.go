package redis

import (
	"exam-hall/biz/infrastructure/config"
	"sync"

	"github.com/zeromicro/go-zero/core/stores/redis"
)

// shared redis client for the broadcast queue and the paper cache

var instance *redis.Redis
var once sync.Once

// GetRedis returns the shared redis client
func GetRedis(config *config.Config) *redis.Redis {
	once.Do(func() {
		instance = redis.MustNewRedis(*config.Redis)
	})
	return instance
}
