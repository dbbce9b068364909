package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so repositories can be tested against
// miniredis or a mock without caring which concrete client backs them.
type Client interface {
	redis.UniversalClient
}
