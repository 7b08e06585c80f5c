package redisad

import (
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"business_reviews/internal/adapters/observability"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired-and-reacquired key is never released by the previous holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

type Guard struct{ c *redis.Client }

func New(addr, pass string, db int) *Guard {
	return &Guard{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (g *Guard) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token, err := newToken()
	if err != nil {
		return nil, false, err
	}
	ok, err := g.c.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		observability.ObserveGuard("error")
		return nil, false, err
	}
	if !ok {
		observability.ObserveGuard("busy")
		return nil, false, nil
	}
	observability.ObserveGuard("acquired")

	release := func() {
		// the request context may already be done; release on a short detached one
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, g.c, []string{key}, token).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("guard release failed")
		}
	}
	return release, true, nil
}

func (g *Guard) Ping(ctx context.Context) error { return g.c.Ping(ctx).Err() }

func (g *Guard) Close() error { return g.c.Close() }

func newToken() (string, error) {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
