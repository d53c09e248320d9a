package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const contentCacheTTL = time.Hour

// ContentCache holds rendered bodies for the public concept page. It is
// best-effort only: a miss or a redis error both mean "go to the content
// store", and writers drop the key before returning.
type ContentCache interface {
	GetHTML(ctx context.Context, conceptID string) (string, bool)
	SetHTML(ctx context.Context, conceptID, html string)
	Invalidate(ctx context.Context, conceptID string)
}

type contentCache struct {
	client *redis.Client
}

func NewContentCache(client *redis.Client) ContentCache {
	return &contentCache{client: client}
}

func cacheKey(conceptID string) string {
	return "docpress:content:html:" + conceptID
}

func (c *contentCache) GetHTML(ctx context.Context, conceptID string) (string, bool) {
	val, err := c.client.Get(ctx, cacheKey(conceptID)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *contentCache) SetHTML(ctx context.Context, conceptID, html string) {
	c.client.Set(ctx, cacheKey(conceptID), html, contentCacheTTL)
}

func (c *contentCache) Invalidate(ctx context.Context, conceptID string) {
	c.client.Del(ctx, cacheKey(conceptID))
}
