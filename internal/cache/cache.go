package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetString(ctx context.Context, key string) (val string, hit bool, err error)
	SetString(ctx context.Context, key string, val string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// SystemPromptKey namespaces the cached visitor-chat system prompt per owner.
func SystemPromptKey(ownerID string) string {
	return "chat:sysprompt:" + ownerID
}
