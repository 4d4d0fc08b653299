package services

import (
	"context"
	"fmt"
	"time"

	localCache "git.solsynth.dev/hypernet/quill/pkg/internal/cache"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
)

const relationCacheTTL = 5 * time.Minute

func GetFollowingCacheKey(account uint) string {
	return fmt.Sprintf("account-following#%d", account)
}

func GetFollowersCacheKey(account uint) string {
	return fmt.Sprintf("account-followers#%d", account)
}

func getCachedIDList(key string) ([]uint, bool) {
	if localCache.S == nil {
		return nil, false
	}

	marshal := marshaler.New(cache.New[any](localCache.S))
	raw, err := marshal.Get(context.Background(), key, new([]uint))
	if err != nil {
		return nil, false
	}
	if list, ok := raw.(*[]uint); ok {
		return *list, true
	}
	return nil, false
}

func setCachedIDList(key string, list []uint) {
	if localCache.S == nil {
		return
	}

	marshal := marshaler.New(cache.New[any](localCache.S))
	if err := marshal.Set(
		context.Background(),
		key,
		list,
		store.WithExpiration(relationCacheTTL),
		store.WithSynchronousSet(),
	); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("An error occurred when caching relation list...")
	}
}

// InvalidateRelationCache drops the cached following and followers lists of the accounts.
func InvalidateRelationCache(accounts ...uint) {
	if localCache.S == nil {
		return
	}

	manager := cache.New[any](localCache.S)
	ctx := context.Background()
	for _, account := range accounts {
		_ = manager.Delete(ctx, GetFollowingCacheKey(account))
		_ = manager.Delete(ctx, GetFollowersCacheKey(account))
	}
}
