package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/store"
	redisStore "github.com/eko/gocache/store/redis/v4"
	ristrettoStore "github.com/eko/gocache/store/ristretto/v4"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

var S store.StoreInterface

func NewStore() error {
	switch viper.GetString("cache.driver") {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     viper.GetString("cache.redis.addr"),
			Password: viper.GetString("cache.redis.password"),
			DB:       viper.GetInt("cache.redis.db"),
		})
		S = redisStore.NewRedis(client)
	case "", "ristretto":
		ris, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: 1e7,
			MaxCost:     1 << 27,
			BufferItems: 64,
		})
		if err != nil {
			return err
		}
		S = ristrettoStore.NewRistretto(ris)
	default:
		return fmt.Errorf("unsupported cache driver: %s", viper.GetString("cache.driver"))
	}

	return nil
}
