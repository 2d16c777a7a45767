package match_resolution

import (
	"context"

	"lolstreamsearch/lib/database/catalogdb"
	"lolstreamsearch/lib/database/redis"
	"lolstreamsearch/lib/env"
	"lolstreamsearch/lib/services/identity"
	"lolstreamsearch/lib/utils/logging"
	"lolstreamsearch/lib/web/ddragon"
	"lolstreamsearch/lib/web/riot"
	"lolstreamsearch/lib/web/youtube"
)

// NewFromEnv wires a Resolver to the Riot, Data Dragon and YouTube clients configured in env.
// Redis and the catalog snapshot are used only when configured.
func NewFromEnv(ctx context.Context) *Resolver {
	riotClient := riot.NewFromEnv(ctx)

	var cache identity.Cache
	if redis.Enabled() {
		redis.Wait()
		cache = identity.NewRedisCache(redis.Client)
	}

	var catalogOpts []ddragon.Option
	if env.DDragonSnapshotPath != "" {
		store, err := catalogdb.Open(env.DDragonSnapshotPath)
		if err != nil {
			logger.Warn("CATALOG_SNAPSHOT_UNAVAILABLE", err, map[string]any{
				logging.PATH: env.DDragonSnapshotPath,
			})
		} else {
			catalogOpts = append(catalogOpts, ddragon.WithSnapshotStore(store))
		}
	}

	return NewResolver(
		identity.NewCachedResolver(riotClient, cache),
		riotClient,
		ddragon.NewCache(env.DDragonURLBase, catalogOpts...),
		youtube.NewFromEnv(),
		WithTimeout(env.ResolveTimeout),
	)
}
