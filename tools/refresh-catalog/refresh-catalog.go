package refreshcatalog

import (
	"context"

	"lolstreamsearch/lib/database/catalogdb"
	"lolstreamsearch/lib/env"
	"lolstreamsearch/lib/utils/logging"
	"lolstreamsearch/lib/web/ddragon"
)

var logger = logging.NewLogger("REFRESH_CATALOG_TOOL")

// RefreshCatalog downloads the item and rune catalogs of the current game version into
// the local snapshot, so services started afterwards skip the Data Dragon fetch.
func RefreshCatalog() {
	if env.DDragonSnapshotPath == "" {
		logger.Error("SNAPSHOT_NOT_CONFIGURED", nil, map[string]any{
			logging.REASON: "DDRAGON_SNAPSHOT_PATH is not set",
		})
		return
	}

	store, err := catalogdb.Open(env.DDragonSnapshotPath)
	if err != nil {
		logger.Error("SNAPSHOT_OPEN_FAILED", err, map[string]any{
			logging.PATH: env.DDragonSnapshotPath,
		})
		return
	}
	defer store.Close()

	ctx := context.Background()
	cache := ddragon.NewCache(env.DDragonURLBase, ddragon.WithSnapshotStore(store))
	version, err := cache.CurrentVersion(ctx)
	if err != nil {
		logger.Error("VERSION_FETCH_FAILED", err, nil)
		return
	}

	// Each lookup loads its catalog and writes it through to the snapshot
	cache.ItemName(ctx, 1001)
	cache.RuneName(ctx, 8000)

	logger.Info("CATALOG_REFRESHED", map[string]any{
		logging.VERSION: version,
		logging.PATH:    env.DDragonSnapshotPath,
	})
}
