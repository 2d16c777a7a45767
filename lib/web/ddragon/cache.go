package ddragon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"lolstreamsearch/lib/monitoring/global_metrics"
	"lolstreamsearch/lib/utils/logging"
	"lolstreamsearch/lib/utils/network"
	"lolstreamsearch/lib/utils/retry"
)

var logger = logging.NewLogger("DDRAGON")

const (
	KindItems = "items"
	KindRunes = "runes"
)

// SnapshotStore persists catalogs between restarts
type SnapshotStore interface {
	Load(ctx context.Context, version, kind string) (map[int]string, error)
	Save(ctx context.Context, version, kind string, names map[int]string) error
}

// Cache lazily loads the current Data Dragon version and its item and rune catalogs.
// Each is fetched at most once per Cache; a failed fetch is retried on the next lookup.
// Concurrent lookups share one fetch and each stops waiting when its own context ends.
type Cache struct {
	httpClient  *http.Client
	baseURL     string
	snapshot    SnapshotStore
	retryConfig retry.RetryConfig

	mu      sync.Mutex
	version string
	items   map[int]string
	runes   map[int]string // tree ids and rune ids share one namespace

	versionLoad *load[string]
	itemsLoad   *load[map[int]string]
	runesLoad   *load[map[int]string]
}

// load is a fetch in flight. val and err are set before done is closed.
type load[T any] struct {
	done chan struct{}
	val  T
	err  error
}

type Option func(*Cache)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Cache) {
		c.httpClient = httpClient
	}
}

// WithRetryConfig replaces the transient error retry policy of every Data Dragon request
func WithRetryConfig(config retry.RetryConfig) Option {
	return func(c *Cache) {
		c.retryConfig = config
	}
}

func WithSnapshotStore(store SnapshotStore) Option {
	return func(c *Cache) {
		c.snapshot = store
	}
}

func NewCache(baseURL string, opts ...Option) *Cache {
	c := &Cache{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     baseURL,
		retryConfig: network.TransientNetworkErrorRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentVersion returns the newest published game version
func (c *Cache) CurrentVersion(ctx context.Context) (string, error) {
	return await(ctx, c, &c.versionLoad,
		func() (string, bool) { return c.version, c.version != "" },
		c.fetchVersion,
		func(version string) { c.version = version },
	)
}

func (c *Cache) fetchVersion(ctx context.Context) (string, error) {
	versions, err := fetchJSON[[]string](ctx, c, c.baseURL+"/api/versions.json")
	if err != nil {
		return "", fmt.Errorf("failed to fetch versions: %w", err)
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("no versions available")
	}

	logger.Info("DDRAGON_VERSION_LOADED", map[string]any{
		logging.VERSION: versions[0],
	})
	return versions[0], nil
}

// ItemName returns the display name of an item. Empty slots (id 0) return nil.
func (c *Cache) ItemName(ctx context.Context, id int) *string {
	if id == 0 {
		return nil
	}

	name, ok := c.catalog(ctx, KindItems)[id]
	if !ok {
		name = fmt.Sprintf("Unknown Item (%d)", id)
	}
	return &name
}

// RuneName returns the display name of a rune or rune tree
func (c *Cache) RuneName(ctx context.Context, id int) string {
	if name, ok := c.catalog(ctx, KindRunes)[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Rune (%d)", id)
}

// Version returns the loaded game version, or "" before the first successful lookup
func (c *Cache) Version() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// catalog returns the catalog of kind, fetching it on first use.
// It returns nil when the catalog is unavailable so callers fall back to placeholders.
func (c *Cache) catalog(ctx context.Context, kind string) map[int]string {
	inflight, loaded := &c.itemsLoad, &c.items
	if kind == KindRunes {
		inflight, loaded = &c.runesLoad, &c.runes
	}

	names, err := await(ctx, c, inflight,
		func() (map[int]string, bool) { return *loaded, *loaded != nil },
		func(ctx context.Context) (map[int]string, error) {
			names, err := c.fetchCatalog(ctx, kind)
			if err != nil {
				global_metrics.DDragonCatalogFetch.WithLabelValues(kind, "error").Inc()
				logger.Warn("DDRAGON_CATALOG_UNAVAILABLE", err, map[string]any{
					logging.TYPE:    kind,
					logging.VERSION: c.Version(),
				})
			}
			return names, err
		},
		func(names map[int]string) { *loaded = names },
	)
	if err != nil {
		return nil
	}
	return names
}

// await returns the cached value, or waits for the fetch in flight, starting one if there is none.
// The fetch is detached from ctx and stores its result for later lookups; ctx only bounds the wait.
func await[T any](
	ctx context.Context,
	c *Cache,
	inflight **load[T],
	cached func() (T, bool),
	fetch func(context.Context) (T, error),
	store func(T),
) (T, error) {
	c.mu.Lock()
	if val, ok := cached(); ok {
		c.mu.Unlock()
		return val, nil
	}
	l := *inflight
	if l == nil {
		l = &load[T]{done: make(chan struct{})}
		*inflight = l
		go func() {
			l.val, l.err = fetch(context.WithoutCancel(ctx))
			c.mu.Lock()
			if l.err == nil {
				store(l.val)
			}
			*inflight = nil
			c.mu.Unlock()
			close(l.done)
		}()
	}
	c.mu.Unlock()

	select {
	case <-l.done:
		return l.val, l.err
	case <-ctx.Done():
		var zero T
		return zero, context.Cause(ctx)
	}
}

func (c *Cache) fetchCatalog(ctx context.Context, kind string) (map[int]string, error) {
	version, err := c.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	if c.snapshot != nil {
		names, err := c.snapshot.Load(ctx, version, kind)
		if err != nil {
			logger.Warn("DDRAGON_SNAPSHOT_LOAD_FAILED", err, map[string]any{
				logging.TYPE:    kind,
				logging.VERSION: version,
			})
		} else if len(names) > 0 {
			global_metrics.DDragonCatalogFetch.WithLabelValues(kind, "snapshot").Inc()
			return names, nil
		}
	}

	var names map[int]string
	switch kind {
	case KindItems:
		names, err = c.fetchItems(ctx, version)
	case KindRunes:
		names, err = c.fetchRunes(ctx, version)
	default:
		err = fmt.Errorf("unknown catalog kind %q", kind)
	}
	if err != nil {
		return nil, err
	}

	global_metrics.DDragonCatalogFetch.WithLabelValues(kind, "fetched").Inc()
	logger.Info("DDRAGON_CATALOG_LOADED", map[string]any{
		logging.TYPE:    kind,
		logging.VERSION: version,
		logging.COUNT:   len(names),
	})

	if c.snapshot != nil {
		if err := c.snapshot.Save(ctx, version, kind, names); err != nil {
			logger.Warn("DDRAGON_SNAPSHOT_SAVE_FAILED", err, map[string]any{
				logging.TYPE:    kind,
				logging.VERSION: version,
			})
		}
	}
	return names, nil
}

func (c *Cache) fetchItems(ctx context.Context, version string) (map[int]string, error) {
	url := fmt.Sprintf("%s/cdn/%s/data/en_US/item.json", c.baseURL, version)
	payload, err := fetchJSON[itemCatalog](ctx, c, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}

	names := make(map[int]string, len(payload.Data))
	for idStr, item := range payload.Data {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		names[id] = item.Name
	}
	return names, nil
}

func (c *Cache) fetchRunes(ctx context.Context, version string) (map[int]string, error) {
	url := fmt.Sprintf("%s/cdn/%s/data/en_US/runesReforged.json", c.baseURL, version)
	trees, err := fetchJSON[[]runeTree](ctx, c, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runes: %w", err)
	}

	names := make(map[int]string)
	for _, tree := range trees {
		names[tree.ID] = tree.Name
		for _, slot := range tree.Slots {
			for _, r := range slot.Runes {
				names[r.ID] = r.Name
			}
		}
	}
	return names, nil
}

func fetchJSON[T any](ctx context.Context, c *Cache, url string) (T, error) {
	return retry.WithRetryForResult(ctx, c.retryConfig, func(attempt int) (T, error) {
		return getJSON[T](ctx, c.httpClient, url)
	})
}

func getJSON[T any](ctx context.Context, httpClient *http.Client, url string) (T, error) {
	var data T
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return data, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return data, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return data, &network.HTTPStatusError{StatusCode: resp.StatusCode, URL: url}
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return data, err
	}
	return data, nil
}
