package riot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lolstreamsearch/lib/utils/logging"

	"github.com/fsnotify/fsnotify"
)

// ReadKeyFile returns the trimmed contents of a Riot API key file
func ReadKeyFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	key := strings.TrimSpace(string(raw))
	if key == "" {
		return "", fmt.Errorf("key file %s is empty", path)
	}
	return key, nil
}

// WatchKeyFile loads the key at path into c and reloads it whenever the file is rewritten.
// Development keys expire every 24h, so rotating the file avoids a restart.
// The watcher stops when ctx is done.
func WatchKeyFile(ctx context.Context, c *RiotClient, path string) error {
	key, err := ReadKeyFile(path)
	if err != nil {
		return err
	}
	c.SetAPIKey(key)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Editors and secret mounts replace the file, so watch the directory
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	target := filepath.Clean(path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				key, err := ReadKeyFile(path)
				if err != nil {
					logger.Warn("API_KEY_RELOAD_FAILED", err, map[string]any{
						logging.PATH: path,
					})
					continue
				}
				c.SetAPIKey(key)
				logger.Info("API_KEY_RELOADED", map[string]any{
					logging.PATH: path,
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("API_KEY_WATCHER_ERROR", err, nil)
			}
		}
	}()

	return nil
}
