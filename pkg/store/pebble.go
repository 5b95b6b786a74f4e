package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"familyconnect/pkg/logger"

	"github.com/cockroachdb/pebble"
)

var (
	db     *pebble.DB
	dbPath string
)

// Collection keys. Every top-level collection is serialized as a single
// JSON value under "collection:<key>" and rewritten synchronously after
// each mutation. At this data scale coalescing is unnecessary.
const (
	KeyMembers       = "members"
	KeyPlans         = "plans"
	KeyChats         = "chats"
	KeyChatMessages  = "chatMessages"
	KeyNotifications = "notifications"
	KeyStatusUpdates = "statusUpdates"
	KeyBlockedUsers  = "blockedUserIds"
)

const collPrefix = "collection:"

// Open opens (or creates) a Pebble database at the given path and keeps
// a global handle for simple usage in this package.
func Open(path string) error {
	var err error
	logger.Info("opening_pebble_db", "path", path)
	db, err = pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Error("pebble_open_failed", "path", path, "error", err)
		return err
	}
	dbPath = path
	logger.Info("pebble_opened", "path", path)
	return nil
}

// Close closes the opened pebble DB if present.
func Close() error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return err
	}
	db = nil
	dbPath = ""
	logger.Info("pebble_closed")
	return nil
}

// Ready reports whether the store is opened and ready.
func Ready() bool {
	return db != nil
}

// LoadCollection reads the collection stored under key and decodes it into
// a value of type T. A missing or corrupt value yields the fallback; load
// never fails. Corruption is counted and logged, not surfaced.
func LoadCollection[T any](key string, fallback T) T {
	if db == nil {
		return fallback
	}
	v, closer, err := db.Get([]byte(collPrefix + key))
	if err != nil {
		if err != pebble.ErrNotFound {
			logger.Warn("collection_read_failed", "key", key, "error", err)
		}
		loadFallbacks.WithLabelValues(key, "missing").Inc()
		return fallback
	}
	defer closer.Close()
	var out T
	if err := json.Unmarshal(v, &out); err != nil {
		logger.Warn("collection_corrupt", "key", key, "error", err)
		loadFallbacks.WithLabelValues(key, "corrupt").Inc()
		return fallback
	}
	loads.WithLabelValues(key).Inc()
	return out
}

// HasCollection reports whether a collection value exists under key.
func HasCollection(key string) bool {
	if db == nil {
		return false
	}
	_, closer, err := db.Get([]byte(collPrefix + key))
	if err != nil {
		return false
	}
	_ = closer.Close()
	return true
}

// SaveCollection serializes v and writes it under key with a synchronous
// write, so state survives an unclean exit.
func SaveCollection(key string, v any) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal collection %s: %w", key, err)
	}
	if err := db.Set([]byte(collPrefix+key), data, pebble.Sync); err != nil {
		logger.Error("save_collection_failed", "key", key, "error", err)
		return err
	}
	saves.WithLabelValues(key).Inc()
	logger.Debug("collection_saved", "key", key, "bytes", len(data))
	return nil
}

// DeleteCollection removes the stored value for key if present.
func DeleteCollection(key string) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	return db.Delete([]byte(collPrefix+key), pebble.Sync)
}

// ListCollectionKeys returns the keys of all stored collections.
func ListCollectionKeys() ([]string, error) {
	if db == nil {
		return nil, fmt.Errorf("pebble not opened; call store.Open first")
	}
	prefix := []byte(collPrefix)
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	var out []string
	for iter.SeekGE(prefix); iter.Valid(); iter.Next() {
		if !bytes.HasPrefix(iter.Key(), prefix) {
			break
		}
		k := append([]byte(nil), iter.Key()...)
		out = append(out, string(k[len(prefix):]))
	}
	return out, iter.Error()
}

// SetRaw writes a raw value under a collection key. Used by tests to plant
// corrupt payloads and by admin tooling.
func SetRaw(key string, value []byte) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	return db.Set([]byte(collPrefix+key), value, pebble.Sync)
}
