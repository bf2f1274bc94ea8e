// Package cache holds the short-TTL cache for rendered global-feed pages.
//
// The cache intentionally serves stale pages for the duration of the TTL:
// a write landing right after a cache fill stays invisible to readers until
// the entry expires or an explicit Clear. That trade-off buys read
// throughput on the hottest page of the site.
package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const feedPageKeyPrefix = "feedpage:"

// DefaultTTL is how long a cached feed page stays valid.
const DefaultTTL = 20 * time.Second

// PageCache stores rendered feed pages keyed by page number, each entry
// carrying a native Badger TTL.
type PageCache struct {
	db  *badger.DB
	ttl time.Duration
}

// NewPageCache creates a PageCache with the given TTL. A non-positive TTL
// falls back to DefaultTTL.
func NewPageCache(db *badger.DB, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PageCache{db: db, ttl: ttl}
}

// Get loads the cached page into dest. The second return value reports
// whether the entry was present and unexpired.
func (c *PageCache) Get(page int, dest interface{}) (bool, error) {
	var data []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(pageKey(page))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores the page under its number with the configured TTL.
func (c *PageCache) Set(page int, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(pageKey(page), data).WithTTL(c.ttl)
		return txn.SetEntry(entry)
	})
}

// Clear drops every cached page. Exposed for tests and administration;
// normal operation relies on TTL expiry.
func (c *PageCache) Clear() error {
	return c.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(feedPageKeyPrefix)
		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

func pageKey(page int) []byte {
	return []byte(fmt.Sprintf("%s%d", feedPageKeyPrefix, page))
}
