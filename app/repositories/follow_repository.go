package repositories

import (
	"fmt"
	"strconv"
	"strings"

	"bramble/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerFollowRepository implements FollowRepository using BadgerDB.
// Each edge is stored under follow:<follower>:<followed>, so the duplicate
// check and the insert happen on one key inside one transaction. Concurrent
// inserts of the same edge conflict at the storage layer rather than racing
// in application code.
type BadgerFollowRepository struct {
	db *badger.DB
}

// NewBadgerFollowRepository creates a new BadgerFollowRepository
func NewBadgerFollowRepository(db *badger.DB) *BadgerFollowRepository {
	return &BadgerFollowRepository{db: db}
}

// Create inserts a follow edge. Returns ErrDuplicate if the edge already
// exists.
func (r *BadgerFollowRepository) Create(follow *models.Follow) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := followKey(follow.FollowerID, follow.FollowedID)
		_, err := txn.Get(key)
		if err == nil {
			return ErrDuplicate
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		data, err := marshalEntity(follow)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete removes a follow edge. Returns ErrNotFound if the edge does not
// exist.
func (r *BadgerFollowRepository) Delete(followerID, followedID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := followKey(followerID, followedID)
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// Exists reports whether the follower currently follows the followed user
func (r *BadgerFollowRepository) Exists(followerID, followedID int) (bool, error) {
	var exists bool
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(followKey(followerID, followedID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

// ListFollowing returns the IDs of every user the follower follows
func (r *BadgerFollowRepository) ListFollowing(followerID int) ([]int, error) {
	var followed []int

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("%s%d:", FollowKeyPrefix, followerID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			id, err := strconv.Atoi(strings.TrimPrefix(key, string(prefix)))
			if err != nil {
				return fmt.Errorf("malformed follow key %q: %v", key, err)
			}
			followed = append(followed, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return followed, nil
}

// DeleteEdgesInvolving removes every edge where the user appears on either
// side. Called when a user account is removed so no dangling edges remain.
func (r *BadgerFollowRepository) DeleteEdgesInvolving(userID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(FollowKeyPrefix)
		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			var follower, followed int
			if _, err := fmt.Sscanf(strings.TrimPrefix(key, FollowKeyPrefix), "%d:%d", &follower, &followed); err != nil {
				continue
			}
			if follower == userID || followed == userID {
				keys = append(keys, it.Item().KeyCopy(nil))
			}
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

