package repositories

import (
	"sort"
	"strconv"

	"bramble/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerGroupRepository implements GroupRepository using BadgerDB
type BadgerGroupRepository struct {
	db *badger.DB
}

// NewBadgerGroupRepository creates a new BadgerGroupRepository
func NewBadgerGroupRepository(db *badger.DB) *BadgerGroupRepository {
	return &BadgerGroupRepository{db: db}
}

// Create creates a new group. The slug index key holds the uniqueness
// constraint: the insert fails with ErrDuplicate when the slug is taken.
func (r *BadgerGroupRepository) Create(group *models.Group) error {
	return r.db.Update(func(txn *badger.Txn) error {
		indexKey := []byte(GroupSlugIndexPrefix + group.Slug)
		_, err := txn.Get(indexKey)
		if err == nil {
			return ErrDuplicate
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := getNextID(txn, GroupSeqKey)
		if err != nil {
			return err
		}
		group.ID = id

		data, err := marshalEntity(group)
		if err != nil {
			return err
		}
		if err := txn.Set(entityKey(GroupKeyPrefix, group.ID), data); err != nil {
			return err
		}
		return txn.Set(indexKey, []byte(strconv.Itoa(group.ID)))
	})
}

// GetByID retrieves a group by ID
func (r *BadgerGroupRepository) GetByID(id int) (*models.Group, error) {
	var group models.Group

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entityKey(GroupKeyPrefix, id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &group)
		})
	})

	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetBySlug retrieves a group through the slug index
func (r *BadgerGroupRepository) GetBySlug(slug string) (*models.Group, error) {
	var group models.Group

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(GroupSlugIndexPrefix + slug))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var id int
		err = item.Value(func(val []byte) error {
			id, err = strconv.Atoi(string(val))
			return err
		})
		if err != nil {
			return err
		}

		item, err = txn.Get(entityKey(GroupKeyPrefix, id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &group)
		})
	})

	if err != nil {
		return nil, err
	}
	return &group, nil
}

// List retrieves all groups ordered by ID
func (r *BadgerGroupRepository) List() ([]*models.Group, error) {
	var groups []*models.Group

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(GroupKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var group models.Group
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &group)
			})
			if err != nil {
				return err
			}
			groups = append(groups, &group)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}
