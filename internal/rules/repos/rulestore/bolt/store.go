// Package bolt persists world rule stores in a bbolt database, one nested
// bucket per world.
package bolt

import (
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/haukened/rr-gamerules/internal/rules/common/log"
	"github.com/haukened/rr-gamerules/internal/rules/domain"
)

var (
	bucketWorlds  = []byte("worlds")
	bucketCreated = []byte("created")
)

// DB owns the database file. Per-world stores are views onto it.
type DB struct {
	db     *bbolt.DB
	logger log.Logger
}

// Open opens (or creates) the database at path and ensures the root bucket.
func Open(path string, logger log.Logger) (*DB, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open rule database %s: %w", path, err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketWorlds, bucketCreated} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialise rule database %s: %w", path, err)
	}
	return &DB{db: db, logger: logger}, nil
}

func (d *DB) Close() error { return d.db.Close() }

// HasWorld reports whether a rule bucket exists for worldID.
func (d *DB) HasWorld(worldID string) (bool, error) {
	var present bool
	err := d.db.View(func(tx *bbolt.Tx) error {
		present = tx.Bucket(bucketWorlds).Bucket([]byte(worldID)) != nil
		return nil
	})
	return present, err
}

// Created reports whether MarkCreated was recorded for worldID. A world can
// have a rule bucket without being created when its creation step failed.
func (d *DB) Created(worldID string) (bool, error) {
	var created bool
	err := d.db.View(func(tx *bbolt.Tx) error {
		created = tx.Bucket(bucketCreated).Get([]byte(worldID)) != nil
		return nil
	})
	return created, err
}

// MarkCreated records that the creation step of worldID completed.
func (d *DB) MarkCreated(worldID string) error {
	if worldID == "" {
		return fmt.Errorf("world id must not be empty")
	}
	if err := d.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketCreated).Put([]byte(worldID), []byte{1})
	}); err != nil {
		return fmt.Errorf("failed to mark world %s created: %w", worldID, err)
	}
	return nil
}

// Worlds lists world ids in key order.
func (d *DB) Worlds() ([]string, error) {
	var ids []string
	err := d.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketWorlds).ForEachBucket(func(k []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})
	return ids, err
}

// World returns the rule store of worldID, creating its bucket if needed.
func (d *DB) World(worldID string) (*Store, error) {
	if worldID == "" {
		return nil, fmt.Errorf("world id must not be empty")
	}
	if err := d.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.Bucket(bucketWorlds).CreateBucketIfNotExists([]byte(worldID))
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create rule bucket for world %s: %w", worldID, err)
	}
	return &Store{db: d.db, world: []byte(worldID), logger: d.logger}, nil
}

// Store is the persistent rule store of a single world.
type Store struct {
	db     *bbolt.DB
	world  []byte
	logger log.Logger
}

// Get returns the stored value. Read errors are logged and reported as a miss.
func (s *Store) Get(key string) (string, bool) {
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := s.bucket(tx)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			value, found = string(v), true
		}
		return nil
	})
	if err != nil {
		s.logger.Warn(map[string]any{"world": string(s.world), "key": key, "error": err}, "Rule read failed")
		return "", false
	}
	return value, found
}

func (s *Store) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

func (s *Store) SetOrCreate(key, value string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := s.bucket(tx)
		if b == nil {
			return fmt.Errorf("rule bucket for world %s is missing", s.world)
		}
		return b.Put([]byte(key), []byte(value))
	})
}

// Keys returns rule names in byte order.
func (s *Store) Keys() []string {
	var keys []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := s.bucket(tx)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		s.logger.Warn(map[string]any{"world": string(s.world), "error": err}, "Rule enumeration failed")
	}
	return keys
}

func (s *Store) bucket(tx *bbolt.Tx) *bbolt.Bucket {
	root := tx.Bucket(bucketWorlds)
	if root == nil {
		return nil
	}
	return root.Bucket(s.world)
}

var _ domain.RuleStore = (*Store)(nil)
