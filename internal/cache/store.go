// Package cache memoises document totals in a badger database so repeated
// runs over the same document skip scoring.
package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"

	"calib/internal/logging"
)

// Version is bumped whenever scoring semantics change so stale totals are
// never served.
const Version = 1

const keyPrefix = "total/"

// DefaultGCInterval is how often the value log is garbage collected.
const DefaultGCInterval = 5 * time.Minute

// Store is a badger-backed cache of document totals.
type Store struct {
	db *badger.DB

	gcInterval time.Duration
	done       chan struct{}
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

// Key returns the cache key for a document body.
func Key(text string) []byte {
	h := xxhash.Sum64String(text)
	return []byte(keyPrefix + strconv.Itoa(Version) + "/" + strconv.FormatUint(h, 16) + "/" + strconv.Itoa(len(text)))
}

// Open opens (creating if needed) the cache under dir. An empty dir opens an
// in-memory store.
func Open(dir string, log *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(logging.NewBadgerAdapter(log))

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open cache %q: %w", dir, err)
	}
	s := &Store{
		db:         db,
		gcInterval: DefaultGCInterval,
		done:       make(chan struct{}),
	}
	if dir != "" {
		s.wg.Add(1)
		go s.gcLoop()
	}
	return s, nil
}

// gcLoop runs value log GC until Close.
func (s *Store) gcLoop() {
	defer s.wg.Done()
	t := time.NewTicker(s.gcInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			// ErrNoRewrite just means there was nothing to collect.
			_ = s.db.RunValueLogGC(0.5)
		case <-s.done:
			return
		}
	}
}

// Get returns the cached total for key.
func (s *Store) Get(key []byte) (uint64, bool, error) {
	var total uint64
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("cache: corrupt value for %s (%d bytes)", key, len(val))
			}
			total = binary.BigEndian.Uint64(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return total, true, nil
}

// Put stores total under key.
func (s *Store) Put(key []byte, total uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], total)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, buf[:])
	})
}

// Close stops background GC and closes the database.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}
