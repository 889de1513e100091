// Package persist snapshots store state to a bbolt database so an app can
// resume where it left off.
//
// A Snapshotter keeps one JSON encoded state value per key in a single
// bucket. Attach saves after every store notification; failures are logged
// because listeners cannot return errors.
package persist

import (
	"encoding/json"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/vango-dev/minifw/internal/errors"
	"github.com/vango-dev/minifw/pkg/store"
)

const bucketSnapshots = "snapshots"

// DefaultKey is the key used when no WithKey option is given.
const DefaultKey = "state"

// Snapshotter saves and loads state snapshots.
type Snapshotter struct {
	db      *bolt.DB
	key     []byte
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Snapshotter.
type Option func(*Snapshotter)

// WithKey stores snapshots under key, so several apps can share a file.
func WithKey(key string) Option {
	return func(s *Snapshotter) {
		s.key = []byte(key)
	}
}

// WithTimeout bounds how long Open waits for the file lock.
// Default: one second.
func WithTimeout(d time.Duration) Option {
	return func(s *Snapshotter) {
		s.timeout = d
	}
}

// WithLogger sets the logger used for Attach failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Snapshotter) {
		s.logger = logger
	}
}

// Open opens or creates the database at path.
func Open(path string, opts ...Option) (*Snapshotter, error) {
	s := &Snapshotter{
		key:     []byte(DefaultKey),
		timeout: time.Second,
		logger:  slog.Default().With("component", "persist"),
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: s.timeout})
	if err != nil {
		return nil, errors.New("E300").WithDetail(path).Wrap(err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSnapshots))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.New("E300").WithDetail(path).Wrap(err)
	}
	s.db = db
	return s, nil
}

// Keyed returns a Snapshotter that shares s's database but saves and loads
// under key. Close only the Snapshotter returned by Open.
func (s *Snapshotter) Keyed(key string) *Snapshotter {
	k := *s
	k.key = []byte(key)
	return &k
}

// Save replaces the stored snapshot with state.
func (s *Snapshotter) Save(state store.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return errors.New("E301").Wrap(err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSnapshots)).Put(s.key, data)
	})
}

// Load returns the stored snapshot. ok is false when nothing was saved yet.
// Values come back as their JSON decoded forms (numbers are float64, lists
// are []any).
func (s *Snapshotter) Load() (state store.State, ok bool, err error) {
	var data []byte
	err = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketSnapshots)).Get(s.key); v != nil {
			// v is only valid for the life of the transaction.
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || data == nil {
		return nil, false, err
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, false, errors.New("E301").Wrap(err)
	}
	return state, true, nil
}

// Attach saves st's state after every notification until detach is called.
func (s *Snapshotter) Attach(st *store.Store) (detach func()) {
	return st.Subscribe(func(state store.State) {
		if err := s.Save(state); err != nil {
			s.logger.Error("snapshot failed", "error", err)
		}
	})
}

// Close closes the database.
func (s *Snapshotter) Close() error {
	return s.db.Close()
}
