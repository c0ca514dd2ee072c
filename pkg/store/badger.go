package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/pb"
)

const badgerUserPrefix = "user/"

func openBadger(basePath string) (*badgerPersistence, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	db, err := badger.Open(badger.DefaultOptions(basePath).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("store: open badger: %w", err)
	}
	return &badgerPersistence{db: db}, nil
}

// badgerPersistence keeps every namespace in one badger database under
// `user/<id>/<namespace>`.
type badgerPersistence struct {
	db *badger.DB
}

func badgerKey(userID string, ns Namespace) []byte {
	return []byte(badgerUserPrefix + userID + "/" + string(ns))
}

func parseBadgerKey(key []byte) (string, Namespace, bool) {
	rest, ok := strings.CutPrefix(string(key), badgerUserPrefix)
	if !ok {
		return "", "", false
	}
	idx := strings.LastIndex(rest, "/")
	if idx <= 0 {
		return "", "", false
	}
	ns := Namespace(rest[idx+1:])
	if !ns.Valid() {
		return "", "", false
	}
	return rest[:idx], ns, true
}

func (b *badgerPersistence) Load(_ context.Context, userID string, ns Namespace) ([]byte, error) {
	if err := checkKey(userID, ns); err != nil {
		return nil, err
	}
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(userID, ns))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s/%s: %w", userID, ns, err)
	}
	return out, nil
}

func (b *badgerPersistence) Save(_ context.Context, userID string, ns Namespace, data []byte) error {
	if err := checkKey(userID, ns); err != nil {
		return err
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(userID, ns), data)
	})
	if err != nil {
		return fmt.Errorf("store: write %s/%s: %w", userID, ns, err)
	}
	return nil
}

func (b *badgerPersistence) Delete(_ context.Context, userID string, ns Namespace) error {
	if err := checkKey(userID, ns); err != nil {
		return err
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(userID, ns))
	})
	if err != nil {
		return fmt.Errorf("store: erase %s/%s: %w", userID, ns, err)
	}
	return nil
}

func (b *badgerPersistence) Namespaces(_ context.Context, userID string) ([]Namespace, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("store: user id required")
	}
	prefix := []byte(badgerUserPrefix + userID + "/")
	list := make([]Namespace, 0)
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			owner, ns, ok := parseBadgerKey(key)
			if !ok || owner != userID {
				fmt.Fprintf(os.Stderr, "store: skipping unknown key %s\n", key)
				continue
			}
			list = append(list, ns)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", userID, err)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list, nil
}

// Watch streams a change event for every write under the user prefix until
// ctx is cancelled.
func (b *badgerPersistence) Watch(ctx context.Context) (<-chan Event, error) {
	events := make(chan Event, 64)
	send := func(ev Event) {
		select {
		case events <- ev:
		default:
		}
	}
	throttle := newEventThrottle(100 * time.Millisecond)

	go func() {
		defer close(events)
		defer throttle.Stop()
		match := []pb.Match{{Prefix: []byte(badgerUserPrefix)}}
		err := b.db.Subscribe(ctx, func(kvs *badger.KVList) error {
			for _, kv := range kvs.Kv {
				if kv == nil || !bytes.HasPrefix(kv.Key, []byte(badgerUserPrefix)) {
					continue
				}
				userID, ns, ok := parseBadgerKey(kv.Key)
				if !ok {
					throttle.Enqueue(Event{Type: EventInvalidated}, send)
					continue
				}
				throttle.Enqueue(Event{Type: EventNamespaceChanged, UserID: userID, Namespace: ns}, send)
			}
			return nil
		}, match)
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "store: badger subscribe: %v\n", err)
		}
	}()
	return events, nil
}

func (b *badgerPersistence) Close() error {
	return b.db.Close()
}
