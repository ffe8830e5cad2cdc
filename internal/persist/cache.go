package persist

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"
)

// Entry is a single cached analysis result for one position.
type Entry struct {
	FEN       string    `json:"fen"`
	BestMove  string    `json:"best_move"`
	Score     int       `json:"score"`
	Depth     int       `json:"depth"`
	Timestamp time.Time `json:"timestamp"`
}

// Cache wraps BadgerDB for storing analysis results keyed by a position's
// Polyglot-style hash - a fixed-width key from its own seeded key tables
// that stays valid across builds even if the engine's internal Zobrist
// table layout changes. A
// Cache with a nil db (see NewDisabled) answers every Load as a miss and
// every Store as a silent no-op, so callers never need a nil check.
type Cache struct {
	db  *badger.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Open opens (creating if necessary) the BadgerDB cache at dir. Pass an
// empty dir to get an in-memory-only disabled cache (see NewDisabled).
func Open(dir string) (*Cache, error) {
	if dir == "" {
		return NewDisabled(), nil
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db, enc: enc, dec: dec}, nil
}

// NewDisabled returns a Cache that never persists anything. Used when no
// cache directory was configured.
func NewDisabled() *Cache {
	return &Cache{}
}

// Close closes the underlying database. Safe to call on a disabled cache.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Store records an analysis result under key, compressing the encoded
// record with zstd before writing. Errors are the caller's to log or
// ignore; Store never panics on a disabled cache.
func (c *Cache) Store(key uint64, e Entry) error {
	if c.db == nil {
		return nil
	}

	e.Timestamp = time.Now()

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	compressed := c.enc.EncodeAll(data, nil)

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyBytes(key), compressed)
	})
}

// Load looks up the cached analysis under key. found is false on a cache
// miss or a disabled cache.
func (c *Cache) Load(key uint64) (entry Entry, found bool, err error) {
	if c.db == nil {
		return Entry{}, false, nil
	}

	err = c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyBytes(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			decompressed, err := c.dec.DecodeAll(val, nil)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(decompressed, &entry); err != nil {
				return err
			}
			found = true
			return nil
		})
	})

	return entry, found, err
}

func keyBytes(key uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], key)
	return b[:]
}
