package libcox

import (
	"bytes"
	"hash/maphash"

	"github.com/dgraph-io/badger/v3"
	"github.com/fine-structures/coxeter/gocox"
)

// StateSet is a set of canonical element keys.
type StateSet interface {

	// TryAdd adds the given key if it is not already present.
	//
	// If key is already in this StateSet, this call has no effect and TryAdd() returns false.
	// If key isn't in this set, a copy of key is added and TryAdd() returns true.
	//
	// After one or more calls to TryAdd(), call Close() for cleanup.
	TryAdd(key gocox.StateKey) bool

	// Has returns true if key has been added to this set.
	Has(key gocox.StateKey) bool

	// Len returns the number of keys added.
	Len() int

	// Close removes all previously added items from this set.
	Close()
}

// NewStateSet returns an empty StateSet using the given backend.
func NewStateSet(backend gocox.SetBackend) StateSet {
	switch backend {
	case gocox.SetLSM:
		return &lsmSet{}
	default:
		return newMemSet(DefaultPoolSz)
	}
}

// DefaultPoolSz is the size of each backing buffer used by the in-memory StateSet.
const DefaultPoolSz = 32 * 1024

// memSet is an open-addressing hash set; keys are copied into pooled backing buffers.
type memSet struct {
	hashMap   map[uint64][]byte
	hasher    maphash.Hash
	bufPool   []byte
	bufPoolSz int
	poolSz    int
}

func newMemSet(poolSz int) *memSet {
	if poolSz <= 0 {
		poolSz = DefaultPoolSz
	}
	return &memSet{
		hashMap: make(map[uint64][]byte),
		poolSz:  poolSz,
	}
}

// probe returns the slot of key and whether key is already present there.
func (set *memSet) probe(key []byte) (uint64, bool) {
	set.hasher.Reset()
	set.hasher.Write(key)
	hash := set.hasher.Sum64()

	existing, found := set.hashMap[hash]
	for found {
		if bytes.Equal(existing, key) {
			return hash, true
		}
		hash++
		existing, found = set.hashMap[hash]
	}
	return hash, false
}

func (set *memSet) TryAdd(key gocox.StateKey) bool {
	if set.hashMap == nil {
		set.hashMap = make(map[uint64][]byte)
	}

	hash, found := set.probe(key)
	if found {
		return false
	}

	// Place a copy of key in the backing pool, starting a new pool when this one is full.
	pos := set.bufPoolSz
	itemLen := len(key)
	if pos+itemLen > cap(set.bufPool) {
		allocSz := set.poolSz
		if allocSz < itemLen {
			allocSz = itemLen
		}
		set.bufPool = make([]byte, allocSz)
		set.bufPoolSz = 0
		pos = 0
	}

	set.hashMap[hash] = append(set.bufPool[pos:pos], key...)
	set.bufPoolSz += itemLen
	return true
}

func (set *memSet) Has(key gocox.StateKey) bool {
	_, found := set.probe(key)
	return found
}

func (set *memSet) Len() int {
	return len(set.hashMap)
}

func (set *memSet) Close() {
	set.bufPoolSz = 0
	set.bufPool = nil
	set.hashMap = nil
}

// lsmSet stores keys in an in-memory badger instance, opened on first use.
type lsmSet struct {
	db    *badger.DB
	count int
}

func (set *lsmSet) autoOpen() {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			panic(err)
		}
	}
}

func (set *lsmSet) TryAdd(key gocox.StateKey) bool {
	set.autoOpen()

	txn := set.db.NewTransaction(true)
	defer txn.Discard()

	added := false
	_, err := txn.Get(key)
	if err == nil {
		// no-op since the key is already in the db
	} else if err == badger.ErrKeyNotFound {
		if err = txn.Set(append([]byte{}, key...), nil); err == nil {
			err = txn.Commit()
			added = err == nil
		}
	}

	if err != nil {
		panic(err)
	}

	if added {
		set.count++
	}
	return added
}

func (set *lsmSet) Has(key gocox.StateKey) bool {
	if set.db == nil {
		return false
	}

	found := false
	err := set.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			found = true
		} else if err == badger.ErrKeyNotFound {
			err = nil
		}
		return err
	})
	if err != nil {
		panic(err)
	}
	return found
}

func (set *lsmSet) Len() int {
	return set.count
}

func (set *lsmSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
	set.count = 0
}
