package ledger

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger"

	"github.com/996BC/latticenet/utils"
)

var logger = utils.NewLogger("ledger")

// key prefixes, following db/badger.go's flat single-bucket convention
// (badger has no column families, so every key is namespaced by a
// leading tag byte).
const (
	prefixBlock    byte = 'b' // block hash -> serialized StateBlock
	prefixVote     byte = 'v' // vote hash  -> serialized Vote
	prefixFrontier byte = 'f' // account    -> latest block hash
)

// Store persists what the wire layer has already parsed and validated:
// blocks and votes the node's visitor chose to keep, plus a per-account
// frontier index so a bulk_pull/frontier_req responder (not implemented
// in this repo -- that's the bootstrap session state machine spec.md
// keeps external) has something to walk. It is not a ledger in the
// accounting sense: Store never computes a balance or rejects a block
// for double-spending.
type Store struct {
	db *badger.DB
	lm *utils.LoopMode
}

// Open mirrors the teacher's db.Init: resolve the path, run the
// existence/permission checks, open badger with the same conservative
// file-size options, and start a background value-log GC loop.
func Open(path string) (*Store, error) {
	dbpath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if err := utils.AccessCheck(dbpath); err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(dbpath)
	opts = opts.WithLogger(nil)
	opts = opts.WithValueLogFileSize(512 << 20)
	opts = opts.WithMaxTableSize(32 << 20)

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("ledger: open store: %w", err)
	}

	s := &Store{db: bdb, lm: utils.NewLoop(1)}
	go s.gcLoop()
	s.lm.StartWorking()
	return s, nil
}

func (s *Store) Close() {
	s.lm.Stop()
	s.db.Close()
}

// PutBlock stores block and advances its account's frontier to it,
// provided previous still matches the current frontier (or the block is
// an open block and the account has none yet). This is the one
// ordering invariant Store enforces; everything else about whether the
// block is *correct* (balance math, representative weight) is out of
// scope.
func (s *Store) PutBlock(b *StateBlock) error {
	return s.db.Update(func(tx *badger.Txn) error {
		current, err := getFrontier(tx, b.Account)
		if err == badger.ErrKeyNotFound {
			if b.Previous != ([32]byte{}) {
				return fmt.Errorf("ledger: first block for account must have zero previous")
			}
		} else if err != nil {
			return err
		} else if current != b.Previous {
			return fmt.Errorf("ledger: block does not extend account frontier")
		}

		var buf bytes.Buffer
		if err := b.Serialize(&buf); err != nil {
			return err
		}
		hash := b.Hash()
		if err := tx.Set(blockKey(hash), buf.Bytes()); err != nil {
			return err
		}
		return tx.Set(frontierKey(b.Account), hash[:])
	})
}

// GetBlock fetches a previously stored block by hash.
func (s *Store) GetBlock(hash [32]byte) (*StateBlock, error) {
	var block *StateBlock
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(blockKey(hash))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			b, err := DeserializeStateBlock(bytes.NewReader(val))
			if err != nil {
				return err
			}
			block = b
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, fmt.Errorf("ledger: block not found")
	}
	return block, err
}

// Frontier returns the hash of account's latest known block.
func (s *Store) Frontier(account [32]byte) ([32]byte, error) {
	var hash [32]byte
	err := s.db.View(func(tx *badger.Txn) error {
		h, err := getFrontier(tx, account)
		hash = h
		return err
	})
	if err == badger.ErrKeyNotFound {
		return [32]byte{}, fmt.Errorf("ledger: no frontier for account")
	}
	return hash, err
}

func getFrontier(tx *badger.Txn, account [32]byte) ([32]byte, error) {
	var hash [32]byte
	item, err := tx.Get(frontierKey(account))
	if err != nil {
		return hash, err
	}
	return hash, item.Value(func(val []byte) error {
		copy(hash[:], val)
		return nil
	})
}

// PutVote stores a vote by its content hash, for later re-serving to
// peers that ask for it again -- the wire-level VoteUniquer already
// dedups in-memory within a process lifetime; Store extends that across
// restarts.
func (s *Store) PutVote(v *Vote) error {
	return s.db.Update(func(tx *badger.Txn) error {
		var buf bytes.Buffer
		if v.Block != nil {
			if err := v.Block.Serialize(&buf); err != nil {
				return err
			}
		} else {
			for _, h := range v.HashList {
				buf.Write(h[:])
			}
		}
		return tx.Set(voteKey(v.Hash()), buf.Bytes())
	})
}

func blockKey(hash [32]byte) []byte    { return append([]byte{prefixBlock}, hash[:]...) }
func voteKey(hash [32]byte) []byte     { return append([]byte{prefixVote}, hash[:]...) }
func frontierKey(account [32]byte) []byte {
	return append([]byte{prefixFrontier}, account[:]...)
}

func (s *Store) gcLoop() {
	s.lm.Add()
	defer s.lm.Done()

	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.lm.D:
			return
		case <-ticker.C:
			s.db.RunValueLogGC(0.5)
		}
	}
}
