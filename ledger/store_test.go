package ledger

import (
	"os"
	"testing"
)

func openTestStore(t *testing.T) (*Store, func()) {
	dir, err := os.MkdirTemp("", "ledger_store_test")
	if err != nil {
		t.Fatalf("mkdir temp: %v", err)
	}
	s, err := Open(dir)
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("open store: %v", err)
	}
	return s, func() {
		s.Close()
		os.RemoveAll(dir)
	}
}

func TestStorePutGetBlockAndFrontier(t *testing.T) {
	s, cleanup := openTestStore(t)
	defer cleanup()

	_, priv, account := genAccount(t)
	var rep, link [32]byte
	var balance [16]byte

	open := NewStateBlock(account, [32]byte{}, rep, link, balance, priv, 0)
	if err := s.PutBlock(open); err != nil {
		t.Fatalf("put open block: %v", err)
	}

	got, err := s.GetBlock(open.Hash())
	if err != nil {
		t.Fatalf("get block: %v", err)
	}
	if got.Hash() != open.Hash() {
		t.Fatal("stored block hash mismatch")
	}

	frontier, err := s.Frontier(account)
	if err != nil {
		t.Fatalf("frontier: %v", err)
	}
	if frontier != open.Hash() {
		t.Fatal("frontier should point at the just-stored block")
	}

	second := NewStateBlock(account, open.Hash(), rep, link, balance, priv, 0)
	if err := s.PutBlock(second); err != nil {
		t.Fatalf("put second block: %v", err)
	}
	frontier, err = s.Frontier(account)
	if err != nil {
		t.Fatalf("frontier after second block: %v", err)
	}
	if frontier != second.Hash() {
		t.Fatal("frontier should advance to the second block")
	}
}

func TestStoreRejectsBlockNotExtendingFrontier(t *testing.T) {
	s, cleanup := openTestStore(t)
	defer cleanup()

	_, priv, account := genAccount(t)
	var rep, link [32]byte
	var balance [16]byte

	open := NewStateBlock(account, [32]byte{}, rep, link, balance, priv, 0)
	if err := s.PutBlock(open); err != nil {
		t.Fatalf("put open block: %v", err)
	}

	var wrongPrevious [32]byte
	wrongPrevious[0] = 0xAB
	stale := NewStateBlock(account, wrongPrevious, rep, link, balance, priv, 0)
	if err := s.PutBlock(stale); err == nil {
		t.Fatal("expected a block with a stale previous to be rejected")
	}
}

func TestStorePutVote(t *testing.T) {
	s, cleanup := openTestStore(t)
	defer cleanup()

	account := [32]byte{1}
	var h [32]byte
	h[0] = 2
	codec := VoteCodec{}
	v, err := codec.DeserializeHashes(account, [64]byte{}, 1, [][32]byte{h})
	if err != nil {
		t.Fatalf("build vote: %v", err)
	}
	if err := s.PutVote(v.(*Vote)); err != nil {
		t.Fatalf("put vote: %v", err)
	}
}
