package ledger

import (
	"bytes"
	"crypto/ed25519"
	"testing"
)

func signVote(t *testing.T, priv ed25519.PrivateKey, account [32]byte, seq uint64, v *Vote) {
	v.AccountID = account
	v.Sequence = seq
	v.hash = v.computeHash()
	sig := ed25519.Sign(priv, v.hash[:])
	copy(v.Signature[:], sig)
}

func TestVoteHashesSerializeAndVerify(t *testing.T) {
	_, priv, account := genAccount(t)
	codec := VoteCodec{}

	var h1, h2 [32]byte
	h1[0], h2[0] = 1, 2

	v, err := codec.DeserializeHashes(account, [64]byte{}, 5, [][32]byte{h1, h2})
	if err != nil {
		t.Fatalf("deserialize hashes: %v", err)
	}
	vote := v.(*Vote)
	signVote(t, priv, account, 5, vote)

	var buf bytes.Buffer
	if err := vote.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if err := vote.Verify(); err != nil {
		t.Fatalf("vote should verify: %v", err)
	}
}

func TestVoteBlockRejectsNonStateBlock(t *testing.T) {
	codec := VoteCodec{}
	_, priv, account := genAccount(t)
	var previous, rep, link [32]byte
	var balance [16]byte
	block := NewStateBlock(account, previous, rep, link, balance, priv, 0)

	if _, err := codec.DeserializeBlock(account, [64]byte{}, 1, block); err != nil {
		t.Fatalf("a real StateBlock should be accepted: %v", err)
	}

	if _, err := codec.DeserializeBlock(account, [64]byte{}, 1, fakeBlock{}); err == nil {
		t.Fatal("a non-StateBlock should be rejected")
	}
}
