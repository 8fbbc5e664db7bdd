package ledger

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/996BC/latticenet/wire"
)

func genAccount(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey, [32]byte) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	var a [32]byte
	copy(a[:], pub)
	return pub, priv, a
}

func TestStateBlockRoundTrip(t *testing.T) {
	_, priv, account := genAccount(t)
	var previous, rep, link [32]byte
	var balance [16]byte
	balance[15] = 100

	b := NewStateBlock(account, previous, rep, link, balance, priv, 0) // threshold 0: any work value passes

	var buf bytes.Buffer
	if err := b.Serialize(&buf); err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if buf.Len() != stateBlockWireSize {
		t.Fatalf("expected %d bytes, got %d", stateBlockWireSize, buf.Len())
	}

	rb, err := DeserializeStateBlock(&buf)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if rb.Hash() != b.Hash() {
		t.Fatal("round-tripped block hash changed")
	}
	if err := rb.Verify(); err != nil {
		t.Fatalf("signature should verify: %v", err)
	}
}

func TestStateBlockVerifyRejectsTamperedSignature(t *testing.T) {
	_, priv, account := genAccount(t)
	var previous, rep, link [32]byte
	var balance [16]byte

	b := NewStateBlock(account, previous, rep, link, balance, priv, 0)
	b.Signature[0] ^= 0xFF

	if err := b.Verify(); err == nil {
		t.Fatal("expected tampered signature to fail verification")
	}
}

func TestStateBlockCodecRejectsNonStateTypes(t *testing.T) {
	codec := StateBlockCodec{}
	_, err := codec.Deserialize(bytes.NewReader(nil), wire.BlockTypeSend)
	if err == nil {
		t.Fatal("expected legacy send blocks to be rejected by the default codec")
	}
}

func TestWorkSeedUsesAccountForOpenBlock(t *testing.T) {
	_, priv, account := genAccount(t)
	var rep, link [32]byte
	var balance [16]byte

	b := NewStateBlock(account, [32]byte{}, rep, link, balance, priv, 0)
	if !bytes.Equal(b.WorkSeed(), account[:]) {
		t.Fatal("an open block's work seed should be its account, not a zero previous hash")
	}
}
