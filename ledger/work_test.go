package ledger

import (
	"io"
	"testing"
)

func TestGenerateProducesSufficientWork(t *testing.T) {
	seed := []byte("an account or previous hash, 32B") // exactly 32 bytes, the width of Previous
	// A low threshold keeps the test fast: Generate should still only
	// return once the digest actually clears it.
	const threshold = uint64(0x0000000100000000)

	work, attempts := Generate(seed, threshold, Work{})
	if attempts <= 0 {
		t.Fatal("expected at least one attempt")
	}

	v := &Verifier{Threshold: threshold}
	b := &StateBlock{WorkValue: work}
	copy(b.Previous[:], seed) // make WorkSeed() return seed via Previous
	if !v.Sufficient(b) {
		t.Fatal("generated work should satisfy its own threshold")
	}
}

func TestVerifierRejectsWrongConcreteType(t *testing.T) {
	v := NewVerifier()
	if v.Sufficient(fakeBlock{}) {
		t.Fatal("a block type without a work value must never be judged sufficient")
	}
}

func TestVerifierRejectsInsufficientWork(t *testing.T) {
	v := &Verifier{Threshold: ^uint64(0)} // impossible threshold
	b := &StateBlock{}
	copy(b.Previous[:], []byte("seed"))
	if v.Sufficient(b) {
		t.Fatal("an all-but-impossible threshold should reject a zero work value")
	}
}

// fakeBlock satisfies wire.Block but not workedBlock.
type fakeBlock struct{}

func (fakeBlock) Hash() [32]byte          { return [32]byte{} }
func (fakeBlock) Serialize(w io.Writer) error { return nil }
