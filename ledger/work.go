// Package ledger gives the wire package's BlockCodec, VoteCodec, and
// WorkVerifier capability interfaces concrete, testable bodies: a single
// state-block representation, ed25519-backed vote verification, a
// fixed-threshold work-proof check, and a badger-backed store for what
// the protocol layer has already validated. None of this is consensus:
// ledger never tallies votes, and the only ordering rule it enforces is
// that a stored block extends its account's current frontier (see
// Store.PutBlock). It answers exactly the questions spec.md leaves to
// an "external collaborator": is this block's shape well-formed, is its
// signature valid, is its attached work sufficient, and what was already
// seen.
package ledger

import (
	"encoding/binary"

	"github.com/996BC/latticenet/identity"
	"github.com/996BC/latticenet/wire"
)

// WorkThreshold gates how expensive a valid work proof must be. Unlike
// the teacher's core/blockchain/difficulty.go -- which retargets a
// compact mining target every ReferenceBlocks against a moving-average
// block interval, bitcoin-style -- this is a single fixed threshold with
// no retargeting at all. That asymmetry is deliberate: the teacher's
// blockchain mines one block at a time competitively and needs to keep
// block *interval* constant as hashpower changes, but a block-lattice
// ledger has one block per transaction with no shared interval to
// defend, so there's nothing for a retargeting loop to regulate. Only
// the teacher's "compare a derived value against a limit" shape carries
// over; the retargeting formula itself does not apply here and is not
// ported.
const WorkThreshold uint64 = 0xffffffc000000000

// Work is the 8-byte little-endian nonce a block publisher attaches to
// prove it spent CPU effort before sending. It is meaningful only
// relative to the block/account hash it was computed against.
type Work [8]byte

// workedBlock is satisfied by ledger's own StateBlock in addition to
// wire.Block; a block that doesn't carry a work value (anything from
// another package's test fixtures, for instance) is never judged
// sufficient by a real Verifier.
type workedBlock interface {
	Hash() [32]byte
	WorkSeed() []byte
	Work() Work
}

// Verifier is the default WorkVerifier implementation: Blake2b(work ||
// seed) read as a little-endian uint64 must be >= Threshold. Threshold
// defaults to WorkThreshold but is a field, not a constant, so a test
// network can run with cheap, fast-to-generate work.
type Verifier struct {
	Threshold uint64
}

// NewVerifier builds a Verifier using the live network's threshold.
func NewVerifier() *Verifier {
	return &Verifier{Threshold: WorkThreshold}
}

// Sufficient implements wire.WorkVerifier. A block that doesn't expose a
// work value (wrong concrete type) is always rejected -- there's no
// proof to check, so there's nothing to accept.
func (v *Verifier) Sufficient(b wire.Block) bool {
	wb, ok := b.(workedBlock)
	if !ok {
		return false
	}
	digest := identity.Hash8(wb.Work(), wb.WorkSeed())
	return binary.LittleEndian.Uint64(digest[:]) >= v.Threshold
}

// Generate searches for a work value satisfying threshold against seed,
// starting from start and incrementing it until one passes; it returns
// the work value and how many candidates it tried. It's here for symmetry with Sufficient
// and for tests/tools that need to mint a valid block without an
// external work-generation service; a production node would more likely
// farm this out to a GPU-backed work server, which is exactly the kind
// of delegated capability spec.md keeps outside this core.
func Generate(seed []byte, threshold uint64, start Work) (Work, int) {
	work := start
	attempts := 0
	for {
		attempts++
		digest := identity.Hash8(work, seed)
		if binary.LittleEndian.Uint64(digest[:]) >= threshold {
			return work, attempts
		}
		incrementWork(&work)
	}
}

func incrementWork(w *Work) {
	for i := range w {
		w[i]++
		if w[i] != 0 {
			return
		}
	}
}
