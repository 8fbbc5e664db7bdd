// Package wire implements the peer-to-peer message protocol layer: framing,
// parsing and validating every datagram exchanged between lattice nodes
// (keepalives, block/vote propagation, handshakes, bootstrap requests).
//
// The package owns wire format only. It never touches sockets (that's
// node/transport), never validates ledger state (that's ledger), and never
// verifies a signature or a work proof itself -- those are delegated to the
// BlockCodec/VoteCodec/WorkVerifier capabilities in capability.go.
package wire

import "fmt"

// NetworkTag identifies which deployed network a node belongs to. It is
// encoded as the second magic byte of every message header.
type NetworkTag uint8

const (
	NetworkTest NetworkTag = iota
	NetworkBeta
	NetworkLive
)

func (n NetworkTag) String() string {
	switch n {
	case NetworkTest:
		return "test"
	case NetworkBeta:
		return "beta"
	case NetworkLive:
		return "live"
	default:
		return fmt.Sprintf("network(%d)", uint8(n))
	}
}

// magicByte returns the second magic byte ('A'/'B'/'C') for a network tag.
func (n NetworkTag) magicByte() byte {
	return 'A' + byte(n)
}

// networkTagFromMagic is the inverse of magicByte; ok is false for bytes
// outside 'A'..'C'.
func networkTagFromMagic(b byte) (tag NetworkTag, ok bool) {
	if b < 'A' || b > 'C' {
		return 0, false
	}
	return NetworkTag(b - 'A'), true
}

const magicByte0 = 'R'

// NetworkConstants is the small capability this package consumes to learn
// which network it is running on and how old a peer it still tolerates.
// It is supplied by the host (node.New in node/node.go in this repo), never built
// into wire itself, so the codec can be unit tested against every network
// tag without a global.
type NetworkConstants interface {
	Network() NetworkTag
	MinimumSupportedVersion() uint8
}

// StaticNetworkConstants is the simplest NetworkConstants: fixed at
// construction. Good enough for a single-process node and for tests.
type StaticNetworkConstants struct {
	Tag                NetworkTag
	MinSupportedVersion uint8
}

func (s StaticNetworkConstants) Network() NetworkTag            { return s.Tag }
func (s StaticNetworkConstants) MinimumSupportedVersion() uint8 { return s.MinSupportedVersion }

// CurrentVersion triple used when building outgoing headers. Mirrors the
// teacher's params.CurrentCodeVersion/MinimizeVersionRequired split between
// "what I speak" and "what I still accept".
const (
	VersionMax   uint8 = 19
	VersionUsing uint8 = 19
	VersionMin   uint8 = 18
)

// MaxSafeUDPMessageSize is the build constant spec.md 4.C calls out: the
// parser rejects anything larger at the entry gate, before touching the
// header, to stay clear of IP fragmentation.
const MaxSafeUDPMessageSize = 1472
