package identity

import (
	"crypto/rand"
	"fmt"

	"github.com/996BC/latticenet/wire"
)

// Handshake drives the node_id_handshake variant against this node's own
// KeyPair: issuing a cookie to a peer and answering the peer's cookie, or
// answering both at once. Adapted from the teacher's p2p/negotiator.go
// challenge/response shape -- sign with the long-term key, let the peer
// verify -- but simplified down to spec.md's actual wire contract: no
// session key exchange, no AES-GCM transport encryption, since
// node_id_handshake's whole job here is proving identity, not
// negotiating a transport cipher (that's the teacher's own concern for
// its encrypted TCP channel, and out of scope for a UDP identity proof).
type Handshake struct {
	Self *KeyPair
}

// NewHandshake wires a Handshake to this node's identity.
func NewHandshake(self *KeyPair) *Handshake {
	return &Handshake{Self: self}
}

// Query builds an outgoing node_id_handshake carrying a fresh random
// cookie for the peer to sign, and returns the cookie so the caller can
// check it against whatever response eventually arrives.
func (h *Handshake) Query(network wire.NetworkTag) (*wire.NodeIDHandshake, [32]byte, error) {
	var cookie [32]byte
	if _, err := rand.Read(cookie[:]); err != nil {
		return nil, cookie, fmt.Errorf("identity: generate handshake cookie: %w", err)
	}
	return wire.NewNodeIDHandshake(network, &cookie, nil), cookie, nil
}

// Respond answers an incoming query by signing its cookie, and may fold
// in our own challenge cookie at the same time (both flags set), mirroring
// spec.md's "both may be present" case for a server that challenges back
// while answering.
func (h *Handshake) Respond(network wire.NetworkTag, incoming *wire.NodeIDHandshake, challengeBack bool) (*wire.NodeIDHandshake, [32]byte, error) {
	if incoming.Query == nil {
		return nil, [32]byte{}, fmt.Errorf("identity: nothing to respond to, incoming has no query")
	}

	sig := h.Self.Sign(incoming.Query[:])
	resp := &wire.NodeIDHandshakeResponse{
		Account:   h.Self.Account(),
		Signature: sig,
	}

	var ourCookie [32]byte
	var query *[32]byte
	if challengeBack {
		if _, err := rand.Read(ourCookie[:]); err != nil {
			return nil, ourCookie, fmt.Errorf("identity: generate challenge-back cookie: %w", err)
		}
		query = &ourCookie
	}

	return wire.NewNodeIDHandshake(network, query, resp), ourCookie, nil
}

// VerifyResponse checks a peer's response against the cookie we sent it.
func (h *Handshake) VerifyResponse(cookie [32]byte, resp *wire.NodeIDHandshakeResponse) bool {
	if resp == nil {
		return false
	}
	return VerifyAccount(resp.Account, cookie[:], resp.Signature)
}
