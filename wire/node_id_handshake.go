package wire

import (
	"fmt"
	"io"
)

// NodeIDHandshakeResponse is the account(32) + signature(64) pair a
// responder attaches to prove it owns its node identity key.
type NodeIDHandshakeResponse struct {
	Account   [32]byte
	Signature [64]byte
}

// NodeIDHandshake is variable length, determined by the header's query
// (bit 0) and response (bit 1) flags. At least one of the two MUST be
// set; neither being set is a protocol error (spec.md 4.C).
type NodeIDHandshake struct {
	Header   MessageHeader
	Query    *[32]byte
	Response *NodeIDHandshakeResponse
}

// NewNodeIDHandshake builds an outgoing handshake message and sets the
// header flags to match which of query/response are present.
func NewNodeIDHandshake(network NetworkTag, query *[32]byte, response *NodeIDHandshakeResponse) *NodeIDHandshake {
	h := NewHeader(network, TypeNodeIDHandshake)
	h.NodeIDHandshakeSetQuery(query != nil)
	h.NodeIDHandshakeSetResponse(response != nil)
	return &NodeIDHandshake{Header: h, Query: query, Response: response}
}

func DeserializeNodeIDHandshake(r io.Reader, header MessageHeader) (*NodeIDHandshake, error) {
	if !header.NodeIDHandshakeIsQuery() && !header.NodeIDHandshakeIsResponse() {
		return nil, fmt.Errorf("node_id_handshake: neither query nor response flag set")
	}

	n := &NodeIDHandshake{Header: header}
	if header.NodeIDHandshakeIsQuery() {
		var cookie [32]byte
		if _, err := io.ReadFull(r, cookie[:]); err != nil {
			return nil, fmt.Errorf("node_id_handshake query: %w", err)
		}
		n.Query = &cookie
	}
	if header.NodeIDHandshakeIsResponse() {
		var resp NodeIDHandshakeResponse
		if _, err := io.ReadFull(r, resp.Account[:]); err != nil {
			return nil, fmt.Errorf("node_id_handshake response account: %w", err)
		}
		if _, err := io.ReadFull(r, resp.Signature[:]); err != nil {
			return nil, fmt.Errorf("node_id_handshake response signature: %w", err)
		}
		n.Response = &resp
	}
	return n, nil
}

func (n *NodeIDHandshake) Serialize(w io.Writer) error {
	if err := n.Header.Serialize(w); err != nil {
		return err
	}
	if n.Query != nil {
		if _, err := w.Write(n.Query[:]); err != nil {
			return err
		}
	}
	if n.Response != nil {
		if _, err := w.Write(n.Response.Account[:]); err != nil {
			return err
		}
		if _, err := w.Write(n.Response.Signature[:]); err != nil {
			return err
		}
	}
	return nil
}

func (n *NodeIDHandshake) Visit(v Visitor) { v.NodeIDHandshake(n) }

func (n *NodeIDHandshake) Equal(o *NodeIDHandshake) bool {
	if o == nil {
		return false
	}
	if (n.Query == nil) != (o.Query == nil) {
		return false
	}
	if n.Query != nil && *n.Query != *o.Query {
		return false
	}
	if (n.Response == nil) != (o.Response == nil) {
		return false
	}
	if n.Response != nil && *n.Response != *o.Response {
		return false
	}
	return true
}
