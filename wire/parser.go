package wire

import (
	"bytes"
)

// Parser implements spec.md 4.C's message_parser state machine: idle ->
// reading_header -> reading_payload -> completed/failed. A single Parser
// is reused across every datagram a node receives; it carries no per-call
// state of its own beyond the capabilities wired in at construction, so
// it is safe to call DeserializeBuffer concurrently once constructed so
// long as the wired capabilities are themselves safe for concurrent use
// (Block/VoteUniquer are; a ledger's BlockCodec/VoteCodec/WorkVerifier
// must be if the host calls from multiple goroutines).
type Parser struct {
	Network      NetworkConstants
	BlockCodec   BlockCodec
	VoteCodec    VoteCodec
	WorkVerifier WorkVerifier
	BlockUniquer *BlockUniquer
	VoteUniquer  *VoteUniquer
	Visitor      Visitor
	Metrics      *ParserMetrics
}

// NewParser wires the capabilities a Parser needs. uniquers and metrics
// may be nil: a nil BlockUniquer/VoteUniquer skips interning, a nil
// *ParserMetrics skips counting.
func NewParser(network NetworkConstants, blockCodec BlockCodec, voteCodec VoteCodec, workVerifier WorkVerifier, blockUniquer *BlockUniquer, voteUniquer *VoteUniquer, visitor Visitor, metrics *ParserMetrics) *Parser {
	return &Parser{
		Network:      network,
		BlockCodec:   blockCodec,
		VoteCodec:    voteCodec,
		WorkVerifier: workVerifier,
		BlockUniquer: blockUniquer,
		VoteUniquer:  voteUniquer,
		Visitor:      visitor,
		Metrics:      metrics,
	}
}

// DeserializeBuffer runs data through the full state machine and returns
// the terminal ParseStatus. On StatusSuccess, the decoded message has
// already been handed to p.Visitor before this call returns -- there is
// no separate retrieval step.
//
// This entry point only covers the five message types carried directly
// over UDP (keepalive, publish, confirm_req, confirm_ack, node_id_handshake).
// The bulk-transport variants (bulk_pull, bulk_pull_account,
// bulk_pull_blocks, bulk_push, frontier_req) are framed over TCP by a
// separate reader, not this datagram parser; DeserializeBuffer reports
// StatusInvalidMessageType for any of their codes, same as for a code
// this package has never heard of. Their own Deserialize* functions
// remain directly callable by that TCP-side reader.
func (p *Parser) DeserializeBuffer(data []byte) ParseStatus {
	status := p.parse(data)
	p.Metrics.observe(status)
	return status
}

func (p *Parser) parse(data []byte) ParseStatus {
	// Step 1: size gate, before touching a single byte of the header.
	if len(data) > MaxSafeUDPMessageSize {
		return StatusInvalidHeader
	}

	r := bytes.NewReader(data)

	// Step 2: header.
	header, err := DeserializeHeader(r)
	if err != nil {
		return StatusInvalidHeader
	}

	// Step 3: magic / network / version gates, in that order -- a bad
	// magic byte is cheaper to reject than walking the network table,
	// and both are cheaper than dispatching into a variant codec.
	if !header.ValidMagic() {
		return StatusInvalidMagic
	}
	if !header.ValidNetwork(p.Network.Network()) {
		return StatusInvalidNetwork
	}
	if header.VersionUsing < p.Network.MinimumSupportedVersion() {
		return StatusOutdatedVersion
	}

	// Step 4-7: dispatch, decode, work check, exactness, visit.
	switch header.Type {
	case TypeKeepalive:
		return p.parseKeepalive(r, header)
	case TypePublish:
		return p.parsePublish(r, header)
	case TypeConfirmReq:
		return p.parseConfirmReq(r, header)
	case TypeConfirmAck:
		return p.parseConfirmAck(r, header)
	case TypeNodeIDHandshake:
		return p.parseNodeIDHandshake(r, header)
	default:
		// Covers bulk_pull/bulk_push/frontier_req/bulk_pull_blocks/
		// bulk_pull_account (not parsed on this path) and any code
		// this version of the protocol has never assigned.
		return StatusInvalidMessageType
	}
}

// exact reports whether r has been consumed exactly, per spec.md 4.C step
// 7: trailing bytes after a structurally valid payload are themselves a
// parse failure, not a silently-ignored tail.
func exact(r *bytes.Reader) bool { return r.Len() == 0 }

func (p *Parser) parseKeepalive(r *bytes.Reader, header MessageHeader) ParseStatus {
	msg, err := DeserializeKeepalive(r, header)
	if err != nil || !exact(r) {
		return StatusInvalidKeepaliveMessage
	}
	p.Visitor.Keepalive(msg)
	return StatusSuccess
}

func (p *Parser) parsePublish(r *bytes.Reader, header MessageHeader) ParseStatus {
	if !header.BlockType().Known() || header.BlockType() == BlockTypeNotABlock {
		return StatusInvalidPublishMessage
	}
	msg, err := DeserializePublish(r, header, p.BlockCodec, p.WorkVerifier, p.BlockUniquer)
	if err == ErrInsufficientWork {
		return StatusInsufficientWork
	}
	if err != nil || !exact(r) {
		return StatusInvalidPublishMessage
	}
	p.Visitor.Publish(msg)
	return StatusSuccess
}

func (p *Parser) parseConfirmReq(r *bytes.Reader, header MessageHeader) ParseStatus {
	if !header.BlockType().Known() || header.BlockType() == BlockTypeNotABlock {
		return StatusInvalidConfirmReqMessage
	}
	msg, err := DeserializeConfirmReq(r, header, p.BlockCodec, p.WorkVerifier, p.BlockUniquer)
	if err == ErrInsufficientWork {
		return StatusInsufficientWork
	}
	if err != nil || !exact(r) {
		return StatusInvalidConfirmReqMessage
	}
	p.Visitor.ConfirmReq(msg)
	return StatusSuccess
}

func (p *Parser) parseConfirmAck(r *bytes.Reader, header MessageHeader) ParseStatus {
	if !header.BlockType().Known() {
		return StatusInvalidConfirmAckMessage
	}
	msg, err := DeserializeConfirmAck(r, header, p.BlockCodec, p.VoteCodec, p.WorkVerifier, p.VoteUniquer)
	if err == ErrInsufficientWork {
		return StatusInsufficientWork
	}
	if err != nil || !exact(r) {
		return StatusInvalidConfirmAckMessage
	}
	p.Visitor.ConfirmAck(msg)
	return StatusSuccess
}

func (p *Parser) parseNodeIDHandshake(r *bytes.Reader, header MessageHeader) ParseStatus {
	msg, err := DeserializeNodeIDHandshake(r, header)
	if err != nil || !exact(r) {
		return StatusInvalidNodeIDHandshakeMessage
	}
	p.Visitor.NodeIDHandshake(msg)
	return StatusSuccess
}
