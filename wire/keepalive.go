package wire

import (
	"fmt"
	"io"
)

// keepalivePeerCount is how many peer slots a keepalive carries; unused
// slots are zero address / zero port.
const keepalivePeerCount = 8

// keepalivePeerSize is 16 address bytes + 2-byte little-endian port.
const keepalivePeerSize = 18

// KeepalivePayloadSize is keepalivePeerCount * keepalivePeerSize.
const KeepalivePayloadSize = keepalivePeerCount * keepalivePeerSize

// Keepalive carries up to 8 peer endpoints the sender offers for
// discovery. Slots the sender didn't fill are all-zero.
type Keepalive struct {
	Header MessageHeader
	Peers  [keepalivePeerCount]Endpoint
}

// NewKeepalive builds an outgoing keepalive for network, padding with
// zero endpoints past len(peers).
func NewKeepalive(network NetworkTag, peers []Endpoint) *Keepalive {
	k := &Keepalive{Header: NewHeader(network, TypeKeepalive)}
	for i := 0; i < keepalivePeerCount && i < len(peers); i++ {
		k.Peers[i] = peers[i]
	}
	return k
}

// DeserializeKeepalive reads the 144-byte peer list following header.
func DeserializeKeepalive(r io.Reader, header MessageHeader) (*Keepalive, error) {
	var buf [KeepalivePayloadSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, fmt.Errorf("keepalive: %w", err)
	}

	k := &Keepalive{Header: header}
	for i := 0; i < keepalivePeerCount; i++ {
		off := i * keepalivePeerSize
		var addr [16]byte
		copy(addr[:], buf[off:off+16])
		port := uint16(buf[off+16]) | uint16(buf[off+17])<<8
		k.Peers[i] = Endpoint{addr: addr, port: port}
	}
	return k, nil
}

// Serialize writes header + the 144-byte peer list.
func (k *Keepalive) Serialize(w io.Writer) error {
	if err := k.Header.Serialize(w); err != nil {
		return err
	}
	var buf [KeepalivePayloadSize]byte
	for i, p := range k.Peers {
		off := i * keepalivePeerSize
		copy(buf[off:off+16], p.addr[:])
		buf[off+16] = byte(p.port)
		buf[off+17] = byte(p.port >> 8)
	}
	_, err := w.Write(buf[:])
	return err
}

func (k *Keepalive) Visit(v Visitor) { v.Keepalive(k) }

// Equal compares structurally, peer slot by peer slot.
func (k *Keepalive) Equal(o *Keepalive) bool {
	if o == nil {
		return false
	}
	for i := range k.Peers {
		if !k.Peers[i].Equal(o.Peers[i]) {
			return false
		}
	}
	return true
}
