package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MessageType is the u8 wire code identifying a message variant. Frozen
// for wire compatibility: a code is never reused, even once its variant
// is deprecated.
type MessageType uint8

const (
	TypeInvalid          MessageType = 0x00
	TypeNotAType         MessageType = 0x01
	TypeKeepalive        MessageType = 0x02
	TypePublish          MessageType = 0x03
	TypeConfirmReq       MessageType = 0x04
	TypeConfirmAck       MessageType = 0x05
	TypeBulkPull         MessageType = 0x06
	TypeBulkPush         MessageType = 0x07
	TypeFrontierReq      MessageType = 0x08
	TypeBulkPullBlocks   MessageType = 0x09 // deprecated, still parseable
	TypeNodeIDHandshake  MessageType = 0x0a
	TypeBulkPullAccount  MessageType = 0x0b
)

func (t MessageType) String() string {
	switch t {
	case TypeInvalid:
		return "invalid"
	case TypeNotAType:
		return "not_a_type"
	case TypeKeepalive:
		return "keepalive"
	case TypePublish:
		return "publish"
	case TypeConfirmReq:
		return "confirm_req"
	case TypeConfirmAck:
		return "confirm_ack"
	case TypeBulkPull:
		return "bulk_pull"
	case TypeBulkPush:
		return "bulk_push"
	case TypeFrontierReq:
		return "frontier_req"
	case TypeBulkPullBlocks:
		return "bulk_pull_blocks"
	case TypeNodeIDHandshake:
		return "node_id_handshake"
	case TypeBulkPullAccount:
		return "bulk_pull_account"
	default:
		return fmt.Sprintf("message_type(0x%02x)", uint8(t))
	}
}

// extensions bit positions, per spec.md 3.
const (
	blockTypeMask  = uint16(0x0f00)
	blockTypeShift = 8

	bulkPullCountPresentFlag = uint(0)

	nodeIDHandshakeQueryFlag    = uint(0)
	nodeIDHandshakeResponseFlag = uint(1)
)

// MessageHeader is the fixed 8-byte header every datagram starts with:
// magic (2), version triple (3), type (1), extensions (2, little-endian).
type MessageHeader struct {
	Magic        [2]byte
	VersionMax   uint8
	VersionUsing uint8
	VersionMin   uint8
	Type         MessageType
	Extensions   uint16
}

// NewHeader zero-initializes extensions and sets the version triple from
// the build constants, per spec.md 4.B "new(type)".
func NewHeader(network NetworkTag, t MessageType) MessageHeader {
	return MessageHeader{
		Magic:        [2]byte{magicByte0, network.magicByte()},
		VersionMax:   VersionMax,
		VersionUsing: VersionUsing,
		VersionMin:   VersionMin,
		Type:         t,
	}
}

// Serialize writes the 8-byte header.
func (h MessageHeader) Serialize(w io.Writer) error {
	var buf [8]byte
	buf[0], buf[1] = h.Magic[0], h.Magic[1]
	buf[2] = h.VersionMax
	buf[3] = h.VersionUsing
	buf[4] = h.VersionMin
	buf[5] = byte(h.Type)
	binary.LittleEndian.PutUint16(buf[6:8], h.Extensions)
	_, err := w.Write(buf[:])
	return err
}

// DeserializeHeader reads 8 bytes into a header. It does NOT validate
// magic or network -- that's the parser's policy, per spec.md 4.B.
func DeserializeHeader(r io.Reader) (MessageHeader, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return MessageHeader{}, fmt.Errorf("short header: %w", err)
	}
	return MessageHeader{
		Magic:        [2]byte{buf[0], buf[1]},
		VersionMax:   buf[2],
		VersionUsing: buf[3],
		VersionMin:   buf[4],
		Type:         MessageType(buf[5]),
		Extensions:   binary.LittleEndian.Uint16(buf[6:8]),
	}, nil
}

// BlockType extracts the nibble at bits 8-11.
func (h MessageHeader) BlockType() BlockType {
	return BlockType((h.Extensions & blockTypeMask) >> blockTypeShift)
}

// BlockTypeSet writes the nibble, leaving every other bit intact.
func (h *MessageHeader) BlockTypeSet(t BlockType) {
	h.Extensions = (h.Extensions &^ blockTypeMask) | (uint16(t)<<blockTypeShift)&blockTypeMask
}

func (h MessageHeader) flag(pos uint) bool {
	return h.Extensions&(1<<pos) != 0
}

func (h *MessageHeader) setFlag(pos uint, v bool) {
	if v {
		h.Extensions |= 1 << pos
	} else {
		h.Extensions &^= 1 << pos
	}
}

// BulkPullIsCountPresent reads bit 0: whether an 8-byte count trailer
// follows the fixed bulk_pull body.
func (h MessageHeader) BulkPullIsCountPresent() bool { return h.flag(bulkPullCountPresentFlag) }

func (h *MessageHeader) BulkPullSetCountPresent(v bool) { h.setFlag(bulkPullCountPresentFlag, v) }

// NodeIDHandshakeIsQuery / IsResponse read bits 0/1 for node_id_handshake.
func (h MessageHeader) NodeIDHandshakeIsQuery() bool { return h.flag(nodeIDHandshakeQueryFlag) }
func (h MessageHeader) NodeIDHandshakeIsResponse() bool {
	return h.flag(nodeIDHandshakeResponseFlag)
}

func (h *MessageHeader) NodeIDHandshakeSetQuery(v bool) { h.setFlag(nodeIDHandshakeQueryFlag, v) }
func (h *MessageHeader) NodeIDHandshakeSetResponse(v bool) {
	h.setFlag(nodeIDHandshakeResponseFlag, v)
}

// ValidMagic reports whether the first magic byte is 'R' and the second
// is one of 'A'..'C'.
func (h MessageHeader) ValidMagic() bool {
	if h.Magic[0] != magicByte0 {
		return false
	}
	_, ok := networkTagFromMagic(h.Magic[1])
	return ok
}

// ValidNetwork reports whether the header's network byte matches local.
func (h MessageHeader) ValidNetwork(local NetworkTag) bool {
	tag, ok := networkTagFromMagic(h.Magic[1])
	return ok && tag == local
}
