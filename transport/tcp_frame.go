// Package transport frames the bulk-transport message variants
// (bulk_pull, bulk_pull_account, bulk_pull_blocks, bulk_push,
// frontier_req) over a TCP byte stream. spec.md's parser only ever
// consumes a single already-framed UDP datagram; it explicitly leaves
// "how bulk-transport bytes get framed over a stream socket" to a
// separate reader, since a bootstrap session is a stateful, multi-round
// exchange the wire-format core has no business knowing about. This
// package is that reader's framing half, adapted from the teacher's
// p2p/tcp_utils.go length+CRC32+protocol-byte shape.
package transport

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/996BC/latticenet/utils"
	"github.com/996BC/latticenet/wire"
)

/*
+-------------+-----------+--------------+
|   Length    |    CRC    |  MessageType |
+-------------+-----------+--------------+
|                Payload                 |
+----------------------------------------+

(bytes)
Length		4
CRC			4
MessageType	1
*/

const frameHeaderSize = 9

// BuildFrame wraps a serialized wire message (header included) for
// transmission over a TCP bulk-transport connection.
func BuildFrame(payload []byte, t wire.MessageType) []byte {
	length := utils.Uint32Len(payload)
	crc := crc32.ChecksumIEEE(payload)

	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, length)
	binary.Write(buf, binary.BigEndian, crc)
	binary.Write(buf, binary.BigEndian, uint8(t))
	buf.Write(payload)

	return buf.Bytes()
}

// SplitStream drains as many complete frames as are currently buffered
// out of received, leaving any trailing partial frame in place for the
// next read. It never blocks and never allocates more than one frame
// ahead.
func SplitStream(received *bytes.Buffer) ([][]byte, error) {
	var frames [][]byte

	for received.Len() >= frameHeaderSize {
		var length uint32
		peeker := bytes.NewReader(received.Bytes())
		if err := binary.Read(peeker, binary.BigEndian, &length); err != nil {
			return nil, fmt.Errorf("transport: peek frame length: %w", err)
		}

		frameLen := frameHeaderSize + int(length)
		if received.Len() < frameLen {
			break
		}

		frame := make([]byte, frameLen)
		if _, err := received.Read(frame); err != nil {
			return nil, fmt.Errorf("transport: read frame: %w", err)
		}
		frames = append(frames, frame)
	}

	return frames, nil
}

// VerifyFrame checks a single frame's CRC and splits it back into its
// payload and message type. ok is false on a CRC mismatch, which the
// caller should treat the same as any other malformed-input rejection
// (drop and, if the policy warrants it, penalize the peer).
func VerifyFrame(frame []byte) (ok bool, payload []byte, t wire.MessageType) {
	if len(frame) < frameHeaderSize {
		return false, nil, 0
	}

	var length uint32
	var crc uint32
	var protocolID uint8

	r := bytes.NewReader(frame)
	binary.Read(r, binary.BigEndian, &length)
	binary.Read(r, binary.BigEndian, &crc)
	binary.Read(r, binary.BigEndian, &protocolID)

	payload = make([]byte, length)
	if _, err := r.Read(payload); err != nil {
		return false, nil, 0
	}

	if crc32.ChecksumIEEE(payload) != crc {
		return false, nil, 0
	}

	return true, payload, wire.MessageType(protocolID)
}
