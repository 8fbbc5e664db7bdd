package wire

import (
	"encoding/binary"
	"io"
)

// BulkPullCoreSize is the fixed 64-byte core: start(32) + end(32).
const BulkPullCoreSize = 32 + 32

// BulkPullExtendedParametersSize is the optional 8-byte trailer: a u32
// count followed by 4 reserved zero bytes.
const BulkPullExtendedParametersSize = 8

// BulkPull asks a peer to stream blocks from Start back to End. Start is
// overloaded: it may be an account or a block hash -- the responder
// disambiguates, not this codec.
type BulkPull struct {
	Header MessageHeader
	Start  [32]byte
	End    [32]byte
	// Count is 0 when unlimited, per spec.md 4.C.
	Count uint32
}

// NewBulkPull builds an outgoing bulk_pull. count==0 means unlimited and
// omits the trailer; any other value sets the count-present flag.
func NewBulkPull(network NetworkTag, start, end [32]byte, count uint32) *BulkPull {
	h := NewHeader(network, TypeBulkPull)
	h.BulkPullSetCountPresent(count != 0)
	return &BulkPull{Header: h, Start: start, End: end, Count: count}
}

func DeserializeBulkPull(r io.Reader, header MessageHeader) (*BulkPull, error) {
	b := &BulkPull{Header: header}
	if _, err := io.ReadFull(r, b.Start[:]); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, b.End[:]); err != nil {
		return nil, err
	}

	if header.BulkPullIsCountPresent() {
		var trailer [BulkPullExtendedParametersSize]byte
		if _, err := io.ReadFull(r, trailer[:]); err != nil {
			return nil, err
		}
		b.Count = binary.LittleEndian.Uint32(trailer[0:4])
	}
	return b, nil
}

func (b *BulkPull) Serialize(w io.Writer) error {
	if err := b.Header.Serialize(w); err != nil {
		return err
	}
	if _, err := w.Write(b.Start[:]); err != nil {
		return err
	}
	if _, err := w.Write(b.End[:]); err != nil {
		return err
	}

	if b.Header.BulkPullIsCountPresent() {
		var trailer [BulkPullExtendedParametersSize]byte
		binary.LittleEndian.PutUint32(trailer[0:4], b.Count)
		if _, err := w.Write(trailer[:]); err != nil {
			return err
		}
	}
	return nil
}

func (b *BulkPull) Visit(v Visitor) { v.BulkPull(b) }

func (b *BulkPull) Equal(o *BulkPull) bool {
	return o != nil && b.Start == o.Start && b.End == o.End && b.Count == o.Count
}
