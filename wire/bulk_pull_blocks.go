package wire

import (
	"encoding/binary"
	"io"
)

// BulkPullBlocksMode selects whether bulk_pull_blocks wants full blocks
// or just checksums.
type BulkPullBlocksMode uint8

const (
	ListBlocks     BulkPullBlocksMode = 0
	ChecksumBlocks BulkPullBlocksMode = 1
)

// BulkPullBlocksPayloadSize is min_hash(32) + max_hash(32) + mode(1) + max_count(4).
const BulkPullBlocksPayloadSize = 32 + 32 + 1 + 4

// BulkPullBlocks is deprecated but still parseable for compatibility;
// whether to answer it is a policy decision left to the host, not this
// codec (spec.md 9, open question).
type BulkPullBlocks struct {
	Header   MessageHeader
	MinHash  [32]byte
	MaxHash  [32]byte
	Mode     BulkPullBlocksMode
	MaxCount uint32
}

func NewBulkPullBlocks(network NetworkTag, minHash, maxHash [32]byte, mode BulkPullBlocksMode, maxCount uint32) *BulkPullBlocks {
	return &BulkPullBlocks{
		Header:   NewHeader(network, TypeBulkPullBlocks),
		MinHash:  minHash,
		MaxHash:  maxHash,
		Mode:     mode,
		MaxCount: maxCount,
	}
}

func DeserializeBulkPullBlocks(r io.Reader, header MessageHeader) (*BulkPullBlocks, error) {
	b := &BulkPullBlocks{Header: header}
	if _, err := io.ReadFull(r, b.MinHash[:]); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, b.MaxHash[:]); err != nil {
		return nil, err
	}
	var mode [1]byte
	if _, err := io.ReadFull(r, mode[:]); err != nil {
		return nil, err
	}
	b.Mode = BulkPullBlocksMode(mode[0])
	if err := binary.Read(r, binary.LittleEndian, &b.MaxCount); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *BulkPullBlocks) Serialize(w io.Writer) error {
	if err := b.Header.Serialize(w); err != nil {
		return err
	}
	if _, err := w.Write(b.MinHash[:]); err != nil {
		return err
	}
	if _, err := w.Write(b.MaxHash[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte{byte(b.Mode)}); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, b.MaxCount)
}

func (b *BulkPullBlocks) Visit(v Visitor) { v.BulkPullBlocks(b) }

func (b *BulkPullBlocks) Equal(o *BulkPullBlocks) bool {
	return o != nil && b.MinHash == o.MinHash && b.MaxHash == o.MaxHash &&
		b.Mode == o.Mode && b.MaxCount == o.MaxCount
}
