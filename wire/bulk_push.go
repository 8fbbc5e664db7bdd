package wire

import "io"

// BulkPush is header-only: zero payload.
type BulkPush struct {
	Header MessageHeader
}

func NewBulkPush(network NetworkTag) *BulkPush {
	return &BulkPush{Header: NewHeader(network, TypeBulkPush)}
}

func DeserializeBulkPush(header MessageHeader) (*BulkPush, error) {
	return &BulkPush{Header: header}, nil
}

func (b *BulkPush) Serialize(w io.Writer) error {
	return b.Header.Serialize(w)
}

func (b *BulkPush) Visit(v Visitor) { v.BulkPush(b) }

func (b *BulkPush) Equal(o *BulkPush) bool { return o != nil }
