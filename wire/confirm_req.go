package wire

import "io"

// ConfirmReq asks a peer "do you confirm this block?". Same block-carrying
// shape as Publish.
type ConfirmReq struct {
	Header MessageHeader
	Block  Block
}

func NewConfirmReq(network NetworkTag, blockType BlockType, block Block) *ConfirmReq {
	h := NewHeader(network, TypeConfirmReq)
	h.BlockTypeSet(blockType)
	return &ConfirmReq{Header: h, Block: block}
}

func DeserializeConfirmReq(r io.Reader, header MessageHeader, codec BlockCodec, verifier WorkVerifier, uniquer *BlockUniquer) (*ConfirmReq, error) {
	block, err := codec.Deserialize(r, header.BlockType())
	if err != nil {
		return nil, err
	}
	if verifier != nil && !verifier.Sufficient(block) {
		return nil, ErrInsufficientWork
	}
	if uniquer != nil {
		block = uniquer.Unique(block)
	}
	return &ConfirmReq{Header: header, Block: block}, nil
}

func (c *ConfirmReq) Serialize(w io.Writer) error {
	if err := c.Header.Serialize(w); err != nil {
		return err
	}
	return c.Block.Serialize(w)
}

func (c *ConfirmReq) Visit(v Visitor) { v.ConfirmReq(c) }

func (c *ConfirmReq) Equal(o *ConfirmReq) bool {
	return o != nil && c.Block.Hash() == o.Block.Hash()
}
